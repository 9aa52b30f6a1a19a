package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Replay   ReplayCmd        `cmd:"" help:"Replay a scenario to the console, one pass per batch"`
	Watch    WatchCmd         `cmd:"" help:"Feed a scenario on the tick and watch it in a live table view"`
	Serve    ServeCmd         `cmd:"" help:"Feed a scenario and stream snapshots to websocket watchers"`
	Validate ValidateCmd      `cmd:"" help:"Check a scenario and the configuration without running them"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handtracker"),
		kong.Description("Projects a poker action log into table state and tracks betting rounds"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
