package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Color    string           `enum:"auto,always,never" default:"auto" help:"Colour output (auto, always, never)"`
	Run      RunCmd           `cmd:"" default:"withargs" help:"Play the configured tables with built-in bots"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate and compare hands on a board"`
	Replay   ReplayCmd        `cmd:"" help:"Print a recorded PHH hand history"`
	Simulate SimulateCmd      `cmd:"" help:"Measure a strategy's win rate over duplicate hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokertable"),
		kong.Description("Multiplayer poker table engine for bot play"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
