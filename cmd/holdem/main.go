package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play Texas Hold'em against computer opponents"`
	Odds     OddsCmd          `cmd:"" help:"Estimate a hand's chance of winning"`
	Simulate SimulateCmd      `cmd:"" help:"Run many all-bot games and report statistics"`
	Eval     EvalCmd          `cmd:"" help:"Score hands and show which one wins"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em against random computer players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
