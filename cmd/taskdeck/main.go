package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `short:"c" help:"Path to config file"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	LogFile  string `help:"Write JSON logs to this file instead of stderr"`

	Serve ServeCmd `cmd:"" help:"Run the HTTP server"`
	Chat  ChatCmd  `cmd:"" help:"Send one message to the assistant"`
	Tasks TasksCmd `cmd:"" help:"Manage tasks directly"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("taskdeck"),
		kong.Description("Personal task manager with a conversational assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
