package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todos/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "config file path")
	theme := flag.String("theme", "", "theme: classic, neon or mono")
	color := flag.String("color", "", "color: auto, always or never")
	debugLog := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		ConfigPath: *configPath,
		Theme:      *theme,
		Color:      *color,
		Debug:      *debugLog,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
