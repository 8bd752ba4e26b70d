package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nwalker/sheetview/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	showVersion bool
	initialFile string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("sheetview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("v", false, "show version")
	fs.BoolVar(showVersion, "version", false, "show version")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: sheetview [flags] [file]")
		fmt.Fprintln(stderr, "Open a spreadsheet directly, or run without a file to use the picker.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	// An optional path argument opens that file directly, skipping the picker.
	return options{
		showVersion: *showVersion,
		initialFile: fs.Arg(0),
	}, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Printf("sheetview %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		os.Exit(0)
	}

	p := tea.NewProgram(ui.InitialModel(opts.initialFile), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
