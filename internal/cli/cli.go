package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Layout   *LayoutCommand
	Render   *RenderCommand
	Validate *ValidateCommand
	Add      *AddCommand
	Import   *ImportCommand
	List     *ListCommand
	Stats    *StatsCommand
	Purge    *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "chronolay"
	parser.LongDescription = "Deterministic timeline card layout: cluster timestamped events, degrade gracefully under density, render to SVG."

	cmds := &commands{
		Layout:   &LayoutCommand{globals: &globals, version: version},
		Render:   &RenderCommand{globals: &globals, version: version},
		Validate: &ValidateCommand{globals: &globals, version: version},
		Add:      &AddCommand{globals: &globals, version: version},
		Import:   &ImportCommand{globals: &globals, version: version},
		List:     &ListCommand{globals: &globals, version: version},
		Stats:    &StatsCommand{globals: &globals, version: version},
		Purge:    &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("layout", "Compute a card layout", "Compute a collision-free card layout for stored or file-based events.", cmds.Layout)
	parser.AddCommand("render", "Render a layout to SVG", "Compute a layout and write it as an SVG document.", cmds.Render)
	parser.AddCommand("validate", "Validate a layout", "Run a layout and print its validation report (overlaps, coverage).", cmds.Validate)
	parser.AddCommand("add", "Add a single event", "Insert a single timeline event into the database.", cmds.Add)
	parser.AddCommand("import", "Import events from YAML", "Bulk-load timeline events from a YAML file into the database.", cmds.Import)
	parser.AddCommand("list", "List stored events", "List stored events with date, source, and tag filters.", cmds.List)
	parser.AddCommand("stats", "Show database statistics", "Show event counts, date range, and configuration summary.", cmds.Stats)
	parser.AddCommand("purge", "Delete ALL stored events", "Delete ALL stored events. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the chronolay CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("chronolay %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
