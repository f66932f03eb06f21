package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"ir/interpreter-go/pkg/driver"
	"ir/interpreter-go/pkg/printer"
	"ir/interpreter-go/pkg/store"
)

const defaultStorePath = "programs.db"

func runStore(args []string) int {
	fs := flag.NewFlagSet("store", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	dbPath := fs.String("db", "", "catalog path (default: store from ir.yml, else programs.db)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "ir store requires a subcommand (save, load, list, rm)")
		return 1
	}

	path := *dbPath
	if path == "" {
		path = defaultStorePath
		manifest, err := loadManifestFrom(".")
		switch {
		case err == nil && manifest.StorePath() != "":
			path = manifest.StorePath()
		case err != nil && !errors.Is(err, driver.ErrManifestNotFound):
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
	}

	ctx := context.Background()
	catalog, err := store.Open(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer catalog.Close()

	switch rest[0] {
	case "save":
		if len(rest) != 3 {
			fmt.Fprintln(os.Stderr, "usage: ir store save <name> <file>")
			return 1
		}
		program, err := driver.LoadProgram(rest[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
			return 1
		}
		if err := catalog.Save(ctx, rest[1], program); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	case "load":
		if len(rest) != 2 {
			fmt.Fprintln(os.Stderr, "usage: ir store load <name>")
			return 1
		}
		program, err := catalog.Load(ctx, rest[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Fprint(os.Stdout, printer.String(program))
	case "list":
		entries, err := catalog.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", entry.Name, entry.Statements, entry.SavedAt.Local().Format(time.DateTime))
		}
		tw.Flush()
	case "rm":
		if len(rest) != 2 {
			fmt.Fprintln(os.Stderr, "usage: ir store rm <name>")
			return 1
		}
		if err := catalog.Delete(ctx, rest[1]); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown store subcommand %q\n", rest[0])
		return 1
	}
	return 0
}
