// Command planner imprime el plan del día de cada mascota definido en un
// archivo TOML, sin levantar la API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"pet-care-planner/internal/planfile"
	"pet-care-planner/internal/platform/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "planner:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: planner [-date YYYY-MM-DD] [-explain] [-v] plan.toml")
		fs.PrintDefaults()
	}
	date := fs.String("date", "", "override the plan date (YYYY-MM-DD)")
	explain := fs.Bool("explain", false, "print the reasoning behind each plan")
	verbose := fs.Bool("v", false, "log service activity to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one plan file is required")
	}

	log := logger.Nop()
	if *verbose {
		log = logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatText, App: "planner", Output: stderr})
	}
	defer logger.Sync(log)

	f, err := planfile.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	if *date != "" {
		f.Date = *date
	}

	plan, err := planfile.Build(ctx, f, time.Now(), log)
	if err != nil {
		return err
	}

	list, err := plan.Schedules(ctx)
	if err != nil {
		return err
	}
	for i, sch := range list {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := sch.Display(stdout); err != nil {
			return err
		}
		if *explain {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, sch.Explanation)
		}
	}

	// los conflictos por mascota ya salen en cada tabla; acá van los cruzados
	conflicts, err := plan.Conflicts(ctx)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "conflicts across pets:")
		for _, c := range conflicts {
			fmt.Fprintln(stdout, "  "+c)
		}
	}
	return nil
}
