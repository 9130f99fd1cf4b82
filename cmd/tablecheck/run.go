package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kingpin/v2"

	"github.com/dmitrymomot/tableschema/pkg/config"
)

const (
	exitValid    = 0
	exitWarnings = 1
	exitError    = 2
)

var version = "dev"

// run parses args, executes the selected command and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(stderr, "tablecheck:", err)
		return exitError
	}
	var cfg config.App
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(stderr, "tablecheck:", err)
		return exitError
	}

	exited := false
	app := kingpin.New("tablecheck", "Validate tabular data against a column schema.")
	app.Version(version)
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(int) { exited = true })

	validate := &validateCommand{stdout: stdout, stderr: stderr}
	validate.Register(app, cfg)

	cmd, err := app.Parse(args)
	if exited {
		// --help and --version print and stop.
		return exitValid
	}
	if err != nil {
		fmt.Fprintln(stderr, "tablecheck:", err)
		return exitError
	}

	switch cmd {
	case validate.name():
		return validate.run(ctx, cfg)
	}
	fmt.Fprintln(stderr, "tablecheck: unknown command", strconv.Quote(cmd))
	return exitError
}
