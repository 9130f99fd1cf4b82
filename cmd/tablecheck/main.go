// Command tablecheck validates a CSV file or a Postgres query result against a
// YAML or JSON schema and prints the warnings.
//
// Exit codes: 0 when the data is valid, 1 when there are warnings and 2 when
// the run itself failed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
