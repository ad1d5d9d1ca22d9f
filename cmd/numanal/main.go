// Command numanal generates, stores and compares execution timings of
// external programs across problem sizes.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/patflynngithub/pycnumanal/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Numanal(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
