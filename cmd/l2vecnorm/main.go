// Command l2vecnorm prints the L2 norm of the vector 0, 1, ..., N-1, or with
// -timing the CPU time spent reducing it, in clock ticks.
package main

import (
	"os"

	"github.com/patflynngithub/pycnumanal/internal/cli"
)

func main() {
	os.Exit(cli.Norm(os.Args[1:], os.Stdout, os.Stderr))
}
