// Command lineartiming prints the linear complexity curve evaluated at N.
package main

import (
	"os"

	"github.com/patflynngithub/pycnumanal/internal/cli"
)

func main() {
	os.Exit(cli.Curve("linear", os.Args[1:], os.Stdout, os.Stderr))
}
