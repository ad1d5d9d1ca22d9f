// Command nlogntiming prints n*ln(n) evaluated at N.
package main

import (
	"os"

	"github.com/patflynngithub/pycnumanal/internal/cli"
)

func main() {
	os.Exit(cli.Curve("nlogn", os.Args[1:], os.Stdout, os.Stderr))
}
