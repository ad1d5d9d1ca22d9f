package cli

import (
	"fmt"
	"io"

	"github.com/patflynngithub/pycnumanal/complexity"
	"github.com/patflynngithub/pycnumanal/vector"
)

// Curve runs lineartiming or nlogntiming: it evaluates the named complexity
// curve at N and prints it as "%f\n".
func Curve(name string, args []string, stdout, stderr io.Writer) int {
	prog := name + "timing"
	c, err := complexity.Lookup(name)
	if err != nil {
		return report(stderr, prog, err)
	}
	n, err := vector.ParseLength(args)
	if err != nil {
		fmt.Fprintf(stderr, "usage: %s N\n", prog)
		return report(stderr, prog, err)
	}
	fmt.Fprintf(stdout, "%f\n", c.Eval(n))
	return ExitOK
}
