// Package runner executes external timing programs. A program is invoked as
// its command-line prefix followed by the problem size, and is expected to
// print its timing (a decimal number) as the first line of standard output.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/patflynngithub/pycnumanal/timing"
)

var (
	ErrEmptyPrefix = errors.New("runner: empty command line prefix")
	ErrNoOutput    = errors.New("runner: program produced no output")
	ErrBadOutput   = errors.New("runner: first output line is not a number")
)

// waitDelay bounds how long Run waits for output pipes after the program is
// killed on timeout.
const waitDelay = time.Second

// Runner runs programs found under Dir. A zero Timeout disables the per-run
// deadline.
type Runner struct {
	Dir     string
	Timeout time.Duration
}

// New returns a Runner for programs in dir.
func New(dir string, timeout time.Duration) *Runner {
	return &Runner{Dir: dir, Timeout: timeout}
}

// Executable resolves the executable named by prefix and reports whether it
// exists as a regular file with an execute bit set.
func (r *Runner) Executable(prefix string) (string, bool) {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return "", false
	}
	path := r.resolve(fields[0])
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return path, false
	}
	return path, info.Mode().Perm()&0o111 != 0
}

// resolve returns an absolute path so the command does not depend on the
// child's working directory or on PATH lookup.
func (r *Runner) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	dir := r.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Run executes prefix with size appended and returns the number printed on
// the first line of its output.
func (r *Runner) Run(ctx context.Context, prefix string, size int64) (float64, error) {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return 0, ErrEmptyPrefix
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	args := append(fields[1:], strconv.FormatInt(size, 10))
	cmd := exec.CommandContext(ctx, r.resolve(fields[0]), args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return 0, fmt.Errorf("runner: %s %d: %w: %s", prefix, size, err, msg)
		}
		return 0, fmt.Errorf("runner: %s %d: %w", prefix, size, err)
	}
	return parseFirstLine(stdout.Bytes())
}

// Sample runs the program repeat times (at least once) and summarizes the
// parsed timings.
func (r *Runner) Sample(ctx context.Context, prefix string, size int64, repeat int) (timing.Summary, error) {
	if repeat < 1 {
		repeat = 1
	}
	samples := make([]float64, 0, repeat)
	for i := 0; i < repeat; i++ {
		v, err := r.Run(ctx, prefix, size)
		if err != nil {
			return timing.Summary{}, err
		}
		samples = append(samples, v)
	}
	return timing.Summarize(samples), nil
}

func parseFirstLine(out []byte) (float64, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	if !sc.Scan() {
		return 0, ErrNoOutput
	}
	line := strings.TrimSpace(sc.Text())
	if line == "" {
		return 0, ErrNoOutput
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadOutput, line)
	}
	return v, nil
}
