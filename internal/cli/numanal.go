package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/patflynngithub/pycnumanal/harness"
	"github.com/patflynngithub/pycnumanal/store"
)

// DBEnv names the environment variable that overrides the default catalog
// path.
const DBEnv = "NUMANAL_DB"

// Numanal runs the numanal command with args and returns the exit status.
func Numanal(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewNumanalCommand(stdout, stderr)
	cmd.SetArgs(args)
	return report(stderr, "numanal", cmd.ExecuteContext(ctx))
}

// NewNumanalCommand builds the numanal command tree.
func NewNumanalCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := harness.DefaultConfig()
	if v := os.Getenv(DBEnv); v != "" {
		cfg.DBPath = v
	}
	var logLevel string

	cmdRoot := &cobra.Command{
		Use:           "numanal",
		Short:         "Generate, store and compare execution timings of programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmdRoot.SetOut(stdout)
	cmdRoot.SetErr(stderr)
	cmdRoot.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usage(err) })

	pf := cmdRoot.PersistentFlags()
	pf.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite catalog path (env "+DBEnv+")")
	pf.StringVar(&cfg.WorkDir, "dir", cfg.WorkDir, "directory program executables are resolved in")
	pf.IntVar(&cfg.Repeat, "repeat", cfg.Repeat, "runs per problem size when generating timings")
	pf.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "deadline for a single program run (0 = none)")
	pf.BoolVar(&cfg.RequireExecutable, "require-executable", cfg.RequireExecutable, "refuse programs whose executable is missing")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	// run opens the harness for the duration of one subcommand.
	run := func(fn func(ctx context.Context, h *harness.Harness, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return usage(err)
			}
			logger, err := NewLogger(stderr, logLevel)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			h, err := harness.Open(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer h.Close()
			return fn(ctx, h, args)
		}
	}

	// program

	cmdProgram := &cobra.Command{Use: "program", Short: "Manage programs"}

	var description, prefix string
	cmdProgramAdd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a program",
		Args:  exactArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			if prefix == "" {
				return usage(fmt.Errorf("--prefix is required"))
			}
			return h.AddProgram(ctx, store.Program{Name: args[0], Description: description, CmdLinePrefix: prefix})
		}),
	}
	cmdProgramAdd.Flags().StringVar(&prefix, "prefix", "", "executable and fixed arguments; the problem size is appended")
	cmdProgramAdd.Flags().StringVar(&description, "description", "", "free-form description")

	cmdProgramDelete := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a program and its timings",
		Args:  exactArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			return h.DeleteProgram(ctx, args[0])
		}),
	}

	cmdProgramList := &cobra.Command{
		Use:   "list",
		Short: "List programs",
		Args:  exactArgs(0),
		RunE: run(func(ctx context.Context, h *harness.Harness, _ []string) error {
			progs, err := h.Programs(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPREFIX\tDESCRIPTION")
			for _, p := range progs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.CmdLinePrefix, p.Description)
			}
			return tw.Flush()
		}),
	}
	cmdProgram.AddCommand(cmdProgramAdd, cmdProgramDelete, cmdProgramList)

	// timing

	cmdTiming := &cobra.Command{Use: "timing", Short: "Manage timings"}

	cmdTimingAdd := &cobra.Command{
		Use:   "add PROGRAM SIZE SECONDS",
		Short: "Record a timing by hand",
		Args:  exactArgs(3),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			size, err := parseSize(args[1])
			if err != nil {
				return err
			}
			secs, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return usage(fmt.Errorf("invalid timing %q", args[2]))
			}
			_, err = h.AddTiming(ctx, args[0], size, secs)
			return err
		}),
	}

	cmdTimingGenerate := &cobra.Command{
		Use:   "generate PROGRAM SIZE...",
		Short: "Run a program at each problem size and store the timings",
		Args:  minArgs(2),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			sizes := make([]int64, 0, len(args)-1)
			for _, a := range args[1:] {
				size, err := parseSize(a)
				if err != nil {
					return err
				}
				sizes = append(sizes, size)
			}
			outcomes, genErr := h.GenerateTimings(ctx, args[0], sizes)
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SIZE\tSECONDS\tSTATUS")
			for _, o := range outcomes {
				if o.Skipped {
					fmt.Fprintf(tw, "%s\t-\tskipped: %s\n", humanize.Comma(o.Size), o.Reason)
					continue
				}
				fmt.Fprintf(tw, "%s\t%f\tstored\n", humanize.Comma(o.Size), o.Seconds)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return genErr
		}),
	}

	cmdTimingShow := &cobra.Command{
		Use:   "show PROGRAM",
		Short: "Show a program's timings",
		Args:  exactArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			timings, err := h.Timings(ctx, args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SIZE\tSECONDS\tRECORDED")
			for _, t := range timings {
				fmt.Fprintf(tw, "%s\t%f\t%s\n", humanize.Comma(t.ProblemSize), t.Seconds, humanize.Time(t.CreatedAt))
			}
			return tw.Flush()
		}),
	}

	cmdTimingDelete := &cobra.Command{
		Use:   "delete PROGRAM",
		Short: "Delete all of a program's timings",
		Args:  exactArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			n, err := h.DeleteTimings(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "deleted %d timing(s)\n", n)
			return nil
		}),
	}

	cmdTimingCompare := &cobra.Command{
		Use:   "compare PROGRAM",
		Short: "Show timings next to the linear and n log n curves",
		Args:  exactArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			rows, err := h.Compare(ctx, args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SIZE\tSECONDS\tLINEAR\tNLOGN")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%f\t%f\t%f\n", humanize.Comma(r.ProblemSize), r.Seconds, r.Linear, r.NLogN)
			}
			return tw.Flush()
		}),
	}
	var plotOut string
	cmdTimingPlot := &cobra.Command{
		Use:   "plot PROGRAM...",
		Short: "Plot timing against problem size for one or more programs",
		Args:  minArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			res, err := h.PlotTimings(ctx, args, plotOut)
			for _, name := range res.Skipped {
				fmt.Fprintf(stdout, "skipped %s: no timings\n", name)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "plotted %d program(s) to %s\n", len(res.Plotted), plotOut)
			return nil
		}),
	}
	cmdTimingPlot.Flags().StringVarP(&plotOut, "out", "o", "timings.png", "output file; the extension selects the format (png, svg, pdf)")

	cmdTiming.AddCommand(cmdTimingAdd, cmdTimingGenerate, cmdTimingShow, cmdTimingDelete, cmdTimingCompare, cmdTimingPlot)

	// history

	var limit int
	cmdHistory := &cobra.Command{
		Use:   "history",
		Short: "Show recent catalog changes",
		Args:  exactArgs(0),
		RunE: run(func(ctx context.Context, h *harness.Harness, _ []string) error {
			events, err := h.History(ctx, limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SEQ\tTABLE\tOP\tKEY\tWHEN")
			for _, e := range events {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.Seq, e.Table, e.Op, e.Key, humanize.Time(e.CreatedAt))
			}
			return tw.Flush()
		}),
	}
	cmdHistory.Flags().IntVar(&limit, "limit", 20, "maximum number of entries (0 = all)")

	// verify

	cmdVerify := &cobra.Command{
		Use:   "verify N",
		Short: "Compute the norm of 0..N-1 in Go, in closed form, with gonum and in SQLite",
		Args:  exactArgs(1),
		RunE: run(func(ctx context.Context, h *harness.Harness, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return usage(fmt.Errorf("invalid length %q", args[0]))
			}
			start := time.Now()
			res, err := h.Verify(ctx, n)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "n\t%s\n", humanize.Comma(int64(res.N)))
			fmt.Fprintf(tw, "norm\t%f\n", res.Norm)
			fmt.Fprintf(tw, "closed form\t%f\n", res.ClosedForm)
			fmt.Fprintf(tw, "gonum\t%f\n", res.Reference)
			fmt.Fprintf(tw, "sqlite l2norm\t%f\n", res.SQL)
			fmt.Fprintf(tw, "sqlite vec_norm\t%f\n", res.SQL32)
			fmt.Fprintf(tw, "sqlite sequence\t%f\n", res.Table)
			fmt.Fprintf(tw, "elapsed\t%s\n", time.Since(start).Round(time.Microsecond))
			return tw.Flush()
		}),
	}

	cmdRoot.AddCommand(cmdProgram, cmdTiming, cmdHistory, cmdVerify)
	return cmdRoot
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(cobra.ExactArgs(n)(cmd, args))
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(cobra.MinimumNArgs(n)(cmd, args))
	}
}

func parseSize(s string) (int64, error) {
	size, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, usage(fmt.Errorf("invalid problem size %q", s))
	}
	return size, nil
}
