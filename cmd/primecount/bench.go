package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/primecount"
	"github.com/hupe1980/primecount/sieve"
)

type benchRow struct {
	algorithm string
	workers   int
	count     uint64
	elapsed   time.Duration
}

func newBenchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "bench N",
		Short: "Time every generator and strategy on the same bound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseUint("N", args[0])
			if err != nil {
				return err
			}

			s, err := loadSettings(cmd, v)
			if err != nil {
				return err
			}

			rows, err := runBench(cmd.Context(), s, n, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printBench(cmd.OutOrStdout(), n, rows)
		},
	}
}

// runBench runs the sequential strategy once per generator, then every
// concurrent strategy with the configured worker count.
func runBench(ctx context.Context, s settings, n uint64, logOut io.Writer) ([]benchRow, error) {
	var rows []benchRow

	run := func(name string, workers int, strategy primecount.Strategy, extra ...primecount.Option) error {
		opts, err := s.engineOptions(logOut, extra...)
		if err != nil {
			return err
		}
		eng := primecount.New(opts...)

		start := time.Now()
		count, err := eng.CountPrimesBelow(ctx, n, workers, strategy)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		rows = append(rows, benchRow{algorithm: name, workers: workers, count: count, elapsed: time.Since(start)})
		return nil
	}

	for _, name := range sieve.Names() {
		gen, err := sieve.Lookup(name)
		if err != nil {
			return nil, err
		}
		if err := run(name, 1, primecount.Sequential, primecount.WithGenerator(gen)); err != nil {
			return nil, err
		}
	}

	for _, strategy := range primecount.Strategies() {
		if strategy == primecount.Sequential {
			continue
		}
		if err := run(fmt.Sprintf("%s/%s", strategy, s.Policy), s.Workers, strategy); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

func printBench(w io.Writer, n uint64, rows []benchRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ALGORITHM\tWORKERS\tPI(%d)\tELAPSED\n", n)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.algorithm, r.workers, r.count, r.elapsed.Round(time.Microsecond))
	}
	return tw.Flush()
}
