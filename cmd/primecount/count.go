package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/primecount"
)

func newCountCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "count N",
		Short: "Count the primes p ≤ N",
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
			strategy, err := primecount.ParseStrategy(s.Strategy)
			if err != nil {
				return err
			}
			opts, err := s.engineOptions(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			start := time.Now()
			count, err := primecount.New(opts...).CountPrimesBelow(cmd.Context(), n, s.Workers, strategy)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pi(%d) = %d\n", n, count)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s, %d workers, %s\n", strategy, s.Workers, time.Since(start).Round(time.Microsecond))
			return nil
		},
	}
}
