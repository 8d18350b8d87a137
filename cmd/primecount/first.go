package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/primecount"
)

func newFirstCmd(v *viper.Viper) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "first K",
		Short: "Find the first K primes with an early-stop search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseUint("K", args[0])
			if err != nil {
				return err
			}

			s, err := loadSettings(cmd, v)
			if err != nil {
				return err
			}
			opts, err := s.engineOptions(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res, err := primecount.New(opts...).FindFirstKPrimes(cmd.Context(), k, s.Workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if list {
				parts := make([]string, len(res.Primes))
				for i, p := range res.Primes {
					parts[i] = fmt.Sprint(p)
				}
				fmt.Fprintln(out, strings.Join(parts, " "))
			}
			fmt.Fprintf(out, "prime #%d = %d (scanned %d candidates)\n", res.K, res.Kth, res.Scanned)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print every prime found")
	return cmd
}
