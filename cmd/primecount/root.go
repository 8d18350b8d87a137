package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "primecount",
		Short:         "Count primes with sequential and concurrent strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addPersistentFlags(root)

	root.AddCommand(
		newCountCmd(v),
		newFirstCmd(v),
		newBenchCmd(v),
	)
	return root
}

func parseUint(name, arg string) (uint64, error) {
	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
