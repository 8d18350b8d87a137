// Command primecount counts primes and benchmarks the counting strategies.
//
//	primecount count 1000000 --strategy segmented --workers 8
//	primecount first 1000
//	primecount bench 10000000 --policy reader-writer
//
// Every flag can also be set through a PRIMECOUNT_* environment variable
// (e.g. PRIMECOUNT_WORKERS=4) or a yaml file passed with --config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
