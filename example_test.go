package primecount_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/primecount"
)

func ExampleCountPrimesBelow() {
	n, err := primecount.CountPrimesBelow(1_000_000, 4, primecount.SegmentedParallel)
	if err != nil {
		panic(err)
	}
	fmt.Println(n)
	// Output: 78498
}

func ExampleFindFirstKPrimes() {
	res, err := primecount.FindFirstKPrimes(5, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Primes, res.Kth)
	// Output: [2 3 5 7 11] 11
}

func ExampleEngine_CountPrimesBelow() {
	eng := primecount.New(primecount.WithPolicy(primecount.Exclusive))

	for _, s := range primecount.Strategies() {
		n, err := eng.CountPrimesBelow(context.Background(), 10_000, 4, s)
		if err != nil {
			panic(err)
		}
		fmt.Println(s, n)
	}
	// Output:
	// sequential 1229
	// segmented 1229
	// shared-sieve 1229
	// trial-division 1229
}
