package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.Parse()

	var opts = []VMOption{
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	fmt.Println("ToyForth started")
	if err := vm.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		if trace {
			vmDumper{vm: vm, out: os.Stderr}.dump()
		}
		os.Exit(1)
	}
}
