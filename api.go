package main

import (
	"context"
	"errors"
	"io"

	"github.com/toyforth/toyforth/internal/panicerr"
)

// New creates an interpreter with default wiring (empty input, discarded
// output), then applies any given options.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Feed tokenizes a line (or multi-line block) of source text and processes
// every token against the current mode before returning. Fatal interpreter
// conditions come back as errors, leaving state as it was at the failure
// point; remaining tokens on the line are not processed.
func (vm *VM) Feed(line string) error {
	return unwrapHalt(panicerr.Recover("Feed", func() error {
		vm.feed(line)
		return nil
	}))
}

// Run reads the configured input line by line, feeding each line and
// answering with a status line, until EOF or ctx is done. EOF is a normal
// stop, not an error.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("Run", func() error {
		return vm.run(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return unwrapHalt(err)
}

func unwrapHalt(err error) error {
	var vmErr vmHaltError
	if errors.As(err, &vmErr) {
		return vmErr.error
	}
	return err
}

func WithInput(r io.Reader) VMOption  { return withInput(r) }
func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithTee(w io.Writer) VMOption    { return withTee(w) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
