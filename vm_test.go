package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/toyforth/toyforth/internal/logio"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []VMOption
	feeds   []string
	input   string
	runs    bool
	ctx     context.Context
	timeout time.Duration
	wantErr error
	expect  []func(t *testing.T, vm *VM)
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	vmt.opts = append(vmt.opts, opts...)
	return vmt
}

func (vmt vmTestCase) withStack(values ...int) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

// feed queues source lines to pass to Feed, one call per line.
func (vmt vmTestCase) feed(lines ...string) vmTestCase {
	vmt.feeds = append(vmt.feeds, lines...)
	return vmt
}

// withInput makes the case drive Run over the given input instead of
// calling Feed directly.
func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.input = input
	vmt.runs = true
	return vmt
}

func (vmt vmTestCase) withContext(ctx context.Context) vmTestCase {
	vmt.ctx = ctx
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if len(values) == 0 {
			assert.Empty(t, vm.stack, "expected empty stack")
		} else {
			assert.Equal(t, values, vm.stack, "expected stack values")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectWord(name string, body ...action) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		act, defined := vm.words[name]
		if assert.True(t, defined, "expected %q to be defined", name) {
			assert.Equal(t, opRunword, act.code, "expected %q to be a defined word", name)
			assert.Equal(t, body, act.body, "expected %q body", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectNoWord(name string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		_, defined := vm.words[name]
		assert.False(t, defined, "expected %q to not be defined", name)
	})
	return vmt
}

func (vmt vmTestCase) expectCompiling(compiling bool) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, compiling, vm.compiling(), "expected compiling state")
	})
	return vmt
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func (vmt vmTestCase) run(t *testing.T) {
	vm := New(vmt.opts...)
	defer func() {
		if t.Failed() {
			lw := logio.Writer{Logf: t.Logf}
			defer lw.Close()
			vmDumper{vm: vm, out: &lw}.dump()
		}
	}()

	var err error
	for _, line := range vmt.feeds {
		if err = vm.Feed(line); err != nil {
			break
		}
	}
	if err == nil && vmt.runs {
		ctx := vmt.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		timeout := vmt.timeout
		if timeout == 0 {
			timeout = time.Second
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		WithInput(strings.NewReader(vmt.input)).apply(vm)
		err = vm.Run(ctx)
	}

	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error %v, got %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected interpreter error")
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}
