package main

import (
	"errors"
	"fmt"
)

// halt flushes any pending output, then aborts interpretation by panicking
// with the given error; the exported API boundary recovers it. There is no
// rollback: state stays as it was at the failure point.
func (vm *VM) halt(err error) {
	if vm.out != nil {
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}
	vm.logf("halt error: %v", err)
	panic(vmHaltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

func (vm *VM) push(val int) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop() (val int) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.halt(errStackUnderflow)
	}
	val, vm.stack = vm.stack[i], vm.stack[:i]
	return val
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.logfn != nil {
		vm.logfn(mess, args...)
	}
}

var (
	errStackUnderflow = errors.New("stack underflow")
	errModeUnderflow  = errors.New("mode stack underflow")
	errDivideByZero   = errors.New("division by zero")
)

type unknownWordError string

func (token unknownWordError) Error() string {
	return fmt.Sprintf("unknown word %q", string(token))
}

// modeError reports a control word issued in a mode that cannot accept it,
// like ";" outside a definition or a second ":" inside one.
type modeError struct {
	word string
	kind modeKind
}

func (err modeError) Error() string {
	return fmt.Sprintf("%q invalid in %v mode", err.word, err.kind)
}

type vmHaltError struct{ error }

func (err vmHaltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err vmHaltError) Unwrap() error { return err.error }
