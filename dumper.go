package main

import (
	"fmt"
	"io"
	"sort"
)

// vmDumper writes a human readable snapshot of interpreter state: the data
// stack, the mode machine, and every user defined word with its decompiled
// body.
type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.vm.stack)
	fmt.Fprintf(dump.out, "  mode: %v\n", dump.vm.mode)
	for i := len(dump.vm.saved) - 1; i >= 0; i-- {
		fmt.Fprintf(dump.out, "  saved mode: %v\n", dump.vm.saved[i])
	}
	for _, name := range dump.wordNames() {
		fmt.Fprintf(dump.out, "  word %q: %v\n", name, dump.vm.words[name].body)
	}
}

func (dump vmDumper) wordNames() []string {
	names := make([]string, 0, len(dump.vm.words))
	for name := range dump.vm.words {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
