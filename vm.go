package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/toyforth/toyforth/internal/flushio"
)

// VM is one ToyForth interpreter instance. All of its state -- the data
// stack, the dictionary of user defined words, and the mode machine -- is
// owned exclusively by that instance; separate instances share nothing.
type VM struct {
	in    io.Reader
	out   flushio.WriteFlusher
	logfn func(mess string, args ...interface{})

	// The stack is a standard LIFO of ints, used implicitly by every
	// builtin operation.
	stack []int

	// words holds user definitions only; builtin names live in the static
	// builtins table and are resolved after it, so a user definition
	// shadows a builtin of the same name.
	words map[string]action

	// mode is the active interpreter mode; saved holds the enclosing
	// modes, innermost last, one per open compile or comment region.
	mode  mode
	saved []mode
}

type modeKind int

const (
	modeExecute modeKind = iota
	modeCompile
	modeComment
)

func (k modeKind) String() string {
	switch k {
	case modeExecute:
		return "execute"
	case modeCompile:
		return "compile"
	case modeComment:
		return "comment"
	}
	return fmt.Sprintf("invalid mode kind %v", int(k))
}

// mode pairs a kind with the compile-only data: the name of the word under
// construction (unset until the first token after ":") and its accumulated
// body. Execute and comment modes carry no data.
type mode struct {
	kind  modeKind
	name  string
	named bool
	body  []action
}

func (m mode) String() string {
	if m.kind == modeCompile {
		if !m.named {
			return "compile ?"
		}
		return fmt.Sprintf("compile %q %v", m.name, m.body)
	}
	return m.kind.String()
}

// nextToken splits the leading whitespace-delimited token off s; ok is
// false once no non-space runes remain. Any unicode space separates,
// newlines included, so multi-line text feeds the same as single lines.
func nextToken(s string) (token, rest string, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", "", false
	}
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:], true
	}
	return s, "", true
}

func (vm *VM) feed(line string) {
	rest := line
	for {
		token, tail, ok := nextToken(rest)
		if !ok {
			break
		}
		rest = tail
		vm.eval(token)
	}
}

func (vm *VM) eval(token string) {
	switch vm.mode.kind {
	case modeExecute:
		act := vm.resolve(token)
		vm.logf("eval %q %v", token, act)
		vm.exec(act)

	case modeCompile:
		if !vm.mode.named {
			// the first token after ":" names the word, whatever it is
			vm.mode.name = token
			vm.mode.named = true
			vm.logf("define %q", token)
			return
		}
		if token == ";" || token == "(" {
			// control words run immediately even mid-definition: ";"
			// closes it, "(" suspends body accumulation for a comment
			vm.exec(vm.resolve(token))
			return
		}
		act := vm.resolve(token)
		vm.logf("compile %q %v", token, act)
		vm.mode.body = append(vm.mode.body, act)

	case modeComment:
		if token == ")" {
			vm.exec(vm.resolve(token))
		}
		// commented tokens are opaque text, unresolvable ones included
	}
}

// resolve maps a token to its action: numerals first, then user words,
// then builtins. A token that is none of the three is fatal; this
// interpreter has no recovery path for unknown words.
func (vm *VM) resolve(token string) action {
	if n, ok := literal(token); ok {
		return pushint(n)
	}
	if act, defined := vm.words[token]; defined {
		return act
	}
	if code, defined := builtins[token]; defined {
		return builtin(code)
	}
	vm.halt(unknownWordError(token))
	return action{}
}

// literal parses an unsigned run of decimal digits. Signs are not numeral
// syntax: "- 5" subtracts then pushes, and "-5" resolves as a word (and
// fails). The empty string fails the parse, so even if the tokenizer could
// emit one it would surface as an unknown word rather than mis-resolve.
func literal(token string) (int, bool) {
	n, err := strconv.ParseUint(token, 10, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func (vm *VM) pushMode(next mode) {
	vm.saved = append(vm.saved, vm.mode)
	vm.mode = next
}

func (vm *VM) popMode() {
	i := len(vm.saved) - 1
	if i < 0 {
		vm.halt(errModeUnderflow)
	}
	vm.mode, vm.saved = vm.saved[i], vm.saved[:i]
}

// compiling reports whether a definition is open at any nesting depth,
// e.g. still true inside a comment opened mid-definition.
func (vm *VM) compiling() bool {
	if vm.mode.kind == modeCompile {
		return true
	}
	for _, m := range vm.saved {
		if m.kind == modeCompile {
			return true
		}
	}
	return false
}

func (vm *VM) run(ctx context.Context) error {
	sc := bufio.NewScanner(vm.in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		vm.feed(sc.Text())
		vm.status()
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

// status writes the per-line REPL response: " compiled" while a definition
// is still open, " ok" otherwise.
func (vm *VM) status() {
	mark := " ok"
	if vm.compiling() {
		mark = " compiled"
	}
	_, err := io.WriteString(vm.out, mark+"\n")
	vm.haltif(err)
	vm.haltif(vm.out.Flush())
}
