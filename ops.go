package main

import "fmt"

// Here's a handy summary of all the ToyForth words:
const (
	opDup   = iota // DUP   duplicate the top stack element
	opDrop         // DROP  discard the top stack element
	opSwap         // SWAP  exchange the top two stack elements
	opPrint        // .     pop and print " <n>"
	opAdd          // +     binary integer operation on the stack
	opSub          // -     binary integer operation on the stack
	opMul          // *     binary integer operation on the stack
	opDiv          // /     binary integer operation on the stack
	opDefine       // :     open a definition
	opEndDef       // ;     close the definition, install the word
	opComment      // (     open a comment
	opEndCom       // )     close the comment

	opPushint // <INTERNAL>  push the action's literal value
	opRunword // <INTERNAL>  run the action's recorded body

	opMax
)

// action is one executable step: an opcode, plus a literal value for
// opPushint or a recorded body for opRunword. Actions are immutable once
// built; a defined word's body never changes after its ";".
type action struct {
	code int
	val  int
	body []action
}

func builtin(code int) action      { return action{code: code} }
func pushint(val int) action       { return action{code: opPushint, val: val} }
func runword(body []action) action { return action{code: opRunword, body: body} }

func (act action) String() string {
	switch act.code {
	case opPushint:
		return fmt.Sprintf("pushint(%v)", act.val)
	case opRunword:
		return fmt.Sprintf("runword%v", act.body)
	default:
		if act.code < opMax {
			return opNames[act.code]
		}
		return fmt.Sprintf("invalid op %v", act.code)
	}
}

// builtins is the fixed name table, built once; resolution only reads it.
var builtins = map[string]int{
	"DUP":  opDup,
	"DROP": opDrop,
	"SWAP": opSwap,
	".":    opPrint,
	"+":    opAdd,
	"-":    opSub,
	"*":    opMul,
	"/":    opDiv,
	":":    opDefine,
	";":    opEndDef,
	"(":    opComment,
	")":    opEndCom,
}

var opTable [opMax]func(vm *VM)
var opNames [opMax]string

func init() {
	opTable = [opMax]func(vm *VM){
		(*VM).dup,
		(*VM).drop,
		(*VM).swap,
		(*VM).print,
		(*VM).add,
		(*VM).sub,
		(*VM).mul,
		(*VM).div,
		(*VM).define,
		(*VM).endDefine,
		(*VM).comment,
		(*VM).endComment,

		nil, // opPushint dispatches in exec
		nil, // opRunword dispatches in exec
	}

	opNames = [...]string{
		"DUP",
		"DROP",
		"SWAP",
		".",
		"+",
		"-",
		"*",
		"/",
		":",
		";",
		"(",
		")",

		"pushint",
		"runword",
	}
}

// exec runs one action against the shared state. The two internal opcodes
// carry data and dispatch here; everything else goes through the table.
func (vm *VM) exec(act action) {
	switch act.code {
	case opPushint:
		vm.push(act.val)
	case opRunword:
		for _, sub := range act.body {
			vm.exec(sub)
		}
	default:
		opTable[act.code](vm)
	}
}

func (vm *VM) dup() { a := vm.pop(); vm.push(a); vm.push(a) }

func (vm *VM) drop() { vm.pop() }

func (vm *VM) swap() { b, a := vm.pop(), vm.pop(); vm.push(b); vm.push(a) }

// print pops the top of stack and writes it preceded by a separating
// space; no newline.
func (vm *VM) print() {
	v := vm.pop()
	_, err := fmt.Fprintf(vm.out, " %v", v)
	vm.haltif(err)
}

func (vm *VM) add() { b, a := vm.pop(), vm.pop(); vm.push(a + b) }
func (vm *VM) sub() { b, a := vm.pop(), vm.pop(); vm.push(a - b) }
func (vm *VM) mul() { b, a := vm.pop(), vm.pop(); vm.push(a * b) }

func (vm *VM) div() {
	b, a := vm.pop(), vm.pop()
	if b == 0 {
		vm.halt(errDivideByZero)
	}
	vm.push(a / b)
}

// define opens a definition: the current mode is saved and a fresh compile
// mode starts with its name unset. Definitions do not nest.
func (vm *VM) define() {
	if vm.mode.kind == modeCompile {
		vm.halt(modeError{":", vm.mode.kind})
	}
	vm.pushMode(mode{kind: modeCompile})
}

// endDefine closes the open definition: the recorded body is installed in
// the dictionary under the recorded name, then the enclosing mode resumes.
// The word becomes visible here and only here.
func (vm *VM) endDefine() {
	if vm.mode.kind != modeCompile {
		vm.halt(modeError{";", vm.mode.kind})
	}
	name, body := vm.mode.name, vm.mode.body
	vm.popMode()
	if vm.words == nil {
		vm.words = make(map[string]action)
	}
	vm.words[name] = runword(body)
	vm.logf("defined %q %v", name, body)
}

// comment saves the current mode and starts discarding tokens. Comments do
// not nest: a "(" inside a comment is itself discarded like any token.
func (vm *VM) comment() {
	if vm.mode.kind == modeComment {
		vm.halt(modeError{"(", vm.mode.kind})
	}
	vm.pushMode(mode{kind: modeComment})
}

func (vm *VM) endComment() {
	if vm.mode.kind != modeComment {
		vm.halt(modeError{")", vm.mode.kind})
	}
	vm.popMode()
}
