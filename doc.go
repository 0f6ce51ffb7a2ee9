/* Package main: ToyForth -- a toy FORTH

ToyForth is a minimal interpreter for a FORTH-like stack language. Input is
a stream of whitespace-delimited tokens; each token is either a decimal
numeral, which pushes its value onto the data stack, or a word, which names
an operation in the dictionary.

The builtin words are a small fixed set: DUP DROP SWAP rearrange the stack,
"." pops and prints the top of stack, and + - * / pop two operands and push
an integer result. Division truncates and division by zero is fatal. There
is no floating point, no string type, and no control flow.

New words are defined with a colon definition:

	: SQUARED ( n -- nsquared ) DUP * ;

":" opens the definition; the next token names the new word; every token
after that is resolved and recorded, not run, until ";" closes the
definition and installs it in the dictionary. A word only becomes visible
once its ";" has been seen, so there are no forward references and no
partially defined words. Later definitions for the same name, including
builtin names, simply win.

Comments run from "(" to ")" and may appear anywhere, including inside a
definition; commented tokens are discarded without resolution, so a comment
may contain anything at all.

Numerals are unsigned digit runs. There is no sign syntax: "-5" is neither
a numeral nor a word, while "- 5" is the subtraction word followed by the
number five.

The interpreter is strict: an unknown word, an empty-stack pop, an
unbalanced ";" or ")", or a zero divisor stops interpretation of the
current input immediately, leaving the machine state wherever it was.

Running this package's command starts a line-oriented REPL that reads from
stdin and answers each line with " ok", or " compiled" while a definition
is still open.
*/
package main
