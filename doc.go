/*
Gonf is a small stack language.

gonf reads source one line at a time, splitting each line into tokens:

	42 -7 0x2a 052     numbers: decimal, hexadecimal, or octal, with optional sign
	"hello\n"          strings, with C-style escapes; pushed as an address
	dup + .s           words, looked up in the dictionary
	\ a comment        a backslash and space comment out the rest of the line

Numbers and strings push a value onto the data stack, words are called.
Values are machine integers; zero is false and any other value true, while
comparisons and boolean words produce 1 or 0.

Built-in words:

	dup drop swap over rot     ( stack shuffling )
	+ - * / %                  ( a b -- a?b )
	&& || !  & | ^ ~           ( boolean and bitwise logic )
	== != < > <= >=            ( a b -- flag )
	.  .s  cr  printf          ( output )
	argc argv                  ( process arguments )
	exec def var :=            ( the compiler and variables )
	exit                       ( stop reading input )

Control structures compile into a shared buffer. At top level, a complete
structure runs as soon as its final word is read:

	5 0 > if "positive" else "negative" then
	5 do dup . 1 - dup 0 == until drop
	5 do dup while dup . 1 - repeat drop

Words are defined by compiling a body between : and ; then naming it:

	: dup * ; "square" def
	7 square .

Compilation may span lines; the interactive prompt changes from ">>> " to
"... " while a structure is pending. Redefining a word shadows the old one,
but code compiled earlier keeps calling what it was compiled against.

Variables hold a single value:

	10 "limit" var
	limit 1 + "limit" :=
*/
package main
