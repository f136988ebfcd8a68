// Package cli implements the interactive spellcheckd client.
//
// A single bufio.Reader over stdin feeds both the command loop and the
// prompts of individual commands. Passwords and second factors are read
// without echo through golang.org/x/term.
package cli
