// Package cli implements the gophauth command-line client.
//
//	gophauth-client [-a addr] [-c file] [-timeout sec] signup -email <e> [-name <n>] [-phone number:city:country]...
//	gophauth-client [-a addr] [-c file] [-timeout sec] login [-token <t>]
//
// Passwords and tokens not given on the command line are read from the
// terminal without echo. Replies are printed as indented JSON.
package cli
