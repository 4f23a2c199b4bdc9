// Package shroud provides the command-line interface for the shroud tool.
// It configures subcommands (obfuscate, deobfuscate, inspect, history),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/shroud/shroud/cmd/shroud"
//	func main() { shroud.Execute() }
package shroud
