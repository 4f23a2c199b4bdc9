package main

import "github.com/shroud/shroud/cmd/shroud"

func main() { shroud.Execute() }
