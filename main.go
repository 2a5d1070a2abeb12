// Package main is the entry point for the dartest CLI.
package main

import "dartest.dev/pkg/dartest/cmd"

func main() {
	cmd.Execute()
}
