// Package main is the entry point for the yomikata CLI.
package main

import (
	"os"

	"github.com/yomikata/yomikata/cmd/yomikata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
