// Package main provides the sealedgen code generator CLI.
package main

import (
	"os"

	"github.com/Vuzi/sealedgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
