// Package main is the entry point for the schemacat CLI binary.
package main

import (
	"os"

	cli "schemacat/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
