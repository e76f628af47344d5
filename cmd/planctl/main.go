package main

import (
	"fmt"
	"os"

	"github.com/nnrt/nnrt/cmd/planctl/cmd"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
