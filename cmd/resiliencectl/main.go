package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/resilientgo/core/cmd/resiliencectl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
