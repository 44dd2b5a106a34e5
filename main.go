package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fakhrymubarak/forecast/internal/cli"
	"github.com/fakhrymubarak/forecast/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	defer func() { _ = config.GetLogger().Sync() }()
	return cli.Execute(context.Background(), args)
}
