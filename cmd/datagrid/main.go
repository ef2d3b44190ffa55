package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/datagrid/internal/cli"
	"github.com/rshade/datagrid/pkg/version"
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).ExecuteContext(context.Background())
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
