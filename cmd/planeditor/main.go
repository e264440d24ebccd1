// Package main provides the plan editor command line.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "planeditor",
		Usage:                 "Edit workflow plans and follow their executions",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ServeCommand(),
			ExportCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
