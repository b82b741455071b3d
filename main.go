package main

import (
	"context"
	"os"

	"github.com/ardnew/aq/cli"
)

func main() {
	os.Exit(cli.Report(os.Stderr, cli.Run(context.Background(), os.Exit, os.Args[1:]...)))
}
