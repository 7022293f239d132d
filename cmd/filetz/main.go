package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"filetz/internal/cli"
	appErrors "filetz/internal/errors"
	"filetz/internal/infra/fs"
	"filetz/internal/presentation"
)

func main() {
	ctx := context.Background()

	streams := cli.Streams{Out: os.Stdout, Err: os.Stderr}
	if err := cli.Execute(ctx, os.Args[1:], fs.NewOS(), streams); err != nil {
		exitWithError(err)
	}
}

func exitWithError(err error) {
	printer := presentation.Printer{Writer: os.Stderr}
	code := cli.ExitCode(err)
	if code == 2 {
		printer.PrintFlagError(appErrors.UserMessage(err), cli.BasicSyntax)
	} else {
		printer.PrintLines([]string{appErrors.UserMessage(err)})
	}
	os.Exit(code)
}
