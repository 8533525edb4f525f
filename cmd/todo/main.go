package main

import (
	"context"
	"os"

	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/ui"
)

func main() {
	err := cli.NewRootCmd().ExecuteContext(context.Background())
	code := cli.ExitCode(err)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		if code == cli.ExitUsage {
			ui.Fail(os.Stderr, "run `todo --help` for usage")
		}
	}
	os.Exit(code)
}
