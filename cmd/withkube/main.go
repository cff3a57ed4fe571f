package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-fate/clio"
	"github.com/common-fate/clio/clierr"
	"github.com/common-fate/withkube/pkg/withkube"
)

func main() {
	// cancelling the context stops the child command, after which the
	// kubeconfig files are removed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := withkube.GetCliApp()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		// if the error is an instance of clierr.PrintCLIErrorer then print the error accordingly
		if cliError, ok := err.(clierr.PrintCLIErrorer); ok {
			cliError.PrintCLIError()
		} else {
			clio.Error(err.Error())
		}
		stop()
		os.Exit(1)
	}
}
