// Command lookbook renders and exports Peridot Images lookbook slides.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lookbook/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Exit(execute(ctx))
	stop()
	os.Exit(code)
}

func execute(ctx context.Context) error {
	app := cli.New(os.Stderr, cli.LogInfo)
	root := app.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every pipeline step")

	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			app.SetLogLevel(cli.LogDebug)
		}
		if setup == nil {
			return nil
		}
		return setup(cmd, args)
	}
	return root.ExecuteContext(ctx)
}
