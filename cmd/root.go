package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-ioc/framework/app"
)

var envFiles []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iocd",
		Short: "Boot a container-wired application",
		Long: `iocd boots an application whose services are wired by the go-ioc
container, and can serve it over HTTP or describe what the container holds.`,
		Version:      app.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load (default .env)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newDescribeCmd())
	return root
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// boot creates and boots the application.
func boot(opts ...app.Option) (*app.Application, error) {
	a, err := app.New(append([]app.Option{app.WithEnvFiles(envFiles...)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := a.Boot(); err != nil {
		return nil, err
	}
	return a, nil
}
