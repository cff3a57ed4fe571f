// Package withkube is the withkube command line.
package withkube

import (
	"github.com/99designs/keyring"
	"github.com/common-fate/clio"
	"github.com/urfave/cli/v2"

	"github.com/common-fate/withkube/internal/build"
	"github.com/common-fate/withkube/pkg/banners"
	"github.com/common-fate/withkube/pkg/config"
)

func GetCliApp() *cli.App {
	cli.VersionPrinter = func(c *cli.Context) {
		clio.Log(banners.WithVersion())
	}

	flags := []cli.Flag{
		&cli.BoolFlag{Name: "verbose", Usage: "Log debug messages"},
	}

	app := &cli.App{
		Flags:       flags,
		Name:        build.BinaryName,
		Usage:       "Run commands against temporary kubeconfig files built from stored credentials",
		UsageText:   "withkube [global options] command [command options] [arguments...]",
		Version:     build.Version,
		HideVersion: false,
		Commands: []*cli.Command{
			&ExecCommand,
			&GenerateCommand,
			&BindingsCommand,
			&CredentialsCommand,
		},
		EnableBashCompletion: true,
		Before: func(c *cli.Context) error {
			clio.SetLevelFromEnv("WITHKUBE_LOG")
			if c.Bool("verbose") {
				clio.SetLevelFromString("debug")
				keyring.Debug = true
			}
			if err := config.SetupConfigFolder(); err != nil {
				return err
			}
			return nil
		},
	}

	return app
}
