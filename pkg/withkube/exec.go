package withkube

import (
	"errors"
	"os/exec"

	"github.com/common-fate/clio"
	"github.com/common-fate/clio/clierr"
	"github.com/urfave/cli/v2"

	"github.com/common-fate/withkube/pkg/kubesession"
)

var ExecCommand = cli.Command{
	Name:      "exec",
	Usage:     "Run a command with KUBECONFIG pointing at temporary kubeconfig files",
	UsageText: "withkube exec [options] -- <command> [args...]",
	Flags:     bindingFlags,
	Action: func(c *cli.Context) error {
		if c.Args().Len() == 0 {
			return clierr.New("no command given", clierr.Info("usage: withkube exec [options] -- <command> [args...]"))
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		bindings, err := bindingsFromFlags(c, cfg)
		if err != nil {
			return err
		}
		opts, err := sessionOptions(c, cfg)
		if err != nil {
			return err
		}

		s, err := kubesession.Open(c.Context, bindings, opts)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.Close(); err != nil {
				clio.Errorf("cleaning up kubectl configuration: %s", err)
			}
		}()
		clio.Debugf("%s=%s", kubesession.EnvVar, s.KubeconfigEnv())

		err = s.Run(c.Context, c.Args().First(), c.Args().Tail()...)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// exit with the status of the command once the files are removed
			return cli.Exit("", exitErr.ExitCode())
		}
		return err
	},
}
