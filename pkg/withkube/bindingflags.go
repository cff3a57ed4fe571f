package withkube

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/common-fate/clio"
	"github.com/common-fate/clio/clierr"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/urfave/cli/v2"

	"github.com/common-fate/withkube/pkg/config"
	"github.com/common-fate/withkube/pkg/environ"
	"github.com/common-fate/withkube/pkg/kubeauth"
	"github.com/common-fate/withkube/pkg/kubesession"
	"github.com/common-fate/withkube/pkg/kubewriter"
)

// overrideFlags describe a single binding.
var overrideFlags = []cli.Flag{
	&cli.StringFlag{Name: "credentials-id", Usage: "The credential to authenticate with, leave empty to use in-cluster credentials"},
	&cli.StringFlag{Name: "server", Usage: "The URL of the API server"},
	&cli.StringFlag{Name: "ca-cert", Usage: "The certificate authority of the API server, in PEM form"},
	&cli.PathFlag{Name: "ca-cert-file", Usage: "Read the certificate authority of the API server from a file"},
	&cli.StringFlag{Name: "cluster", Usage: "The name of the cluster entry"},
	&cli.StringFlag{Name: "context", Usage: "The name of the context to use"},
	&cli.StringFlag{Name: "namespace", Aliases: []string{"n"}, Usage: "The default namespace"},
}

// bindingFlags select the kubeconfigs a command is built for.
var bindingFlags = append([]cli.Flag{
	&cli.StringSliceFlag{Name: "binding", Aliases: []string{"b"}, Usage: "Use a binding saved in the config file, may be repeated"},
	&cli.StringSliceFlag{Name: "env-file", Usage: "Read variables used in overrides from a .env file"},
}, overrideFlags...)

// bindingsFromFlags returns the saved bindings named with --binding followed
// by the binding described by the override flags. With no flags at all it
// returns the configured defaults.
func bindingsFromFlags(c *cli.Context, cfg *config.Config) ([]kubewriter.Binding, error) {
	var bindings []kubewriter.Binding
	for _, name := range c.StringSlice("binding") {
		b, ok, err := cfg.Binding(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, clierr.New(fmt.Sprintf("binding %s not found", name), clierr.Info(bindingHint(cfg, name)))
		}
		bindings = append(bindings, b)
	}

	adHoc := false
	for _, f := range overrideFlags {
		adHoc = adHoc || c.IsSet(f.Names()[0])
	}
	if !adHoc && len(bindings) > 0 {
		return bindings, nil
	}

	b, err := bindingFromFlags(c)
	if err != nil {
		return nil, err
	}
	b, err = cfg.WithDefaults(b)
	if err != nil {
		return nil, err
	}
	return append(bindings, b), nil
}

// bindingFromFlags returns the binding described by the override flags, as
// given.
func bindingFromFlags(c *cli.Context) (kubewriter.Binding, error) {
	ca := c.String("ca-cert")
	if p := c.Path("ca-cert-file"); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return kubewriter.Binding{}, err
		}
		ca = string(b)
	}
	return kubewriter.Binding{
		CredentialsID: c.String("credentials-id"),
		Overrides: kubewriter.Overrides{
			ServerURL:     c.String("server"),
			CACertificate: ca,
			ClusterName:   c.String("cluster"),
			ContextName:   c.String("context"),
			Namespace:     c.String("namespace"),
		},
	}, nil
}

// sessionOptions wires the credential store, the environment and the
// configured workspace together.
func sessionOptions(c *cli.Context, cfg *config.Config) (kubesession.Options, error) {
	env, err := environ.Snapshot(c.StringSlice("env-file")...)
	if err != nil {
		return kubesession.Options{}, err
	}
	fileOpts, err := cfg.FileOptions()
	if err != nil {
		return kubesession.Options{}, err
	}
	store, err := credentialStore()
	if err != nil {
		return kubesession.Options{}, err
	}
	clio.Debugw("building kubeconfig", "workspace", fileOpts.Workspace, "restricted", fileOpts.Restricted)
	return kubesession.Options{
		Resolver: kubeauth.NewResolver(store),
		Env:      env,
		File:     fileOpts,
		Log:      kubewriter.ClioLogger{},
	}, nil
}

// bindingHint suggests the saved bindings whose names are close to name.
func bindingHint(cfg *config.Config, name string) string {
	names := make([]string, len(cfg.Bindings))
	for i, b := range cfg.Bindings {
		names[i] = b.Name
	}
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) == 0 {
		return "run 'withkube bindings list' to see the saved bindings"
	}
	sort.Sort(ranks)
	similar := make([]string, len(ranks))
	for i, r := range ranks {
		similar[i] = r.Target
	}
	return fmt.Sprintf("did you mean %s?", strings.Join(similar, ", "))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, clierr.New("the withkube config file is invalid", clierr.Error(err))
	}
	return cfg, nil
}
