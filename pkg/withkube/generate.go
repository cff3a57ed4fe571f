package withkube

import (
	"fmt"
	"io"

	"github.com/common-fate/clio/clierr"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/common-fate/withkube/pkg/kubeconfig"
	"github.com/common-fate/withkube/pkg/kubewriter"
)

var GenerateCommand = cli.Command{
	Name:  "generate",
	Usage: "Print the kubeconfig built for the selected bindings",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "validate", Usage: "Check the result with the kubectl validation rules"},
		&cli.BoolFlag{Name: "flatten", Usage: "Merge the kubeconfigs of every binding into a single document"},
	}, bindingFlags...),
	Action: func(c *cli.Context) error {
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

		docs := make([]*kubeconfig.Config, len(bindings))
		var eg errgroup.Group
		for i, b := range bindings {
			eg.Go(func() error {
				doc, err := kubewriter.BuildBinding(b, opts.Resolver, opts.Env, opts.Log)
				if err != nil {
					return err
				}
				docs[i] = doc
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}

		if c.Bool("flatten") {
			merged, err := kubeconfig.Merge(docs...)
			if err != nil {
				return err
			}
			docs = []*kubeconfig.Config{merged}
		}
		return writeDocuments(c.App.Writer, docs, c.Bool("validate"))
	},
}

// checks returns the validations run over doc by --validate. An in-cluster
// document has no cluster entry, the process gets its server from the pod it
// runs in, so only its current context is checked.
func checks(doc *kubeconfig.Config) []kubeconfig.ValidationFunc {
	if len(doc.Clusters) == 0 {
		return []kubeconfig.ValidationFunc{kubeconfig.WithCurrentContext}
	}
	return []kubeconfig.ValidationFunc{
		kubeconfig.WithCurrentContext,
		kubeconfig.WithValidContexts,
		kubeconfig.WithConsistentTLS,
		kubeconfig.Validate,
	}
}

// writeDocuments prints docs as a YAML stream.
func writeDocuments(w io.Writer, docs []*kubeconfig.Config, validate bool) error {
	for i, doc := range docs {
		if validate {
			for _, check := range checks(doc) {
				if err := check(doc); err != nil {
					return clierr.New(fmt.Sprintf("kubeconfig %d is invalid", i+1), clierr.Error(err))
				}
			}
		}
		b, err := doc.Marshal()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "---\n%s", b); err != nil {
			return err
		}
	}
	return nil
}
