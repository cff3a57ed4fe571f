package withkube

import (
	"fmt"
	"io"

	"github.com/common-fate/clio"
	"github.com/common-fate/clio/clierr"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/common-fate/withkube/pkg/config"
)

var BindingsCommand = cli.Command{
	Name:        "bindings",
	Usage:       "Manage the bindings saved in the config file",
	Subcommands: []*cli.Command{&ListBindingsCommand, &AddBindingCommand, &RemoveBindingCommand},
}

var ListBindingsCommand = cli.Command{
	Name:  "list",
	Usage: "List saved bindings with their defaults applied",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Bindings) == 0 {
			clio.Info("No bindings are saved. Add a [[Bindings]] table to the withkube config file to create one.")
			return nil
		}
		return printBindings(c.App.ErrWriter, cfg)
	},
}

var AddBindingCommand = cli.Command{
	Name:      "add",
	Usage:     "Save the binding described by the override flags, replacing one of the same name",
	UsageText: "withkube bindings add [options] <name>",
	Flags:     overrideFlags,
	Action: func(c *cli.Context) error {
		name := c.Args().First()
		if name == "" {
			return clierr.New("no binding name given", clierr.Info("usage: withkube bindings add [options] <name>"))
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b, err := bindingFromFlags(c)
		if err != nil {
			return err
		}

		saved := config.NamedBinding{Name: name, Binding: b}
		replaced := false
		for i := range cfg.Bindings {
			if cfg.Bindings[i].Name == name {
				cfg.Bindings[i] = saved
				replaced = true
			}
		}
		if !replaced {
			cfg.Bindings = append(cfg.Bindings, saved)
		}
		if err := cfg.Validate(); err != nil {
			return clierr.New(fmt.Sprintf("binding %s is invalid", name), clierr.Error(err))
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		clio.Successf("Saved binding %s", name)
		return nil
	},
}

var RemoveBindingCommand = cli.Command{
	Name:      "remove",
	Usage:     "Remove a saved binding",
	UsageText: "withkube bindings remove <name>",
	Action: func(c *cli.Context) error {
		name := c.Args().First()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		kept := cfg.Bindings[:0]
		for _, b := range cfg.Bindings {
			if b.Name != name {
				kept = append(kept, b)
			}
		}
		if len(kept) == len(cfg.Bindings) {
			return clierr.New(fmt.Sprintf("binding %s not found", name), clierr.Info(bindingHint(cfg, name)))
		}
		cfg.Bindings = kept
		if err := cfg.Save(); err != nil {
			return err
		}
		clio.Successf("Removed binding %s", name)
		return nil
	},
}

func printBindings(w io.Writer, cfg *config.Config) error {
	var data [][]string
	for _, nb := range cfg.Bindings {
		b, _, err := cfg.Binding(nb.Name)
		if err != nil {
			return err
		}
		credentials := b.CredentialsID
		if credentials == "" {
			credentials = "(in-cluster)"
		}
		data = append(data, []string{nb.Name, credentials, b.ServerURL, b.ContextName, b.Namespace})
	}

	table := newTable(w)
	table.SetHeader([]string{"NAME", "CREDENTIALS", "SERVER", "CONTEXT", "NAMESPACE"})
	table.AppendBulk(data)
	table.Render()
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}
