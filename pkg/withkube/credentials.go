package withkube

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/common-fate/clio"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/common-fate/withkube/pkg/credstore"
	"github.com/common-fate/withkube/pkg/kubeauth"
	"github.com/common-fate/withkube/pkg/kubeconfig"
	"github.com/common-fate/withkube/pkg/testable"
)

var CredentialsCommand = cli.Command{
	Name:  "credentials",
	Usage: "Manage kubernetes credentials in secure storage",
	Subcommands: []*cli.Command{
		&AddCredentialsCommand,
		&ImportCredentialsCommand,
		&ListCredentialsCommand,
		&RemoveCredentialsCommand,
	},
}

// credentialStore is replaced in tests.
var credentialStore = func() (*credstore.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return credstore.New(cfg), nil
}

var AddCredentialsCommand = cli.Command{
	Name:      "add",
	Usage:     "Add credentials to secure storage",
	UsageText: "withkube credentials add [options] [id]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "kind", Usage: "One of " + kindList()},
		&cli.StringFlag{Name: "description", Usage: "A note shown when listing credentials"},
		&cli.PathFlag{Name: "file", Usage: "The PKCS#12 keystore or kubeconfig file"},
		&cli.PathFlag{Name: "cert-file", Usage: "The PEM client certificate"},
		&cli.PathFlag{Name: "key-file", Usage: "The PEM private key"},
	},
	Action: func(c *cli.Context) error {
		id, err := argOrPrompt(c, "Credentials ID: ")
		if err != nil {
			return err
		}

		kind := kubeauth.Kind(c.String("kind"))
		if kind == "" {
			in := survey.Select{Message: "Credentials kind: ", Options: kindOptions()}
			var out string
			fmt.Fprintln(os.Stderr)
			if err := testable.AskOne(&in, &out); err != nil {
				return err
			}
			kind = kubeauth.Kind(out)
		}

		cred := kubeauth.Credential{ID: id, Kind: kind, Description: c.String("description")}
		if err := fillCredential(c, &cred); err != nil {
			return err
		}
		return saveCredential(c, cred)
	},
}

var ImportCredentialsCommand = cli.Command{
	Name:      "import",
	Usage:     "Import a kubeconfig file into secure storage, by default the one kubectl uses",
	UsageText: "withkube credentials import [options] [kubeconfig]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "The credentials ID, defaults to the file name"},
		&cli.StringFlag{Name: "description", Usage: "A note shown when listing credentials"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		id := c.String("id")
		if id == "" && path != "" {
			id = filepath.Base(path)
		}
		var data []byte
		var err error
		if path == "" {
			clio.Debug("no file given, importing the kubectl configuration")
			if id == "" {
				id = "kubectl"
			}
			data, err = readKubectlConfig()
			path = "kubectl"
		} else {
			data, err = readKubeconfigFile(id, path)
		}
		if err != nil {
			return err
		}
		return saveCredential(c, kubeauth.Credential{
			ID:          id,
			Kind:        kubeauth.KindFile,
			Description: c.String("description"),
			Data:        data,
			FileName:    filepath.Base(path),
		})
	},
}

var ListCredentialsCommand = cli.Command{
	Name:  "list",
	Usage: "List the credentials in secure storage",
	Action: func(c *cli.Context) error {
		store, err := credentialStore()
		if err != nil {
			return err
		}
		creds, err := store.List()
		if err != nil {
			return err
		}
		if len(creds) == 0 {
			clio.Info("No credentials are stored. Run 'withkube credentials add' to add some.")
			return nil
		}
		printCredentials(c.App.ErrWriter, creds)
		return nil
	},
}

var RemoveCredentialsCommand = cli.Command{
	Name:      "remove",
	Usage:     "Remove credentials from secure storage",
	UsageText: "withkube credentials remove [options] <id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
	},
	Action: func(c *cli.Context) error {
		id, err := argOrPrompt(c, "Credentials ID: ")
		if err != nil {
			return err
		}
		if !c.Bool("yes") {
			confirm := false
			in := survey.Confirm{Message: fmt.Sprintf("Remove credentials %s?", id)}
			if err := testable.AskOne(&in, &confirm); err != nil {
				return err
			}
			if !confirm {
				clio.Info("Cancelled")
				return nil
			}
		}
		store, err := credentialStore()
		if err != nil {
			return err
		}
		if err := store.Remove(id); err != nil {
			return err
		}
		clio.Successf("Removed %s from secure storage", id)
		return nil
	},
}

func kindOptions() []string {
	out := make([]string, len(kubeauth.Kinds))
	for i, k := range kubeauth.Kinds {
		out[i] = string(k)
	}
	return out
}

func kindList() string {
	return strings.Join(kindOptions(), ", ")
}

func argOrPrompt(c *cli.Context, message string) (string, error) {
	v := c.Args().First()
	if v != "" {
		return v, nil
	}
	in := survey.Input{Message: message}
	fmt.Fprintln(os.Stderr)
	err := testable.AskOne(&in, &v)
	return v, err
}

func askSecret(message string, out *string) error {
	in := survey.Password{Message: message}
	fmt.Fprintln(os.Stderr)
	return testable.AskOne(&in, out)
}

// readPathFlag reads the file named by the flag, prompting for a path when
// the flag is not set.
func readPathFlag(c *cli.Context, flag, message string) ([]byte, string, error) {
	p := c.Path(flag)
	if p == "" {
		in := survey.Input{Message: message}
		fmt.Fprintln(os.Stderr)
		if err := testable.AskOne(&in, &p); err != nil {
			return nil, "", err
		}
	}
	b, err := os.ReadFile(p)
	return b, filepath.Base(p), err
}

// fillCredential prompts for the fields the kind of cred needs.
func fillCredential(c *cli.Context, cred *kubeauth.Credential) error {
	switch cred.Kind {
	case kubeauth.KindUsernamePassword:
		in := survey.Input{Message: "Username: "}
		fmt.Fprintln(os.Stderr)
		if err := testable.AskOne(&in, &cred.Username); err != nil {
			return err
		}
		return askSecret("Password: ", &cred.Secret)
	case kubeauth.KindToken, kubeauth.KindSecretText:
		return askSecret("Token: ", &cred.Secret)
	case kubeauth.KindCertificate:
		data, name, err := readPathFlag(c, "file", "PKCS#12 keystore path: ")
		if err != nil {
			return err
		}
		cred.Data, cred.FileName = data, name
		return askSecret("Keystore passphrase: ", &cred.Secret)
	case kubeauth.KindPEMCertificate:
		cert, _, err := readPathFlag(c, "cert-file", "Client certificate path: ")
		if err != nil {
			return err
		}
		key, _, err := readPathFlag(c, "key-file", "Private key path: ")
		if err != nil {
			return err
		}
		cred.Certificate, cred.PrivateKey = string(cert), string(key)
		return nil
	case kubeauth.KindFile:
		data, name, err := readPathFlag(c, "file", "Kubeconfig path: ")
		if err != nil {
			return err
		}
		cred.Data, cred.FileName = data, name
		return nil
	default:
		return &kubeauth.UnsupportedCredentialTypeError{ID: cred.ID, Kind: cred.Kind}
	}
}

// readKubeconfigFile returns the contents of the kubeconfig at path once it
// parses and its contexts only reference entries it defines.
func readKubeconfigFile(id, path string) ([]byte, error) {
	if _, err := kubeconfig.Load(path, kubeconfig.WithValidContexts); err != nil {
		return nil, &kubeauth.AuthBuildError{ID: id, Err: err}
	}
	return os.ReadFile(path)
}

// saveCredential checks that cred converts before storing it.
func saveCredential(c *cli.Context, cred kubeauth.Credential) error {
	if _, err := kubeauth.DefaultRegistry().Convert(&cred); err != nil {
		return err
	}
	store, err := credentialStore()
	if err != nil {
		return err
	}
	if err := store.Put(cred); err != nil {
		return err
	}
	clio.Successf("Saved %s to secure storage", cred.ID)

	alert := color.New(color.Bold, color.FgGreen).SprintfFunc()
	fmt.Fprintf(c.App.ErrWriter, "To run kubectl with these credentials: %s\n",
		alert("withkube exec --credentials-id %s -- kubectl get pods", cred.ID))
	return nil
}

func printCredentials(w io.Writer, creds []kubeauth.Credential) {
	table := newTable(w)
	table.SetHeader([]string{"ID", "KIND", "DESCRIPTION"})
	for _, cred := range creds {
		table.Append([]string{cred.ID, string(cred.Kind), cred.Description})
	}
	table.Render()
}
