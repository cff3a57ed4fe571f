// package config stores the withkube settings: the keyring the credentials
// live in, where kubeconfig files are written and the named bindings users
// can run commands against.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/common-fate/withkube/internal/build"
	"github.com/common-fate/withkube/pkg/kubewriter"
)

const (
	// permission for user to read/write.
	USER_READ_WRITE_PERM = 0644
)

const (
	// permission for user to read/write/execute.
	USER_READ_WRITE_EXECUTE_PERM = 0700
)

type Config struct {
	Keyring *KeyringConfig `toml:",omitempty"`

	// RestrictKubeconfigAccess writes kubeconfig files readable by their
	// owner only.
	RestrictKubeconfigAccess bool `toml:",omitempty"`

	// Workspace is the directory temporary kubeconfig files are written to.
	// Defaults to a folder inside the withkube config folder.
	Workspace string `toml:",omitempty"`

	// Defaults fill the blank fields of every binding.
	Defaults kubewriter.Binding `toml:",omitempty"`

	Bindings []NamedBinding `toml:",omitempty"`
}

type KeyringConfig struct {
	Backend                 *string `toml:",omitempty"`
	KeychainName            *string `toml:",omitempty"`
	FileDir                 *string `toml:",omitempty"`
	LibSecretCollectionName *string `toml:",omitempty"`
}

// NamedBinding is a binding saved in the config file.
type NamedBinding struct {
	Name string `toml:"name"`
	kubewriter.Binding
}

// NewDefaultConfig returns a config with OS specific defaults populated
func NewDefaultConfig() Config {
	// macos devices should default to the keychain backend
	if runtime.GOOS == "darwin" {
		keychain := "keychain"
		return Config{
			Keyring: &KeyringConfig{
				Backend: &keychain,
			},
		}
	}
	return Config{}
}

// checks and or creates the config folder on startup
func SetupConfigFolder() error {
	folder, err := ConfigFolder()
	if err != nil {
		return err
	}
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		err := os.MkdirAll(folder, USER_READ_WRITE_EXECUTE_PERM)
		if err != nil {
			return err
		}
	}
	return nil
}

func ConfigFolder() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(home, build.ConfigFolderName)
	if xdgConfigDir := os.Getenv("XDG_CONFIG_HOME"); !pathExists(configDir) && xdgConfigDir != "" {
		configDir = filepath.Join(xdgConfigDir, build.BinaryName)
	}

	return configDir, nil
}

func ConfigFilePath() (string, error) {
	folder, err := ConfigFolder()
	if err != nil {
		return "", err
	}
	return path.Join(folder, "config"), nil
}

// pathExists checks if a given file exists and returns true or false
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func Load() (*Config, error) {
	configFilePath, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configFilePath)
}

// LoadFile reads the config at configFilePath, creating an empty file when
// there is none.
func LoadFile(configFilePath string) (*Config, error) {
	file, err := os.OpenFile(configFilePath, os.O_RDWR|os.O_CREATE, USER_READ_WRITE_PERM)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c := NewDefaultConfig()

	_, err = toml.NewDecoder(file).Decode(&c)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configFilePath, err)
	}
	return &c, nil
}

func (c *Config) Save() error {
	configFilePath, err := ConfigFilePath()
	if err != nil {
		return err
	}
	return c.SaveFile(configFilePath)
}

func (c *Config) SaveFile(configFilePath string) error {
	file, err := os.OpenFile(configFilePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, USER_READ_WRITE_PERM)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(c)
}

// WorkspaceDir returns the directory kubeconfig files are written to.
func (c *Config) WorkspaceDir() (string, error) {
	if c.Workspace != "" {
		return c.Workspace, nil
	}
	folder, err := ConfigFolder()
	if err != nil {
		return "", err
	}
	return filepath.Join(folder, "kube"), nil
}

// FileOptions returns where and how kubeconfig files are written.
func (c *Config) FileOptions() (kubewriter.FileOptions, error) {
	dir, err := c.WorkspaceDir()
	if err != nil {
		return kubewriter.FileOptions{}, err
	}
	return kubewriter.FileOptions{Workspace: dir, Restricted: c.RestrictKubeconfigAccess}, nil
}

// Binding returns the saved binding called name with the defaults applied.
func (c *Config) Binding(name string) (kubewriter.Binding, bool, error) {
	for _, b := range c.Bindings {
		if b.Name == name {
			merged, err := c.WithDefaults(b.Binding)
			return merged, true, err
		}
	}
	return kubewriter.Binding{}, false, nil
}

// WithDefaults fills the blank fields of b from the configured defaults.
func (c *Config) WithDefaults(b kubewriter.Binding) (kubewriter.Binding, error) {
	if err := mergo.Merge(&b, c.Defaults); err != nil {
		return kubewriter.Binding{}, fmt.Errorf("applying binding defaults: %w", err)
	}
	return b, nil
}

// Validate checks binding names and namespaces. Values holding a variable
// reference are only known after interpolation and are not checked.
func (c *Config) Validate() error {
	if err := validateNamespace(c.Defaults.Namespace); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	seen := map[string]bool{}
	for _, b := range c.Bindings {
		if errs := validation.IsDNS1123Label(b.Name); len(errs) > 0 {
			return fmt.Errorf("binding name %q: %s", b.Name, strings.Join(errs, ", "))
		}
		if seen[b.Name] {
			return fmt.Errorf("binding %q is defined more than once", b.Name)
		}
		seen[b.Name] = true
		if err := validateNamespace(b.Namespace); err != nil {
			return fmt.Errorf("binding %q: %w", b.Name, err)
		}
	}
	return nil
}

func validateNamespace(ns string) error {
	if ns == "" || strings.Contains(ns, "$") {
		return nil
	}
	if errs := validation.IsDNS1123Label(ns); len(errs) > 0 {
		return fmt.Errorf("namespace %q: %s", ns, strings.Join(errs, ", "))
	}
	return nil
}
