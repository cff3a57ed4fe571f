// Package environ holds the environment snapshot that kubeconfig overrides
// are interpolated against.
package environ

import (
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// Env is a snapshot of environment variables.
type Env map[string]string

// FromOS captures the environment of the current process.
func FromOS() Env {
	env := Env{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}
	return env
}

// Snapshot captures the environment of the current process and layers the
// given dotenv files over it, later files taking precedence.
func Snapshot(dotenvFiles ...string) (Env, error) {
	env := FromOS()
	for _, f := range dotenvFiles {
		vars, err := godotenv.Read(f)
		if err != nil {
			return nil, err
		}
		for k, v := range vars {
			env[k] = v
		}
	}
	return env, nil
}

// With returns a copy of env with the given variables set.
func (e Env) With(vars map[string]string) Env {
	out := make(Env, len(e)+len(vars))
	for k, v := range e {
		out[k] = v
	}
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// List renders env as KEY=VALUE pairs, the form exec.Cmd expects.
func (e Env) List() []string {
	out := make([]string, 0, len(e))
	for k, v := range e {
		out = append(out, k+"="+v)
	}
	return out
}

var reference = regexp.MustCompile(`\$(?:\{([A-Za-z_][A-Za-z0-9_.]*)\}|([A-Za-z_][A-Za-z0-9_]*))`)

// Expand replaces $VAR and ${VAR} references in s with their value in env.
// References to variables that are not set are left untouched.
func (e Env) Expand(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return reference.ReplaceAllStringFunc(s, func(ref string) string {
		m := reference.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if v, ok := e[name]; ok {
			return v
		}
		return ref
	})
}
