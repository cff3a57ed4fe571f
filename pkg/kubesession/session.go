// Package kubesession writes one kubeconfig per binding for the lifetime of a
// command and exposes them through KUBECONFIG.
package kubesession

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/common-fate/withkube/pkg/environ"
	"github.com/common-fate/withkube/pkg/kubeconfig"
	"github.com/common-fate/withkube/pkg/kubewriter"
	"golang.org/x/sync/errgroup"
)

// EnvVar is the variable kubectl reads its configuration files from.
const EnvVar = "KUBECONFIG"

type Options struct {
	Resolver kubewriter.Resolver
	// Env is the snapshot overrides are expanded against. It is also the
	// base environment of commands started with Run.
	Env  environ.Env
	File kubewriter.FileOptions
	Log  kubewriter.Logger
}

// Session owns the kubeconfig files written for a set of bindings.
type Session struct {
	paths []string
	opts  Options
}

// Open builds a kubeconfig for every binding and writes them to the
// workspace. Nothing is written unless every binding builds. When writing
// fails the files already written are removed.
func Open(ctx context.Context, bindings []kubewriter.Binding, opts Options) (*Session, error) {
	docs := make([]*kubeconfig.Config, len(bindings))

	var eg errgroup.Group
	for i, b := range bindings {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := kubewriter.BuildBinding(b, opts.Resolver, opts.Env, opts.Log)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s := &Session{opts: opts}
	for _, doc := range docs {
		path, err := kubewriter.WriteTemp(doc, opts.File, opts.Log)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.paths = append(s.paths, path)
	}
	return s, nil
}

// Paths returns the kubeconfig files in binding order.
func (s *Session) Paths() []string {
	return s.paths
}

// KubeconfigEnv returns the KUBECONFIG value for the session.
func (s *Session) KubeconfigEnv() string {
	return strings.Join(s.paths, string(os.PathListSeparator))
}

// Environ returns the session environment with KUBECONFIG set.
func (s *Session) Environ() environ.Env {
	return s.opts.Env.With(map[string]string{EnvVar: s.KubeconfigEnv()})
}

// Run starts name with the session environment and waits for it to exit.
func (s *Session) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = s.Environ().List()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Close removes every file of the session. It is safe to call more than
// once.
func (s *Session) Close() error {
	var errs []error
	for _, p := range s.paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	s.paths = nil
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.opts.Log.Infof("[withkube] kubectl configuration cleaned up")
	return nil
}
