// Package kubewriter builds the kubeconfig a command runs against, from a
// credential and a set of overrides, and writes it to a temporary file.
package kubewriter

import (
	"fmt"

	"github.com/common-fate/grab"
	"github.com/common-fate/withkube/pkg/environ"
	"github.com/common-fate/withkube/pkg/kubeauth"
	"github.com/common-fate/withkube/pkg/kubeconfig"
)

// Resolver turns a credential id into authentication material.
// *kubeauth.Resolver satisfies it.
type Resolver interface {
	Resolve(id string) (kubeauth.Material, error)
}

// BuildBinding expands the overrides of b against env, resolves its
// credential and builds the kubeconfig.
func BuildBinding(b Binding, resolver Resolver, env environ.Env, log Logger) (*kubeconfig.Config, error) {
	ov := b.Overrides.Expand(env)
	if !provided(b.CredentialsID) {
		return InCluster(ov), nil
	}
	m, err := resolver.Resolve(b.CredentialsID)
	if err != nil {
		return nil, err
	}
	return Build(ov, b.CredentialsID, m, log)
}

// Build returns a new kubeconfig for credentialID. ov must already be
// expanded. An ImportedKubeconfig is modified in place and returned.
func Build(ov Overrides, credentialID string, m kubeauth.Material, log Logger) (*kubeconfig.Config, error) {
	log = orNop(log)
	switch m := m.(type) {
	case kubeauth.ImportedKubeconfig:
		if m.Config == nil {
			return nil, &kubeauth.AuthBuildError{ID: credentialID, Err: fmt.Errorf("kubeconfig is empty")}
		}
		return imported(m.Config, ov, log)
	case kubeauth.Synthesized:
		return synthesized(ov, credentialID, m)
	case nil:
		return InCluster(ov), nil
	default:
		return nil, fmt.Errorf("[withkube] unsupported authentication %T", m)
	}
}

// InCluster returns a kubeconfig holding a single context and no cluster or
// user, for processes that get their credentials from the environment they
// run in.
func InCluster(ov Overrides) *kubeconfig.Config {
	c := kubeconfig.New()
	complete(c, ov)
	return c
}

func synthesized(ov Overrides, credentialID string, m kubeauth.Synthesized) (*kubeconfig.Config, error) {
	c := kubeconfig.New()
	cluster := ov.clusterOrDefault()

	cl := newCluster(ov)
	if provided(ov.CACertificate) {
		// an explicit false is left out of the document
		cl.InsecureSkipTLSVerify = nil
	}
	c.EditCluster(cluster, func(existing *kubeconfig.Cluster) { *existing = cl })
	c.EditContext(ov.contextOrDefault(), func(ctx *kubeconfig.Context) {
		ctx.Cluster = cluster
		ctx.User = credentialID
	})
	if err := c.AddUser(&kubeconfig.UserConfig{Name: credentialID, User: m.AuthInfo()}); err != nil {
		return nil, &kubeauth.AuthBuildError{ID: credentialID, Err: err}
	}

	complete(c, ov)
	return c, nil
}

// complete makes sure the selected context exists, applies the namespace and
// selects it.
func complete(c *kubeconfig.Config, ov Overrides) {
	context := ov.contextOrDefault()
	c.EditContext(context, func(*kubeconfig.Context) {})
	if provided(ov.Namespace) {
		c.SetContextNamespace(context, ov.Namespace)
	}
	c.UseContext(context)
}

func imported(c *kubeconfig.Config, ov Overrides, log Logger) (*kubeconfig.Config, error) {
	current := c.CurrentContext
	if provided(ov.ContextName) {
		current = ov.ContextName
		if !c.ContextExists(current) {
			log.Warnf("[withkube] context '%s' doesn't exist in kubeconfig", current)
		}
		c.UseContext(current)
	}

	editsContext := provided(ov.ServerURL) || provided(ov.ClusterName) || provided(ov.Namespace)
	if editsContext && current == "" {
		current = DefaultName
		c.UseContext(current)
	}

	if provided(ov.ServerURL) {
		if err := c.SetCluster(ov.clusterOrDefault(), newCluster(ov)); err != nil {
			return nil, err
		}
	}
	if provided(ov.ServerURL) || provided(ov.ClusterName) {
		c.SetContextCluster(current, ov.clusterOrDefault())
	}
	if provided(ov.Namespace) {
		c.SetContextNamespace(current, ov.Namespace)
	}
	return c, nil
}

// newCluster returns a cluster for the server override, trusting the CA
// override when one is given and skipping TLS verification otherwise.
func newCluster(ov Overrides) kubeconfig.Cluster {
	cl := kubeconfig.Cluster{Server: ov.ServerURL}
	if provided(ov.CACertificate) {
		cl.CertificateAuthorityData = kubeauth.EncodeBase64(kubeauth.WrapCertificate(ov.CACertificate))
	}
	cl.InsecureSkipTLSVerify = grab.Ptr(!provided(ov.CACertificate))
	return cl
}
