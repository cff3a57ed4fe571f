// Copyright 2023 Volvo Car Corporation
// SPDX-License-Identifier: Apache-2.0

package kubeconfig

import (
	"fmt"
	"reflect"

	"github.com/imdario/mergo"
)

const (
	version = "v1"
	kind    = "Config"
)

// New creates a new kubeconfig.
func New() *Config {
	return &Config{
		APIVersion: version,
		Kind:       kind,
		Clusters:   []*ClusterConfig{},
		Users:      []*UserConfig{},
		Contexts:   []*ContextConfig{},
	}
}

// Config is a kubeconfig.
type Config struct {
	Kind           string           `json:"kind"`
	APIVersion     string           `json:"apiVersion"`
	Preferences    Preferences      `json:"preferences"`
	CurrentContext string           `json:"current-context,omitempty"`
	Clusters       []*ClusterConfig `json:"clusters"`
	Contexts       []*ContextConfig `json:"contexts"`
	Users          []*UserConfig    `json:"users"`
	Extensions     interface{}      `json:"extensions,omitempty"`
}

// UserConfig is a user in a kubeconfig.
type UserConfig struct {
	Name string   `json:"name"`
	User AuthInfo `json:"user"`
}

// ContextConfig is a context in a kubeconfig.
type ContextConfig struct {
	Name    string  `json:"name"`
	Context Context `json:"context"`
}

// ClusterConfig is a cluster in a kubeconfig.
type ClusterConfig struct {
	Name    string  `json:"name"`
	Cluster Cluster `json:"cluster"`
}

func (c *ClusterConfig) entryName() string { return c.Name }
func (c *ContextConfig) entryName() string { return c.Name }
func (u *UserConfig) entryName() string    { return u.Name }

// AddUser adds a user to the kubeconfig.
func (c *Config) AddUser(user *UserConfig) error {
	if user == nil {
		return fmt.Errorf("add user: %w", errIsNil)
	}
	if reflect.ValueOf(user.User).IsZero() {
		return fmt.Errorf("add user: %w", errIsEmpty)
	}
	if c.GetUser(user.Name) != nil {
		return fmt.Errorf("add user: user %q already exists", user.Name)
	}
	c.Users = append(c.Users, user)
	return nil
}

// GetCluster returns the cluster with the provided name, or nil.
func (c *Config) GetCluster(name string) *ClusterConfig {
	return find(c.Clusters, name)
}

// GetContext returns the context with the provided name, or nil.
func (c *Config) GetContext(name string) *ContextConfig {
	return find(c.Contexts, name)
}

// GetUser returns the user with the provided name, or nil.
func (c *Config) GetUser(name string) *UserConfig {
	return find(c.Users, name)
}

// ContextExists returns true if the context with provided name exists
func (c *Config) ContextExists(name string) bool {
	return c.GetContext(name) != nil
}

// EditCluster applies edit to the cluster called name, appending an empty
// cluster of that name first if there is none.
func (c *Config) EditCluster(name string, edit func(*Cluster)) {
	entry := upsert(&c.Clusters, name, func(name string) *ClusterConfig {
		return &ClusterConfig{Name: name}
	})
	edit(&entry.Cluster)
}

// EditContext applies edit to the context called name, appending an empty
// context of that name first if there is none.
func (c *Config) EditContext(name string, edit func(*Context)) {
	entry := upsert(&c.Contexts, name, func(name string) *ContextConfig {
		return &ContextConfig{Name: name}
	})
	edit(&entry.Context)
}

// EditUser applies edit to the user called name, appending an empty user of
// that name first if there is none.
func (c *Config) EditUser(name string, edit func(*AuthInfo)) {
	entry := upsert(&c.Users, name, func(name string) *UserConfig {
		return &UserConfig{Name: name}
	})
	edit(&entry.User)
}

// SetCluster creates the cluster called name or overwrites the fields of an
// existing one with every non-empty field of cluster. The certificate
// authority and the insecure flag are replaced together with the values of
// cluster, so an existing CA never sits next to insecure-skip-tls-verify.
// Other fields that cluster leaves empty keep their current value.
func (c *Config) SetCluster(name string, cluster Cluster) error {
	var err error
	c.EditCluster(name, func(existing *Cluster) {
		err = mergo.Merge(existing, cluster, mergo.WithOverride)
		// mergo never overrides with a zero value
		existing.CertificateAuthority = cluster.CertificateAuthority
		existing.CertificateAuthorityData = cluster.CertificateAuthorityData
		existing.InsecureSkipTLSVerify = nil
		if cluster.InsecureSkipTLSVerify != nil {
			skip := *cluster.InsecureSkipTLSVerify
			existing.InsecureSkipTLSVerify = &skip
		}
	})
	if err != nil {
		return fmt.Errorf("set cluster %q: %w", name, err)
	}
	return nil
}

// SetContextCluster points the context called name at cluster.
func (c *Config) SetContextCluster(name, cluster string) {
	c.EditContext(name, func(ctx *Context) { ctx.Cluster = cluster })
}

// SetContextNamespace sets the default namespace of the context called name.
func (c *Config) SetContextNamespace(name, namespace string) {
	c.EditContext(name, func(ctx *Context) { ctx.Namespace = namespace })
}

// UseContext updates the current context. The context does not need to exist
// yet.
func (c *Config) UseContext(name string) {
	c.CurrentContext = name
}
