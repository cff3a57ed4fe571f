// Copyright 2023 Volvo Car Corporation
// SPDX-License-Identifier: Apache-2.0

package kubeconfig

import (
	"errors"
	"fmt"

	"k8s.io/client-go/tools/clientcmd"
)

var (
	errIsNil   = errors.New("is nil")
	errIsEmpty = errors.New("is empty")
)

// ValidationFunc is used to validate a kubeconfig.
type ValidationFunc func(*Config) error

// WithValidContexts checks that each context references a known cluster and,
// when it names one, a known user.
func WithValidContexts(c *Config) error {
	clusterSet := make(map[string]struct{})
	userSet := make(map[string]struct{})

	for _, cluster := range c.Clusters {
		clusterSet[cluster.Name] = struct{}{}
	}
	for _, user := range c.Users {
		userSet[user.Name] = struct{}{}
	}
	for _, ctx := range c.Contexts {
		if _, ok := clusterSet[ctx.Context.Cluster]; !ok {
			return fmt.Errorf(
				"context %q references unknown cluster %q",
				ctx.Name,
				ctx.Context.Cluster,
			)
		}
		if ctx.Context.User == "" {
			continue
		}
		if _, ok := userSet[ctx.Context.User]; !ok {
			return fmt.Errorf(
				"context %q references unknown user %q",
				ctx.Name,
				ctx.Context.User,
			)
		}
	}
	return nil
}

// WithCurrentContext checks that current-context names an existing context.
func WithCurrentContext(c *Config) error {
	if c.CurrentContext == "" {
		return errors.New("current-context is not set")
	}
	if !c.ContextExists(c.CurrentContext) {
		return fmt.Errorf("current-context %q does not exist", c.CurrentContext)
	}
	return nil
}

// WithConsistentTLS checks that no cluster both trusts a certificate
// authority and skips TLS verification, a pair client-go refuses to use.
func WithConsistentTLS(c *Config) error {
	for _, cluster := range c.Clusters {
		cl := cluster.Cluster
		skip := cl.InsecureSkipTLSVerify != nil && *cl.InsecureSkipTLSVerify
		if skip && (cl.CertificateAuthority != "" || cl.CertificateAuthorityData != "") {
			return fmt.Errorf(
				"cluster %q sets a certificate authority and insecure-skip-tls-verify",
				cluster.Name,
			)
		}
	}
	return nil
}

// Validate runs the client-go validation over c, the same checks kubectl
// applies before it uses a kubeconfig.
func Validate(c *Config) error {
	b, err := c.Marshal()
	if err != nil {
		return err
	}
	apiConfig, err := clientcmd.Load(b)
	if err != nil {
		return fmt.Errorf("load kubeconfig with client-go: %w", err)
	}
	return clientcmd.Validate(*apiConfig)
}
