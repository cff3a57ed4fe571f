// Copyright 2023 Volvo Car Corporation
// SPDX-License-Identifier: Apache-2.0

package kubeconfig

import (
	"errors"
	"fmt"
)

// Merge merges multiple kubeconfig files into one.
// Note that the order of the files is important: an entry of a later file
// replaces the entry of the same name from an earlier one, and the last
// non-empty current-context wins.
func Merge(cc ...*Config) (*Config, error) {
	if len(cc) == 0 {
		return nil, errors.New("no config to merge")
	}

	r := New()
	for _, c := range cc {
		if err := checkNotEmpty(c); err != nil {
			return nil, fmt.Errorf("merge: %w", err)
		}
		for _, cluster := range c.Clusters {
			cluster := cluster
			r.EditCluster(cluster.Name, func(dst *Cluster) { *dst = cluster.Cluster })
		}
		for _, ctx := range c.Contexts {
			ctx := ctx
			r.EditContext(ctx.Name, func(dst *Context) { *dst = ctx.Context })
		}
		for _, user := range c.Users {
			user := user
			r.EditUser(user.Name, func(dst *AuthInfo) { *dst = user.User })
		}
		if c.CurrentContext != "" {
			r.CurrentContext = c.CurrentContext
		}
		if c.Extensions != nil {
			r.Extensions = c.Extensions
		}
	}

	sortConfigEntries(r)

	return r, nil
}
