// Copyright (c) 2023 Volvo Car Corporation
// SPDX-License-Identifier: Apache-2.0

/*
Package kubeconfig provides a simple way to manipulate kubeconfig files.

It allows you to :

  - [Load] a kubeconfig file from disk, or [Parse] one held in memory
  - edit clusters and contexts by name with [Config.EditCluster],
    [Config.EditContext] and [Config.SetCluster], which update an entry in
    place or append it when it does not exist yet
  - [Merge] multiple kubeconfig files
  - [Validate] a kubeconfig the way kubectl does

Entries keep the order they had in the source document, so an imported
kubeconfig round-trips without reordering.

Writing a kubeconfig to disk is done by [Config.Marshal]ing the config and
writing the bytes wherever they are needed.
*/
package kubeconfig
