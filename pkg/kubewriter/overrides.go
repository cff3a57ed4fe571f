package kubewriter

import (
	"strings"

	"github.com/common-fate/withkube/pkg/environ"
)

// DefaultName is used for the context and the cluster when no name is given.
const DefaultName = "k8s"

// Overrides are the user supplied parts of a kubeconfig. Blank fields are
// unset.
type Overrides struct {
	ServerURL     string `toml:"serverUrl,omitempty" json:"serverUrl,omitempty"`
	CACertificate string `toml:"caCertificate,omitempty" json:"caCertificate,omitempty"`
	ClusterName   string `toml:"clusterName,omitempty" json:"clusterName,omitempty"`
	ContextName   string `toml:"contextName,omitempty" json:"contextName,omitempty"`
	Namespace     string `toml:"namespace,omitempty" json:"namespace,omitempty"`
}

// Binding pairs a credential with the overrides applied on top of it. An
// empty CredentialsID builds an in-cluster kubeconfig.
type Binding struct {
	CredentialsID string `toml:"credentialsId,omitempty" json:"credentialsId,omitempty"`
	Overrides
}

// provided reports whether v was set by the user.
func provided(v string) bool {
	return strings.TrimSpace(v) != ""
}

// Expand interpolates the server, cluster, context and namespace fields
// against env. The CA certificate is used as given.
func (o Overrides) Expand(env environ.Env) Overrides {
	return Overrides{
		ServerURL:     env.Expand(o.ServerURL),
		CACertificate: o.CACertificate,
		ClusterName:   env.Expand(o.ClusterName),
		ContextName:   env.Expand(o.ContextName),
		Namespace:     env.Expand(o.Namespace),
	}
}

func (o Overrides) contextOrDefault() string {
	if provided(o.ContextName) {
		return o.ContextName
	}
	return DefaultName
}

func (o Overrides) clusterOrDefault() string {
	if provided(o.ClusterName) {
		return o.ClusterName
	}
	return DefaultName
}
