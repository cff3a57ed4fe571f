// Copyright 2023 Volvo Car Corporation
// SPDX-License-Identifier: Apache-2.0

package kubeconfig

// TAKEN FROM: https://github.com/kubernetes/kubernetes/blob/master/staging/src/k8s.io/client-go/tools/clientcmd/api/v1/types.go
// -----------------------------------------------------------------------------
// KUBERNETES TYPES
//
// These types mirror the serialized (v1) kubeconfig schema rather than the
// internal clientcmd api, so that entries keep their order and no field is
// filled in with a default during a round trip.
// All the []byte fields are base64 strings, as they appear on disk.
// Extensions are kept as opaque values.

// Preferences holds general information to be use for cli interactions.
type Preferences struct {
	// +optional
	Colors bool `json:"colors,omitempty"`
	// +optional
	Extensions interface{} `json:"extensions,omitempty"`
}

// Cluster contains information about how to communicate with a kubernetes cluster
type Cluster struct {
	// Server is the address of the kubernetes cluster (https://hostname:port).
	Server string `json:"server,omitempty"`
	// +optional
	TLSServerName string `json:"tls-server-name,omitempty"`
	// InsecureSkipTLSVerify is a pointer so that an explicit false survives
	// serialization when it has been set on purpose.
	// +optional
	InsecureSkipTLSVerify *bool `json:"insecure-skip-tls-verify,omitempty"`
	// CertificateAuthority is the path to a cert file for the certificate authority.
	// +optional
	CertificateAuthority string `json:"certificate-authority,omitempty"`
	// CertificateAuthorityData is the base64 of PEM-encoded certificate authority
	// certificates. Overrides CertificateAuthority.
	// +optional
	CertificateAuthorityData string `json:"certificate-authority-data,omitempty"`
	// +optional
	ProxyURL string `json:"proxy-url,omitempty"`
	// +optional
	DisableCompression bool `json:"disable-compression,omitempty"`
	// +optional
	Extensions interface{} `json:"extensions,omitempty"`
}

// AuthInfo contains information that describes identity information.  This authenticate the user to the kubernetes cluster.
type AuthInfo struct {
	// +optional
	ClientCertificate string `json:"client-certificate,omitempty"`
	// ClientCertificateData is the base64 of a PEM-encoded client certificate.
	// +optional
	ClientCertificateData string `json:"client-certificate-data,omitempty"`
	// +optional
	ClientKey string `json:"client-key,omitempty"`
	// ClientKeyData is the base64 of a PEM-encoded client key.
	// +optional
	ClientKeyData string `json:"client-key-data,omitempty" datapolicy:"security-key"`
	// +optional
	Token string `json:"token,omitempty" datapolicy:"token"`
	// +optional
	TokenFile string `json:"tokenFile,omitempty"`
	// +optional
	Impersonate string `json:"as,omitempty"`
	// +optional
	ImpersonateUID string `json:"as-uid,omitempty"`
	// +optional
	ImpersonateGroups []string `json:"as-groups,omitempty"`
	// +optional
	ImpersonateUserExtra map[string][]string `json:"as-user-extra,omitempty"`
	// +optional
	Username string `json:"username,omitempty"`
	// +optional
	Password string `json:"password,omitempty" datapolicy:"password"`
	// +optional
	AuthProvider *AuthProviderConfig `json:"auth-provider,omitempty"`
	// +optional
	Exec *ExecConfig `json:"exec,omitempty"`
	// +optional
	Extensions interface{} `json:"extensions,omitempty"`
}

// AuthProviderConfig holds the configuration for a specified auth provider.
type AuthProviderConfig struct {
	Name string `json:"name"`
	// +optional
	Config map[string]string `json:"config,omitempty"`
}

// Context is a tuple of references to a cluster (how do I communicate with a kubernetes cluster), a user (how do I identify myself), and a namespace (what subset of resources do I want to work with)
type Context struct {
	// Cluster is the name of the cluster for this context
	Cluster string `json:"cluster,omitempty"`
	// User is the name of the authInfo for this context
	User string `json:"user,omitempty"`
	// +optional
	Namespace string `json:"namespace,omitempty"`
	// +optional
	Extensions interface{} `json:"extensions,omitempty"`
}

// ExecConfig specifies a command to provide client credentials. The command is exec'd
// and outputs structured stdout holding credentials.
type ExecConfig struct {
	Command string `json:"command"`
	// +optional
	Args []string `json:"args,omitempty"`
	// +optional
	Env []ExecEnvVar `json:"env,omitempty"`
	// Preferred input version of the ExecInfo.
	APIVersion string `json:"apiVersion,omitempty"`
	// +optional
	InstallHint string `json:"installHint,omitempty"`
	// +optional
	ProvideClusterInfo bool `json:"provideClusterInfo,omitempty"`
	// +optional
	InteractiveMode ExecInteractiveMode `json:"interactiveMode,omitempty"`
}

// ExecInteractiveMode is a string that describes an exec plugin's relationship with standard input.
type ExecInteractiveMode string

const (
	NeverExecInteractiveMode       ExecInteractiveMode = "Never"
	IfAvailableExecInteractiveMode ExecInteractiveMode = "IfAvailable"
	AlwaysExecInteractiveMode      ExecInteractiveMode = "Always"
)

// ExecEnvVar is used for setting environment variables when executing an exec-based credential plugin.
type ExecEnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
