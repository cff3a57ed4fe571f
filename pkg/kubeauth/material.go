// Package kubeauth turns stored credentials into the authentication material
// a kubeconfig is built from.
package kubeauth

import "github.com/common-fate/withkube/pkg/kubeconfig"

// Material is the result of resolving a credential. It is one of
// UsernamePassword, BearerToken, ClientCertificate or ImportedKubeconfig.
type Material interface {
	isMaterial()
}

// Synthesized is material that becomes a brand-new user entry.
// Every Material except ImportedKubeconfig implements it.
type Synthesized interface {
	Material
	AuthInfo() kubeconfig.AuthInfo
}

type UsernamePassword struct {
	Username string
	Password string
}

type BearerToken struct {
	Token string
}

// ClientCertificate holds a client certificate and its private key. Both may
// be PEM blocks or bare base64 bodies.
type ClientCertificate struct {
	Certificate string
	Key         string
}

// ImportedKubeconfig is a complete kubeconfig document stored as a
// credential. Overrides are applied on top of it rather than building a new
// user.
type ImportedKubeconfig struct {
	Config *kubeconfig.Config
}

func (UsernamePassword) isMaterial()   {}
func (BearerToken) isMaterial()        {}
func (ClientCertificate) isMaterial()  {}
func (ImportedKubeconfig) isMaterial() {}

func (m UsernamePassword) AuthInfo() kubeconfig.AuthInfo {
	return kubeconfig.AuthInfo{Username: m.Username, Password: m.Password}
}

func (m BearerToken) AuthInfo() kubeconfig.AuthInfo {
	return kubeconfig.AuthInfo{Token: m.Token}
}

func (m ClientCertificate) AuthInfo() kubeconfig.AuthInfo {
	return kubeconfig.AuthInfo{
		ClientCertificateData: EncodeBase64(WrapCertificate(m.Certificate)),
		ClientKeyData:         EncodeBase64(WrapPrivateKey(m.Key)),
	}
}
