package kubeauth

// Kind identifies the type of a stored credential.
type Kind string

const (
	KindUsernamePassword Kind = "username-password"
	KindToken            Kind = "token"
	// KindSecretText is an opaque secret string, used as a bearer token.
	KindSecretText Kind = "secret-text"
	// KindCertificate is a PKCS#12 keystore protected by a passphrase.
	KindCertificate Kind = "certificate"
	// KindPEMCertificate is a client certificate and key in PEM form.
	KindPEMCertificate Kind = "pem-certificate"
	// KindFile is a raw kubeconfig file.
	KindFile Kind = "file"
)

// Kinds lists every kind the default registry can convert.
var Kinds = []Kind{
	KindUsernamePassword,
	KindToken,
	KindSecretText,
	KindCertificate,
	KindPEMCertificate,
	KindFile,
}

// Credential is a credential as it is kept in the credential store.
// Which fields are used depends on Kind.
type Credential struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Description string `json:"description,omitempty"`

	Username string `json:"username,omitempty"`
	// Secret is the password, token, secret text or keystore passphrase.
	Secret string `json:"secret,omitempty"`

	Certificate string `json:"certificate,omitempty"`
	PrivateKey  string `json:"privateKey,omitempty"`

	// Data is the PKCS#12 keystore or the kubeconfig file contents.
	Data     []byte `json:"data,omitempty"`
	FileName string `json:"fileName,omitempty"`
}
