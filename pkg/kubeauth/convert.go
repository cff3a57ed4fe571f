package kubeauth

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/common-fate/withkube/pkg/kubeconfig"
	"software.sslmate.com/src/go-pkcs12"
)

// Converter turns a stored credential into Material.
type Converter func(cred *Credential) (Material, error)

// Registry maps credential kinds to their converter.
type Registry struct {
	converters map[Kind]Converter
}

// NewRegistry returns a registry with no converters.
func NewRegistry() *Registry {
	return &Registry{converters: map[Kind]Converter{}}
}

// DefaultRegistry returns a registry that converts every kind in Kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindUsernamePassword, convertUsernamePassword)
	r.Register(KindToken, convertToken)
	r.Register(KindSecretText, convertToken)
	r.Register(KindCertificate, convertPKCS12)
	r.Register(KindPEMCertificate, convertPEMCertificate)
	r.Register(KindFile, convertFile)
	return r
}

// Register sets the converter for kind, replacing any previous one.
func (r *Registry) Register(kind Kind, conv Converter) {
	r.converters[kind] = conv
}

// Convert returns the material for cred. A kind without a converter yields an
// UnsupportedCredentialTypeError; a converter failure yields an
// AuthBuildError.
func (r *Registry) Convert(cred *Credential) (Material, error) {
	conv, ok := r.converters[cred.Kind]
	if !ok {
		return nil, &UnsupportedCredentialTypeError{ID: cred.ID, Kind: cred.Kind}
	}
	m, err := conv(cred)
	if err != nil {
		return nil, &AuthBuildError{ID: cred.ID, Err: err}
	}
	return m, nil
}

func convertUsernamePassword(cred *Credential) (Material, error) {
	if cred.Username == "" {
		return nil, errors.New("username is empty")
	}
	return UsernamePassword{Username: cred.Username, Password: cred.Secret}, nil
}

func convertToken(cred *Credential) (Material, error) {
	if cred.Secret == "" {
		return nil, errors.New("token is empty")
	}
	return BearerToken{Token: cred.Secret}, nil
}

func convertPEMCertificate(cred *Credential) (Material, error) {
	if cred.Certificate == "" || cred.PrivateKey == "" {
		return nil, errors.New("certificate and private key are both required")
	}
	return ClientCertificate{Certificate: cred.Certificate, Key: cred.PrivateKey}, nil
}

// convertPKCS12 uses the leaf certificate and the key of the keystore.
func convertPKCS12(cred *Credential) (Material, error) {
	key, cert, _, err := pkcs12.DecodeChain(cred.Data, cred.Secret)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("read keystore key: %w", err)
	}

	return ClientCertificate{
		Certificate: string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})),
		Key:         string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
	}, nil
}

func convertFile(cred *Credential) (Material, error) {
	c, err := kubeconfig.Parse(cred.Data)
	if err != nil {
		return nil, fmt.Errorf("parse kubeconfig %q: %w", cred.FileName, err)
	}
	return ImportedKubeconfig{Config: c}, nil
}
