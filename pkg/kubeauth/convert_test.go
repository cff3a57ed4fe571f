package kubeauth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"software.sslmate.com/src/go-pkcs12"
)

// testKeystore returns a PKCS#12 keystore holding a self-signed client
// certificate, encrypted with AES the way OpenSSL 3 does by default.
func testKeystore(t *testing.T, passphrase string) ([]byte, *x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "bob", Organization: []string{"developers"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	pfx, err := pkcs12.Modern.Encode(key, cert, nil, passphrase)
	require.NoError(t, err)
	return pfx, cert, key
}

func TestConvertPKCS12(t *testing.T) {
	pfx, cert, key := testKeystore(t, "changeit")

	m, err := DefaultRegistry().Convert(&Credential{ID: "cert", Kind: KindCertificate, Data: pfx, Secret: "changeit"})
	require.NoError(t, err)
	got, ok := m.(ClientCertificate)
	require.True(t, ok)

	certBlock, _ := pem.Decode([]byte(got.Certificate))
	require.NotNil(t, certBlock)
	assert.Equal(t, "CERTIFICATE", certBlock.Type)
	assert.Equal(t, cert.Raw, certBlock.Bytes)

	keyBlock, _ := pem.Decode([]byte(got.Key))
	require.NotNil(t, keyBlock)
	assert.Equal(t, "PRIVATE KEY", keyBlock.Type)
	parsed, err := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
	require.NoError(t, err)
	assert.True(t, key.Equal(parsed))

	// the material is already wrapped, so it is only base64 encoded
	auth := got.AuthInfo()
	assert.Equal(t, EncodeBase64(got.Certificate), auth.ClientCertificateData)
	assert.Equal(t, EncodeBase64(got.Key), auth.ClientKeyData)
}

func TestConvertPKCS12WrongPassphrase(t *testing.T) {
	pfx, _, _ := testKeystore(t, "changeit")

	_, err := DefaultRegistry().Convert(&Credential{ID: "cert", Kind: KindCertificate, Data: pfx, Secret: "wrong"})
	var build *AuthBuildError
	require.ErrorAs(t, err, &build)
	assert.Equal(t, "cert", build.ID)
	assert.ErrorIs(t, err, pkcs12.ErrIncorrectPassword)
}
