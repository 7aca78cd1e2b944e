package crypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignedFixture(t *testing.T) (hash, sigB64, pubPEM string, key *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hash = ContentHash("STU123|Jane Doe|BSc Computer Science|A|2024-06-01")

	digest := sha256.Sum256([]byte(hash))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	return hash, base64.StdEncoding.EncodeToString(sig), pubPEM, key
}

func TestVerifySignature_Valid(t *testing.T) {
	hash, sig, pub, _ := newSignedFixture(t)
	assert.True(t, VerifySignature(hash, sig, pub))
}

func TestVerifySignature_PKCS1Armor(t *testing.T) {
	hash, sig, _, key := newSignedFixture(t)

	der := x509.MarshalPKCS1PublicKey(&key.PublicKey)
	pub := string(pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: der}))

	assert.True(t, VerifySignature(hash, sig, pub))
}

func TestVerifySignature_TamperedSignature(t *testing.T) {
	hash, sig, pub, _ := newSignedFixture(t)

	raw, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)
	raw[10] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	assert.False(t, VerifySignature(hash, tampered, pub))
}

func TestVerifySignature_WrongKey(t *testing.T) {
	hash, sig, _, _ := newSignedFixture(t)
	_, _, otherPub, _ := newSignedFixture(t)

	assert.False(t, VerifySignature(hash, sig, otherPub))
}

func TestVerifySignature_TamperedContent(t *testing.T) {
	_, sig, pub, _ := newSignedFixture(t)
	assert.False(t, VerifySignature(ContentHash("different content"), sig, pub))
}

func TestVerifySignature_MalformedInputs(t *testing.T) {
	hash, sig, pub, _ := newSignedFixture(t)

	tests := []struct {
		name string
		hash string
		sig  string
		pub  string
	}{
		{"empty key", hash, sig, ""},
		{"garbage key", hash, sig, "not a pem key"},
		{"truncated key body", hash, sig, "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----"},
		{"invalid base64 signature", hash, "%%%not-base64%%%", pub},
		{"empty signature", hash, "", pub},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifySignature(tt.hash, tt.sig, tt.pub))
		})
	}
}

func TestVerifySignature_NonRSAKey(t *testing.T) {
	hash, sig, _, _ := newSignedFixture(t)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)
	pub := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	assert.False(t, VerifySignature(hash, sig, pub))
}

func TestParseRSAPublicKey_IgnoresWhitespace(t *testing.T) {
	_, _, pub, _ := newSignedFixture(t)

	mangled := "  " + pub + "\n\n\t"
	key, err := ParseRSAPublicKey(mangled)
	require.NoError(t, err)
	assert.NotNil(t, key)
}

func TestContentHash(t *testing.T) {
	// SHA-256 of the empty string.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(""))
	assert.Len(t, ContentHash("anything"), 64)
	assert.NotEqual(t, ContentHash("a"), ContentHash("b"))
}
