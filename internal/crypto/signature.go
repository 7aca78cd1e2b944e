package crypto

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// VerifySignature checks an RSA PKCS#1 v1.5 signature with SHA-256 over the
// UTF-8 bytes of contentHash. The content hash is treated as opaque signed
// data; it is not recomputed from certificate fields here.
//
// Returns false for any malformed key, malformed base64 signature or
// cryptographic mismatch. Malformed input and a failed check are not
// distinguishable to the caller.
func VerifySignature(contentHash, signatureB64, publicKeyPEM string) bool {
	pub, err := ParseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}

	digest := sha256.Sum256([]byte(contentHash))
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], sig) == nil
}

// ParseRSAPublicKey parses a PEM-armored RSA public key. Both the generic
// "PUBLIC KEY" (PKIX) armor and the RSA-specific "RSA PUBLIC KEY" (PKCS#1)
// armor are accepted; all whitespace inside the body is ignored.
func ParseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	body := strings.NewReplacer(
		"-----BEGIN PUBLIC KEY-----", "",
		"-----END PUBLIC KEY-----", "",
		"-----BEGIN RSA PUBLIC KEY-----", "",
		"-----END RSA PUBLIC KEY-----", "",
	).Replace(publicKeyPEM)
	body = strings.Join(strings.Fields(body), "")

	der, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("decode public key body: %w", err)
	}

	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		pub, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is %T, not RSA", key)
		}
		return pub, nil
	}

	pub, err := x509.ParsePKCS1PublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return pub, nil
}

// ContentHash computes the hex-encoded SHA-256 digest of data. This is the
// issuance-side primitive that produces the certificate content hash.
func ContentHash(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}
