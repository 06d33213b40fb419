// Package tlsutil builds the TLS configuration used by clients to talk to HTTPS gateways, optionally authenticating
// using a client certificate.
package tlsutil

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"
	"golang.org/x/crypto/pkcs12"
)

// NewTLSConfig returns a client TLS config using the given options.
func NewTLSConfig(options TLSConfigOptions) (*tls.Config, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	config := &tls.Config{
		InsecureSkipVerify: options.NoSSLVerify, //nolint:gosec
		MinVersion:         options.MinVersion,
	}

	if config.MinVersion == 0 {
		config.MinVersion = tls.VersionTLS12
	}

	if err := populateClientCert(config, options); err != nil {
		return nil, fmt.Errorf("failed to populate client certificate: %w", err)
	}

	if err := populateRootCAs(config, options); err != nil {
		return nil, fmt.Errorf("failed to populate root certificate authorities: %w", err)
	}

	return config, nil
}

// populateClientCert loads the client certificate/key used for mutual TLS, if one was provided.
func populateClientCert(config *tls.Config, options TLSConfigOptions) error {
	if options.ClientCert == nil {
		return nil
	}

	blocks, err := certBlocks(options)
	if err != nil {
		return err
	}

	var cert tls.Certificate

	for _, block := range blocks {
		if strings.Contains(block.Type, "CERTIFICATE") {
			cert.Certificate = append(cert.Certificate, block.Bytes)
		}
	}

	if len(cert.Certificate) == 0 {
		return ParseCertKeyError{what: "certificates", password: len(options.Password) != 0}
	}

	// Parsed up-front, otherwise it's parsed during every handshake.
	cert.Leaf, err = x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse leaf certificate: %w", err)
	}

	cert.PrivateKey, err = parseKey(blocks, options)
	if err != nil {
		return fmt.Errorf("failed to parse key: %w", err)
	}

	if !keysMatch(cert.Leaf, cert.PrivateKey) {
		return ErrInvalidPublicPrivateKeyPair
	}

	config.Certificates = []tls.Certificate{cert}

	return nil
}

// certBlocks returns the PEM blocks of the client certificate, decrypting a PKCS#12 bundle if required.
func certBlocks(options TLSConfigOptions) ([]*pem.Block, error) {
	if options.ClientKey != nil {
		return pemBlocks(options.ClientCert), nil
	}

	blocks, err := pkcs12.ToPEM(options.ClientCert, string(options.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PKCS#12 bundle: %w", knownKeyError(err))
	}

	return blocks, nil
}

// pemBlocks returns every PEM block in the given data.
func pemBlocks(data []byte) []*pem.Block {
	blocks := make([]*pem.Block, 0, 1)

	for {
		var block *pem.Block

		block, data = pem.Decode(data)
		if block == nil {
			return blocks
		}

		blocks = append(blocks, block)
	}
}

// parseKey returns the private key for the client certificate, which either comes from the PKCS#12 bundle or the
// separate key file.
func parseKey(bundle []*pem.Block, options TLSConfigOptions) (crypto.PrivateKey, error) {
	if options.ClientKey == nil {
		for _, block := range bundle {
			if strings.Contains(block.Type, "PRIVATE KEY") {
				return parsePrivateKey(block.Bytes)
			}
		}

		return nil, ParseCertKeyError{what: "private key", password: true}
	}

	der := options.ClientKey
	if block, _ := pem.Decode(der); block != nil {
		der = block.Bytes
	}

	if len(options.Password) == 0 {
		return parsePrivateKey(der)
	}

	key, err := pkcs8.ParsePKCS8PrivateKey(der, options.Password)
	if err == nil {
		return key, nil
	}

	if errors.Is(knownKeyError(err), ErrInvalidPasswordInputDataOrKey) {
		return nil, ErrInvalidPasswordInputDataOrKey
	}

	// The key may be unencrypted, in which case the password was a mistake.
	if _, err := parsePrivateKey(der); err == nil {
		return nil, ErrPasswordProvidedButUnused
	}

	return nil, ParseCertKeyError{what: "private key", password: true}
}

// parsePrivateKey parses an unencrypted PKCS#1, PKCS#8 or EC private key, the same formats accepted by the 'tls'
// package.
func parsePrivateKey(der []byte) (crypto.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}

	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}

	return nil, ParseCertKeyError{what: "private key"}
}

// populateRootCAs adds the given certificates to the system pool.
func populateRootCAs(config *tls.Config, options TLSConfigOptions) error {
	if options.RootCAs == nil || options.NoSSLVerify {
		return nil
	}

	var err error

	// The system pool isn't available on all platforms.
	config.RootCAs, err = x509.SystemCertPool()
	if err != nil {
		config.RootCAs = x509.NewCertPool()
	}

	if !config.RootCAs.AppendCertsFromPEM(options.RootCAs) {
		return ParseCertKeyError{what: "certificates"}
	}

	return nil
}

// keysMatch returns a boolean indicating whether the private key belongs to the certificate, unknown key types are
// assumed to match and left for the handshake to reject.
func keysMatch(cert *x509.Certificate, key crypto.PrivateKey) bool {
	switch priv := key.(type) {
	case *rsa.PrivateKey:
		pub, ok := cert.PublicKey.(*rsa.PublicKey)
		return ok && priv.N.Cmp(pub.N) == 0
	case *ecdsa.PrivateKey:
		pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
		return ok && priv.X.Cmp(pub.X) == 0 && priv.Y.Cmp(pub.Y) == 0
	case ed25519.PrivateKey:
		pub, ok := cert.PublicKey.(ed25519.PublicKey)
		return ok && bytes.Equal(pub, priv.Public().(ed25519.PublicKey))
	}

	return true
}

// knownKeyError returns 'ErrInvalidPasswordInputDataOrKey' for errors caused by a wrong password or unsupported key,
// the given error otherwise.
func knownKeyError(err error) error {
	if errors.Is(err, pkcs12.ErrIncorrectPassword) {
		return ErrInvalidPasswordInputDataOrKey
	}

	for _, msg := range []string{"pkcs8: incorrect password", "unknown private key type", "with unknown algorithm"} {
		if strings.Contains(err.Error(), msg) {
			return ErrInvalidPasswordInputDataOrKey
		}
	}

	return err
}
