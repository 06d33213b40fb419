package tlsutil

import "errors"

// TLSConfigOptions encapsulates the options for creating the TLS config used to talk to HTTPS gateways.
type TLSConfigOptions struct {
	// ClientCert is a PEM encoded certificate chain, or a PKCS#12 bundle (containing the key) when 'ClientKey' is
	// <nil>.
	ClientCert []byte

	// ClientKey is a PEM/DER encoded private key, optionally an encrypted PKCS#8 key.
	ClientKey []byte

	// Password decrypts the client key/bundle.
	Password []byte

	// RootCAs are PEM encoded certificates trusted in addition to the system pool.
	RootCAs []byte

	// NoSSLVerify disables verification of the gateway certificates.
	NoSSLVerify bool

	// MinVersion defaults to TLS 1.2.
	MinVersion uint16
}

// Validate returns an error if the given options are inconsistent.
func (t *TLSConfigOptions) Validate() error {
	if len(t.Password) != 0 && t.ClientCert == nil {
		return errors.New("password provided without a client cert/key")
	}

	if t.ClientCert == nil && t.ClientKey != nil {
		return errors.New("client key provided without a certificate")
	}

	if t.ClientCert != nil && t.ClientKey == nil && len(t.Password) == 0 {
		return errors.New("client cert provided without a key or password; expected an encrypted PKCS#12 bundle")
	}

	return nil
}
