package api

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/dtroode/ttportal/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSLayer)(nil)
	_ model.SecurityLayer = (*PlainLayer)(nil)
)

// TLSLayer connects to the backend over TLS with a custom trust root and an
// optional client certificate.
type TLSLayer struct {
	caFile   string
	certFile string
	keyFile  string
}

// NewTLSLayer creates a new TLSLayer. Empty file names are skipped: without
// caFile the system roots are used, without certFile no client certificate
// is presented.
func NewTLSLayer(caFile, certFile, keyFile string) *TLSLayer {
	return &TLSLayer{
		caFile:   caFile,
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Transport loads the certificates and returns a transport using them.
func (l *TLSLayer) Transport() (http.RoundTripper, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if l.caFile != "" {
		pem, err := os.ReadFile(l.caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.New("failed to parse CA certificate")
		}
		tlsConfig.RootCAs = pool
	}

	if l.certFile != "" {
		cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = tlsConfig
	return t, nil
}

// PlainLayer uses the default transport and system trust roots.
type PlainLayer struct{}

func NewPlainLayer() *PlainLayer {
	return &PlainLayer{}
}

func (l *PlainLayer) Transport() (http.RoundTripper, error) {
	return http.DefaultTransport, nil
}
