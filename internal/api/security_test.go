package api

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ttportal/internal/config"
	"github.com/dtroode/ttportal/internal/testutil"
)

func createTestCertificate(t *testing.T, certFile, keyFile string) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Test"},
			Country:      []string{"PK"},
			Locality:     []string{"Lahore"},
		},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1)},
		IsCA:                  true,
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	certOut, err := os.Create(certFile)
	require.NoError(t, err)
	defer certOut.Close()

	err = pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	require.NoError(t, err)

	keyOut, err := os.Create(keyFile)
	require.NoError(t, err)
	defer keyOut.Close()

	privKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)

	err = pem.Encode(keyOut, &pem.Block{Type: "PRIVATE KEY", Bytes: privKeyBytes})
	require.NoError(t, err)
}

func startTLSBackend(t *testing.T, certFile, keyFile string) *httptest.Server {
	t.Helper()

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	require.NoError(t, err)

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}))
	srv.TLS = &tls.Config{Certificates: []tls.Certificate{cert}}
	srv.StartTLS()
	t.Cleanup(srv.Close)

	return srv
}

func TestTLSLayer_TrustsCustomCA(t *testing.T) {
	tmpDir := t.TempDir()
	certFile := filepath.Join(tmpDir, "cert.pem")
	keyFile := filepath.Join(tmpDir, "key.pem")
	createTestCertificate(t, certFile, keyFile)

	srv := startTLSBackend(t, certFile, keyFile)
	cfg := config.API{BaseURL: srv.URL + "/api", RequestTimeout: 2 * time.Second}

	transport, err := NewTLSLayer(certFile, certFile, keyFile).Transport()
	require.NoError(t, err)

	h, err := NewClient(cfg, nil, testutil.MakeNoopLogger(), WithTransport(transport)).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", h.Status)

	plain, err := NewPlainLayer().Transport()
	require.NoError(t, err)

	_, err = NewClient(cfg, nil, testutil.MakeNoopLogger(), WithTransport(plain)).Health(context.Background())
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindNetwork, kind)
}

func TestTLSLayer_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	garbage := filepath.Join(tmpDir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0o600))

	tests := []struct {
		name    string
		layer   *TLSLayer
		wantErr string
	}{
		{name: "missing CA file", layer: NewTLSLayer(filepath.Join(tmpDir, "nope.pem"), "", ""), wantErr: "failed to read CA certificate"},
		{name: "invalid CA file", layer: NewTLSLayer(garbage, "", ""), wantErr: "failed to parse CA certificate"},
		{name: "missing key pair", layer: NewTLSLayer("", garbage, garbage), wantErr: "failed to load TLS certificate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layer.Transport()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTLSLayer_SystemRoots(t *testing.T) {
	transport, err := NewTLSLayer("", "", "").Transport()
	require.NoError(t, err)

	ht, ok := transport.(*http.Transport)
	require.True(t, ok)
	assert.Nil(t, ht.TLSClientConfig.RootCAs)
	assert.Empty(t, ht.TLSClientConfig.Certificates)
}
