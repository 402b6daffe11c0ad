package identity

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aryankumar/toolbase/internal/config"
	"github.com/aryankumar/toolbase/internal/util"
	"github.com/google/go-cmp/cmp"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

var (
	validFrom  = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	validUntil = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
)

// newCertPEM returns a self-signed client certificate for cn in orgs
func newCertPEM(t *testing.T, cn string, orgs ...string) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(42),
		Subject:      pkix.Name{CommonName: cn, Organization: orgs},
		Issuer:       pkix.Name{CommonName: "test-ca"},
		NotBefore:    validFrom,
		NotAfter:     validUntil,
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// newProvider writes a kubeconfig whose contexts select each named user
func newProvider(t *testing.T, current string, users map[string]*api.AuthInfo) *KubeconfigProvider {
	t.Helper()

	cfg := api.NewConfig()
	cfg.CurrentContext = current
	cfg.Clusters["grid"] = &api.Cluster{Server: "https://grid.example:6443"}
	for name, authInfo := range users {
		cfg.AuthInfos[name] = authInfo
		cfg.Contexts[name] = &api.Context{Cluster: "grid", AuthInfo: name, Namespace: "lhcb"}
	}

	path := filepath.Join(t.TempDir(), "config")
	if err := clientcmd.WriteToFile(*cfg, path); err != nil {
		t.Fatalf("failed to write kubeconfig: %v", err)
	}

	p := NewKubeconfigProvider(config.NewKubeconfigLoader(path, ""))
	p.now = func() time.Time { return validFrom.Add(24 * time.Hour) }
	return p
}

func TestKubeconfigProvider_ProxyInfo(t *testing.T) {
	certPEM := newCertPEM(t, "alice", "lhcb_user", "lhcb_prod")
	users := map[string]*api.AuthInfo{
		"alice":        {ClientCertificateData: certPEM},
		"basic":        {Username: "bob", Password: "secret"},
		"token":        {Token: "abc"},
		"impersonated": {Token: "abc", Impersonate: "carol", ImpersonateGroups: []string{"lhcb_admin"}},
		"empty":        {},
	}

	tests := []struct {
		name       string
		current    string
		extended   bool
		wantErr    error
		wantUser   string
		wantGroup  string
		wantMethod string
		check      func(t *testing.T, info *Info)
	}{
		{
			name:       "certificate user",
			current:    "alice",
			wantUser:   "alice",
			wantGroup:  "lhcb_user",
			wantMethod: MethodCertificate,
			check: func(t *testing.T, info *Info) {
				if info.Identity != "CN=alice,O=lhcb_user+O=lhcb_prod" {
					t.Errorf("unexpected identity %q", info.Identity)
				}
				if diff := cmp.Diff([]string{"lhcb_user", "lhcb_prod"}, info.Groups); diff != "" {
					t.Errorf("groups mismatch (-want +got):\n%s", diff)
				}
				if info.Issuer != "" || info.Cluster != "" {
					t.Error("issuer and cluster are only set for extended info")
				}
			},
		},
		{
			name:       "extended certificate info",
			current:    "alice",
			extended:   true,
			wantUser:   "alice",
			wantGroup:  "lhcb_user",
			wantMethod: MethodCertificate,
			check: func(t *testing.T, info *Info) {
				if info.Issuer != "CN=alice,O=lhcb_user+O=lhcb_prod" || info.Serial != "42" {
					t.Errorf("unexpected issuer/serial %q %q", info.Issuer, info.Serial)
				}
				if info.Cluster != "grid" || info.Namespace != "lhcb" {
					t.Errorf("unexpected location %q %q", info.Cluster, info.Namespace)
				}
			},
		},
		{
			name:       "basic auth has no group",
			current:    "basic",
			wantUser:   "bob",
			wantMethod: MethodBasic,
		},
		{
			name:       "token user is named after the entry",
			current:    "token",
			wantUser:   "token",
			wantMethod: MethodToken,
		},
		{
			name:       "impersonation",
			current:    "impersonated",
			wantUser:   "carol",
			wantGroup:  "lhcb_admin",
			wantMethod: MethodToken,
		},
		{
			name:    "user without credential",
			current: "empty",
			wantErr: util.ErrNoCredential,
		},
		{
			name:    "no current context",
			current: "",
			wantErr: util.ErrNoCredential,
		},
	}

	p := newProvider(t, "", users)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.loader = config.NewKubeconfigLoader(p.loader.GetPaths()[0], tt.current)

			info, err := p.ProxyInfo(tt.extended, false)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}

			if info.Username != tt.wantUser {
				t.Errorf("got username %q, want %q", info.Username, tt.wantUser)
			}
			if info.Group != tt.wantGroup {
				t.Errorf("got group %q, want %q", info.Group, tt.wantGroup)
			}
			if info.HasGroup() != (tt.wantGroup != "") {
				t.Errorf("HasGroup() = %v", info.HasGroup())
			}
			if info.Method != tt.wantMethod {
				t.Errorf("got method %q, want %q", info.Method, tt.wantMethod)
			}
			if info.Context != tt.current {
				t.Errorf("got context %q, want %q", info.Context, tt.current)
			}
			if tt.check != nil {
				tt.check(t, info)
			}
		})
	}
}

func TestKubeconfigProvider_Strict(t *testing.T) {
	p := newProvider(t, "alice", map[string]*api.AuthInfo{
		"alice": {ClientCertificateData: newCertPEM(t, "alice", "lhcb_user")},
	})

	if _, err := p.ProxyInfo(false, true); err != nil {
		t.Fatalf("certificate should be valid, got %v", err)
	}

	p.now = func() time.Time { return validUntil.Add(time.Hour) }

	if _, err := p.ProxyInfo(false, true); !errors.Is(err, util.ErrExpiredCredential) {
		t.Fatalf("expected ErrExpiredCredential, got %v", err)
	}
	if _, err := p.ProxyInfo(false, false); err != nil {
		t.Errorf("validity is only checked in strict mode, got %v", err)
	}
}

func TestKubeconfigProvider_CertificateFile(t *testing.T) {
	certPath := filepath.Join(t.TempDir(), "alice.crt")
	if err := os.WriteFile(certPath, newCertPEM(t, "alice", "lhcb_user"), 0600); err != nil {
		t.Fatalf("failed to write certificate: %v", err)
	}

	keyBlock := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte("key")})
	bundle := append(keyBlock, newCertPEM(t, "bob", "lhcb_prod")...)

	p := newProvider(t, "alice", map[string]*api.AuthInfo{
		"alice":  {ClientCertificate: certPath},
		"bundle": {ClientCertificateData: bundle},
		"broken": {ClientCertificateData: []byte("not a certificate")},
	})

	info, err := p.ProxyInfo(false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Username != "alice" || info.Group != "lhcb_user" {
		t.Errorf("unexpected info %+v", info)
	}

	p.loader = config.NewKubeconfigLoader(p.loader.GetPaths()[0], "bundle")
	info, err = p.ProxyInfo(false, false)
	if err != nil {
		t.Fatalf("non-certificate blocks should be skipped, got %v", err)
	}
	if info.Username != "bob" || info.Group != "lhcb_prod" {
		t.Errorf("unexpected info %+v", info)
	}

	p.loader = config.NewKubeconfigLoader(p.loader.GetPaths()[0], "broken")
	if _, err := p.ProxyInfo(false, false); err == nil {
		t.Error("expected error for malformed certificate")
	}
}

func TestKubeconfigProvider_DNForUsername(t *testing.T) {
	p := newProvider(t, "alice", map[string]*api.AuthInfo{
		"alice":      {ClientCertificateData: newCertPEM(t, "alice", "lhcb_user")},
		"alice-prod": {ClientCertificateData: newCertPEM(t, "alice", "lhcb_prod")},
		"bob":        {ClientCertificateData: newCertPEM(t, "bob", "lhcb_user")},
		"token":      {Token: "abc"},
	})

	dns, err := p.DNForUsername("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"CN=alice,O=lhcb_user", "CN=alice,O=lhcb_prod"}
	if diff := cmp.Diff(want, dns); diff != "" {
		t.Errorf("DNs mismatch (-want +got):\n%s", diff)
	}

	if _, err := p.DNForUsername("mallory"); !errors.Is(err, util.ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	info := &Info{
		Username:  "alice",
		Group:     "lhcb_user",
		Groups:    []string{"lhcb_user", "lhcb_prod"},
		Identity:  "CN=alice,O=lhcb_user",
		Method:    MethodCertificate,
		User:      "alice",
		Context:   "alice",
		NotBefore: validFrom,
		NotAfter:  validUntil,
	}

	got := Format(info)
	lines := strings.Split(got, "\n")

	want := []string{
		"username    : alice",
		"group       : lhcb_user",
		"groups      : lhcb_user, lhcb_prod",
		"identity    : CN=alice,O=lhcb_user",
		"method      : x509",
		"user        : alice",
		"context     : alice",
		"valid from  : 2026-01-01T00:00:00Z",
		"valid until : 2027-01-01T00:00:00Z",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}

	if Format(nil) != "" {
		t.Error("Format(nil) should be empty")
	}
}

func TestFields(t *testing.T) {
	info := &Info{Username: "alice", Method: MethodToken, Context: "grid"}

	want := []Field{
		{Key: "username", Value: "alice"},
		{Key: "method", Value: "token"},
		{Key: "context", Value: "grid"},
	}
	if diff := cmp.Diff(want, Fields(info)); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}

	if Fields(nil) != nil {
		t.Error("Fields(nil) should be nil")
	}
}
