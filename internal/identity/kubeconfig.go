package identity

import (
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/aryankumar/toolbase/internal/config"
	"github.com/aryankumar/toolbase/internal/util"
	"k8s.io/client-go/tools/clientcmd/api"
	certutil "k8s.io/client-go/util/cert"
)

// KubeconfigProvider reads the ambient credential from kubeconfig files
type KubeconfigProvider struct {
	loader *config.KubeconfigLoader
	now    func() time.Time
}

// NewKubeconfigProvider creates a provider backed by loader
func NewKubeconfigProvider(loader *config.KubeconfigLoader) *KubeconfigProvider {
	return &KubeconfigProvider{
		loader: loader,
		now:    time.Now,
	}
}

// ProxyInfo describes the user entry of the current context
func (p *KubeconfigProvider) ProxyInfo(extended, strict bool) (*Info, error) {
	user, authInfo, err := p.loader.CurrentUser()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrNoCredential, err)
	}

	info := &Info{
		User:    user.Name,
		Context: user.Context,
	}
	if extended {
		info.Cluster = util.ShortClusterName(user.Cluster)
		info.Namespace = user.Namespace
	}

	cert, err := clientCertificate(authInfo)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", user.Name, err)
	}

	switch {
	case cert != nil:
		info.Method = MethodCertificate
		info.Username = cert.Subject.CommonName
		if info.Username == "" {
			info.Username = user.Name
		}
		info.Groups = cert.Subject.Organization
		info.Identity = cert.Subject.String()
		info.NotBefore = cert.NotBefore
		info.NotAfter = cert.NotAfter
		if extended {
			info.Issuer = cert.Issuer.String()
			info.Serial = cert.SerialNumber.String()
		}
		if strict {
			if now := p.now(); now.Before(cert.NotBefore) || now.After(cert.NotAfter) {
				return nil, fmt.Errorf("%w: certificate of user %q valid from %s until %s",
					util.ErrExpiredCredential, user.Name,
					cert.NotBefore.UTC().Format(time.RFC3339), cert.NotAfter.UTC().Format(time.RFC3339))
			}
		}
	case authInfo.Username != "":
		info.Method = MethodBasic
		info.Username = authInfo.Username
	case authInfo.Token != "" || authInfo.TokenFile != "":
		info.Method = MethodToken
		info.Username = user.Name
	case authInfo.Exec != nil:
		info.Method = MethodExec
		info.Username = user.Name
	case authInfo.AuthProvider != nil:
		info.Method = MethodAuthProvider
		info.Username = user.Name
	default:
		return nil, fmt.Errorf("%w: user %q carries no credential", util.ErrNoCredential, user.Name)
	}

	// Impersonation replaces the identity the API server sees
	if authInfo.Impersonate != "" {
		info.Username = authInfo.Impersonate
		info.Groups = authInfo.ImpersonateGroups
		info.Identity = ""
	}

	if len(info.Groups) > 0 {
		info.Group = info.Groups[0]
	}

	return info, nil
}

// DNForUsername returns the certificate subjects of every kubeconfig user
// whose certificate common name is username
func (p *KubeconfigProvider) DNForUsername(username string) ([]string, error) {
	names, err := p.loader.Users()
	if err != nil {
		return nil, err
	}

	var dns []string
	for _, name := range names {
		authInfo, err := p.loader.User(name)
		if err != nil {
			return nil, err
		}
		cert, err := clientCertificate(authInfo)
		if err != nil || cert == nil {
			continue
		}
		if cert.Subject.CommonName == username {
			dns = append(dns, cert.Subject.String())
		}
	}

	if len(dns) == 0 {
		return nil, fmt.Errorf("%w: no certificate found for %q", util.ErrUnknownUser, username)
	}
	return dns, nil
}

// clientCertificate returns the parsed client certificate of authInfo, or
// nil when it has none
func clientCertificate(authInfo *api.AuthInfo) (*x509.Certificate, error) {
	data := authInfo.ClientCertificateData
	if len(data) == 0 && authInfo.ClientCertificate != "" {
		var err error
		data, err = os.ReadFile(authInfo.ClientCertificate)
		if err != nil {
			return nil, fmt.Errorf("failed to read client certificate: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, nil
	}

	certs, err := certutil.ParseCertsPEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client certificate: %w", err)
	}
	return certs[0], nil
}
