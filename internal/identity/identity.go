// Package identity resolves who is running the tool from ambient credentials.
//
// The ambient credential is the user entry of the current kubeconfig context.
// X.509 client certificates follow the Kubernetes convention: the subject
// common name is the username and each organization is a group.
package identity

import (
	"fmt"
	"strings"
	"time"
)

// Authentication methods reported in Info.Method
const (
	MethodCertificate  = "x509"
	MethodBasic        = "basic"
	MethodToken        = "token"
	MethodExec         = "exec"
	MethodAuthProvider = "auth-provider"
)

// Provider supplies the caller's identity
type Provider interface {
	// ProxyInfo describes the ambient credential. extended adds issuer and
	// location details; strict rejects credentials outside their validity
	// window.
	ProxyInfo(extended, strict bool) (*Info, error)

	// DNForUsername returns the distinguished names known for username
	DNForUsername(username string) ([]string, error)
}

// Info describes an ambient credential
type Info struct {
	Username  string    `json:"username" yaml:"username"`
	Group     string    `json:"group,omitempty" yaml:"group,omitempty"`
	Groups    []string  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Identity  string    `json:"identity,omitempty" yaml:"identity,omitempty"`
	Method    string    `json:"method" yaml:"method"`
	User      string    `json:"user" yaml:"user"`
	Context   string    `json:"context" yaml:"context"`
	Cluster   string    `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Namespace string    `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Issuer    string    `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Serial    string    `json:"serial,omitempty" yaml:"serial,omitempty"`
	NotBefore time.Time `json:"notBefore,omitempty" yaml:"notBefore,omitempty"`
	NotAfter  time.Time `json:"notAfter,omitempty" yaml:"notAfter,omitempty"`
}

// HasGroup reports whether the credential carries a group attribute
func (i *Info) HasGroup() bool {
	return i.Group != ""
}

// Field is one labelled value of Info
type Field struct {
	Key   string
	Value string
}

// Fields lists the non-empty values of info in display order
func Fields(info *Info) []Field {
	if info == nil {
		return nil
	}

	fields := []Field{
		{"username", info.Username},
		{"group", info.Group},
		{"groups", strings.Join(info.Groups, ", ")},
		{"identity", info.Identity},
		{"method", info.Method},
		{"user", info.User},
		{"context", info.Context},
		{"cluster", info.Cluster},
		{"namespace", info.Namespace},
		{"issuer", info.Issuer},
		{"serial", info.Serial},
	}
	if !info.NotAfter.IsZero() {
		fields = append(fields,
			Field{"valid from", info.NotBefore.UTC().Format(time.RFC3339)},
			Field{"valid until", info.NotAfter.UTC().Format(time.RFC3339)},
		)
	}

	out := fields[:0]
	for _, f := range fields {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// Format renders info as aligned "key : value" lines, skipping empty values
func Format(info *Info) string {
	var sb strings.Builder
	for _, f := range Fields(info) {
		fmt.Fprintf(&sb, "%-12s: %s\n", f.Key, f.Value)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
