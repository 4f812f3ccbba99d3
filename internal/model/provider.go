package model

import "fmt"

// Provider is the closed set of Git hosting providers the control plane talks to.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

// ParseProvider validates a provider name.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGitHub:
		return ProviderGitHub, nil
	case ProviderGitLab:
		return ProviderGitLab, nil
	default:
		return "", fmt.Errorf("unknown provider %q", s)
	}
}

func (p Provider) String() string {
	return string(p)
}
