package usecase

import (
	"strings"

	"buildhook/pkg/gitlab"
)

// NormalizeInstanceURL gives credentials one canonical key per GitLab instance.
func NormalizeInstanceURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return gitlab.DefaultInstanceURL
	}
	return strings.ToLower(u)
}

func (uc *implUseCase) encryptOptional(plaintext string) (*string, *string, error) {
	if plaintext == "" {
		return nil, nil, nil
	}
	ct, nonce, err := uc.enc.Encrypt([]byte(plaintext))
	if err != nil {
		return nil, nil, err
	}
	return &ct, &nonce, nil
}
