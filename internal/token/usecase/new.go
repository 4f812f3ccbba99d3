package usecase

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	credRepo "buildhook/internal/credential/repository"
	"buildhook/internal/token"
	"buildhook/pkg/encrypter"
	"buildhook/pkg/github"
	"buildhook/pkg/gitlab"
	"buildhook/pkg/log"
)

const (
	DefaultRefreshMargin = 5 * time.Minute

	installationCacheSize = 256
	// A cached installation token is only handed out with at least this much life left.
	installationTokenMinTTL = time.Minute
)

type Config struct {
	// RefreshMargin is the lead time before expiry at which GitLab tokens are refreshed.
	RefreshMargin time.Duration
	// GitHubCacheTTL enables the installation-token cache when positive.
	GitHubCacheTTL time.Duration
}

type implUseCase struct {
	creds  credRepo.Repository
	enc    encrypter.Encrypter
	github github.IGitHub
	gitlab gitlab.IGitLab
	l      log.Logger

	margin time.Duration
	cache  *expirable.LRU[int64, github.InstallationToken]
	now    func() time.Time

	// locks holds one *sync.Mutex per GitLab credential id.
	locks sync.Map
}

var _ token.UseCase = (*implUseCase)(nil)

// New creates the token manager. The credential store and encrypter are passed
// in so tests can build isolated instances.
func New(creds credRepo.Repository, enc encrypter.Encrypter, gh github.IGitHub, gl gitlab.IGitLab, l log.Logger, cfg Config) *implUseCase {
	uc := &implUseCase{
		creds:  creds,
		enc:    enc,
		github: gh,
		gitlab: gl,
		l:      l,
		margin: cfg.RefreshMargin,
		now:    time.Now,
	}
	if uc.margin <= 0 {
		uc.margin = DefaultRefreshMargin
	}
	if cfg.GitHubCacheTTL > 0 {
		uc.cache = expirable.NewLRU[int64, github.InstallationToken](installationCacheSize, nil, cfg.GitHubCacheTTL)
	}
	return uc
}

func (uc *implUseCase) credentialLock(id string) *sync.Mutex {
	mu, _ := uc.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
