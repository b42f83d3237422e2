package usecase

import (
	"go.uber.org/fx"

	"github.com/verdora/ecotrade/internal/config"
	"github.com/verdora/ecotrade/internal/domain/repository"
	pkgAuth "github.com/verdora/ecotrade/internal/pkg/auth"
)

// Module provides core account use cases to the fx container.
var Module = fx.Provide(newAuthUseCase)

type authParams struct {
	fx.In

	Accounts repository.AccountRepository
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
	Config   *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Accounts, p.Hasher, p.Strategy, p.Config.StartingGrant)
}
