package service

import (
	"context"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/internal/repository/repoargs"
	"github.com/fsdevblog/founderpass/pkg/uow"
)

// ProfileService читает профили. Запись (грант доступа) остается исключительно
// за PaymentService.
type ProfileService struct {
	profileRepo ProfileRepository
}

func NewProfileService(u uow.UOW) (*ProfileService, error) {
	profileRepo, err := uow.GetRepositoryAs[ProfileRepository](u, uow.RepositoryName(repoargs.ProfileRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &ProfileService{profileRepo: profileRepo}, nil
}

func (p *ProfileService) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := p.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return profile, nil
}
