package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/domain/company"
	sleredis "github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/redis"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/repository"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"
)

// DirectoryService is the account-directory lookup: company id to display
// profile, with a short-lived redis cache in front of the store. Cache
// failures degrade to direct reads, never to request failures.
type DirectoryService struct {
	companyRepo repository.CompanyRepository
	cache       *sleredis.ProfileCache
	logger      *logger.Logger
}

func NewDirectoryService(companyRepo repository.CompanyRepository, cache *sleredis.ProfileCache, l *logger.Logger) *DirectoryService {
	return &DirectoryService{companyRepo: companyRepo, cache: cache, logger: l}
}

func (s *DirectoryService) Profile(ctx context.Context, id uuid.UUID) (company.Profile, error) {
	if id == uuid.Nil {
		return company.Profile{}, sle_errors.Invalid("company id is required")
	}
	if s.cache != nil {
		if cached, err := s.cache.GetProfile(ctx, id); err == nil && cached != nil {
			return *cached, nil
		}
	}

	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.Profile{}, err
	}
	profile := company.ProfileOf(c)

	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, profile); err != nil && s.logger != nil {
			s.logger.Warnf("profile cache write failed for %s: %v", id, err)
		}
	}
	return profile, nil
}

// Profiles resolves a batch of ids. Unknown ids are simply absent from the
// result; the caller decides whether that is an error.
func (s *DirectoryService) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]company.Profile, error) {
	out := make(map[uuid.UUID]company.Profile, len(ids))
	missing := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := out[id]; ok {
			continue
		}
		if s.cache != nil {
			if cached, err := s.cache.GetProfile(ctx, id); err == nil && cached != nil {
				out[id] = *cached
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		companies, err := s.companyRepo.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, c := range companies {
			profile := company.ProfileOf(c)
			out[c.ID] = profile
			if s.cache != nil {
				_ = s.cache.SetProfile(ctx, profile)
			}
		}
	}
	return out, nil
}
