package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository"
)

var (
	ErrFestivalNotFound = repository.ErrFestivalNotFound
)

type FestivalRepository interface {
	Create(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	FindByID(ctx context.Context, id string) (domain.Festival, error)
	Find(ctx context.Context, filter domain.FestivalFilter) ([]domain.Festival, error)
	Update(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	Delete(ctx context.Context, id string) error
}

// FestivalVisitRepository is the slice of the visit store a festival
// deletion cascades into.
type FestivalVisitRepository interface {
	DeleteByFestivalID(ctx context.Context, festivalID string) (int64, error)
}

type FestivalService struct {
	repo   FestivalRepository
	visits FestivalVisitRepository
	now    func() time.Time
}

func NewFestivalService(repo FestivalRepository, visits FestivalVisitRepository) *FestivalService {
	return &FestivalService{
		repo:   repo,
		visits: visits,
		now:    time.Now,
	}
}

func (s *FestivalService) ListFestivals(ctx context.Context, filter domain.FestivalFilter) ([]domain.Festival, error) {
	festivals, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return festivals, nil
}

func (s *FestivalService) ListHiddenGems(ctx context.Context) ([]domain.Festival, error) {
	hidden := true
	return s.ListFestivals(ctx, domain.FestivalFilter{IsHiddenGem: &hidden})
}

// ListUpcoming returns festivals starting now or later, soonest first.
func (s *FestivalService) ListUpcoming(ctx context.Context) ([]domain.Festival, error) {
	now := s.now()
	return s.ListFestivals(ctx, domain.FestivalFilter{StartsFrom: &now})
}

func (s *FestivalService) GetFestival(ctx context.Context, id string) (domain.Festival, error) {
	festival, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return festival, nil
}

func (s *FestivalService) CreateFestival(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	festival.ID = ""
	if err := festival.Validate(); err != nil {
		return domain.Festival{}, err
	}

	created, err := s.repo.Create(ctx, festival)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FestivalService) UpdateFestival(ctx context.Context, id string, patch domain.FestivalPatch) (domain.Festival, error) {
	festival, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	patch.Apply(&festival)
	if err = festival.Validate(); err != nil {
		return domain.Festival{}, err
	}

	updated, err := s.repo.Update(ctx, festival)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteFestival removes the festival and then the planned visits that
// point at it. The cascade is best effort: the festival is already gone, and
// visits left behind are still filtered out when listed.
func (s *FestivalService) DeleteFestival(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	removed, err := s.visits.DeleteByFestivalID(ctx, id)
	if err != nil {
		zap.L().Error("failed to delete planned visits of deleted festival",
			zap.String("festival_id", id), zap.Error(err))
		return nil
	}
	if removed > 0 {
		zap.L().Info("deleted planned visits of deleted festival",
			zap.String("festival_id", id), zap.Int64("count", removed))
	}

	return nil
}
