package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository"
)

var (
	ErrVisitNotFound = repository.ErrVisitNotFound

	errInvalidFestivalID = errors.New("invalid festival ID")
	errUnknownFestival   = errors.New("festival does not exist")
	errInvalidVisitID    = errors.New("invalid visit ID")
)

type VisitRepository interface {
	ValidID(id string) bool
	Create(ctx context.Context, visit domain.PlannedVisit) (domain.PlannedVisit, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.PlannedVisit, int, error)
	FindOwned(ctx context.Context, id, userID string) (domain.PlannedVisit, error)
	UpdateOwned(ctx context.Context, visit domain.PlannedVisit) (domain.PlannedVisit, error)
	DeleteOwned(ctx context.Context, id, userID string) error
}

type VisitFestivalRepository interface {
	ValidID(id string) bool
	FindByID(ctx context.Context, id string) (domain.Festival, error)
}

type VisitService struct {
	repo      VisitRepository
	festivals VisitFestivalRepository
}

func NewVisitService(repo VisitRepository, festivals VisitFestivalRepository) *VisitService {
	return &VisitService{
		repo:      repo,
		festivals: festivals,
	}
}

func (s *VisitService) ListForUser(ctx context.Context, userID string) ([]domain.PlannedVisit, error) {
	visits, dropped, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	if dropped > 0 {
		zap.L().Warn("skipped planned visits whose festival no longer exists",
			zap.String("user_id", userID), zap.Int("count", dropped))
	}

	return visits, nil
}

// CreateVisit stores a new visit for visit.UserID. The festival must exist
// at creation time; the status always starts as planned.
func (s *VisitService) CreateVisit(ctx context.Context, visit domain.PlannedVisit) (domain.PlannedVisit, error) {
	if !s.festivals.ValidID(visit.FestivalID) {
		return domain.PlannedVisit{}, validation.Errors{"festivalId": errInvalidFestivalID}
	}

	visit.Status = domain.VisitStatusPlanned
	if err := visit.Validate(); err != nil {
		return domain.PlannedVisit{}, err
	}

	if _, err := s.festivals.FindByID(ctx, visit.FestivalID); err != nil {
		if errors.Is(err, repository.ErrFestivalNotFound) {
			return domain.PlannedVisit{}, validation.Errors{"festivalId": errUnknownFestival}
		}
		return domain.PlannedVisit{}, fmt.Errorf("s.festivals.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, visit)
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateVisit applies patch to a visit owned by ownerID. Visits of other
// users are reported as not found.
func (s *VisitService) UpdateVisit(ctx context.Context, id, ownerID string, patch domain.VisitPatch) (domain.PlannedVisit, error) {
	if !s.repo.ValidID(id) {
		return domain.PlannedVisit{}, validation.Errors{"id": errInvalidVisitID}
	}

	visit, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("s.repo.FindOwned -> %w", err)
	}

	patch.Apply(&visit)
	if err = visit.Validate(); err != nil {
		return domain.PlannedVisit{}, err
	}

	updated, err := s.repo.UpdateOwned(ctx, visit)
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("s.repo.UpdateOwned -> %w", err)
	}

	return updated, nil
}

func (s *VisitService) DeleteVisit(ctx context.Context, id, ownerID string) error {
	if !s.repo.ValidID(id) {
		return validation.Errors{"id": errInvalidVisitID}
	}

	if err := s.repo.DeleteOwned(ctx, id, ownerID); err != nil {
		return fmt.Errorf("s.repo.DeleteOwned -> %w", err)
	}

	return nil
}
