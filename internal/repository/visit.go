package repository

import (
	"context"
	"fmt"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository/dao"
)

var (
	ErrVisitNotFound = dao.ErrVisitNotFound
)

type VisitDAO interface {
	ValidID(id string) bool
	Insert(ctx context.Context, visit dao.PlannedVisit) (dao.PlannedVisit, error)
	FindByUserID(ctx context.Context, userID string) ([]dao.PlannedVisit, error)
	FindOwned(ctx context.Context, id, userID string) (dao.PlannedVisit, error)
	UpdateOwned(ctx context.Context, visit dao.PlannedVisit) (dao.PlannedVisit, error)
	DeleteOwned(ctx context.Context, id, userID string) error
	DeleteByFestivalID(ctx context.Context, festivalID string) (int64, error)
}

// VisitRepository stores planned visits and expands their festival
// reference on the way out.
type VisitRepository struct {
	dao       VisitDAO
	festivals *FestivalRepository
}

func NewVisitRepository(dao VisitDAO, festivals *FestivalRepository) *VisitRepository {
	return &VisitRepository{
		dao:       dao,
		festivals: festivals,
	}
}

func (r *VisitRepository) ValidID(id string) bool {
	return r.dao.ValidID(id)
}

func (r *VisitRepository) Create(ctx context.Context, visit domain.PlannedVisit) (domain.PlannedVisit, error) {
	created, err := r.dao.Insert(ctx, dao.PlannedVisit{
		UserID:              visit.UserID,
		FestivalID:          visit.FestivalID,
		VisitDate:           visit.VisitDate,
		GroupSize:           visit.GroupSize,
		SpecialRequirements: visit.SpecialRequirements,
		Status:              visit.Status,
	})
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.populateOne(ctx, created)
}

// FindByUserID returns the user's visits ordered by visit date with their
// festival expanded. Visits pointing at a festival that no longer exists
// are left out; dropped says how many.
func (r *VisitRepository) FindByUserID(ctx context.Context, userID string) (visits []domain.PlannedVisit, dropped int, err error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	ids := make([]string, 0, len(found))
	for _, v := range found {
		ids = append(ids, v.FestivalID)
	}

	festivals, err := r.festivals.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("r.festivals.FindByIDs -> %w", err)
	}

	visits = make([]domain.PlannedVisit, 0, len(found))
	for _, v := range found {
		festival, ok := festivals[v.FestivalID]
		if !ok {
			dropped++
			continue
		}
		visit := visitDaoToDomain(v)
		visit.Festival = &festival
		visits = append(visits, visit)
	}

	return visits, dropped, nil
}

func (r *VisitRepository) FindOwned(ctx context.Context, id, userID string) (domain.PlannedVisit, error) {
	found, err := r.dao.FindOwned(ctx, id, userID)
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("r.dao.FindOwned -> %w", err)
	}

	return visitDaoToDomain(found), nil
}

func (r *VisitRepository) UpdateOwned(ctx context.Context, visit domain.PlannedVisit) (domain.PlannedVisit, error) {
	updated, err := r.dao.UpdateOwned(ctx, dao.PlannedVisit{
		ID:                  visit.ID,
		UserID:              visit.UserID,
		FestivalID:          visit.FestivalID,
		VisitDate:           visit.VisitDate,
		GroupSize:           visit.GroupSize,
		SpecialRequirements: visit.SpecialRequirements,
		Status:              visit.Status,
	})
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("r.dao.UpdateOwned -> %w", err)
	}

	return r.populateOne(ctx, updated)
}

func (r *VisitRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	if err := r.dao.DeleteOwned(ctx, id, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteOwned -> %w", err)
	}

	return nil
}

func (r *VisitRepository) DeleteByFestivalID(ctx context.Context, festivalID string) (int64, error) {
	n, err := r.dao.DeleteByFestivalID(ctx, festivalID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteByFestivalID -> %w", err)
	}

	return n, nil
}

// populateOne expands a single visit. A festival deleted in the meantime
// leaves Festival nil instead of failing the write that already happened.
func (r *VisitRepository) populateOne(ctx context.Context, v dao.PlannedVisit) (domain.PlannedVisit, error) {
	visit := visitDaoToDomain(v)

	festivals, err := r.festivals.FindByIDs(ctx, []string{v.FestivalID})
	if err != nil {
		return domain.PlannedVisit{}, fmt.Errorf("r.festivals.FindByIDs -> %w", err)
	}
	if festival, ok := festivals[v.FestivalID]; ok {
		visit.Festival = &festival
	}

	return visit, nil
}

func visitDaoToDomain(v dao.PlannedVisit) domain.PlannedVisit {
	return domain.PlannedVisit{
		ID:                  v.ID,
		UserID:              v.UserID,
		FestivalID:          v.FestivalID,
		VisitDate:           v.VisitDate,
		GroupSize:           v.GroupSize,
		SpecialRequirements: v.SpecialRequirements,
		Status:              v.Status,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}
