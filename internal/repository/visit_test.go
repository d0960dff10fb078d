package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository/dao/daotest"
)

func TestVisitRepository_FindByUserID(t *testing.T) {
	ctx := context.Background()
	store := daotest.NewStore()
	festivals := NewFestivalRepository(store.Festivals())
	repo := NewVisitRepository(store.Visits(), festivals)

	userID := uuid.NewString()
	kept, err := festivals.Create(ctx, sampleFestival("Kept", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	gone, err := festivals.Create(ctx, sampleFestival("Gone", time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	later, err := repo.Create(ctx, domain.PlannedVisit{
		UserID: userID, FestivalID: kept.ID, GroupSize: 2, Status: domain.VisitStatusPlanned,
		VisitDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	earlier, err := repo.Create(ctx, domain.PlannedVisit{
		UserID: userID, FestivalID: kept.ID, GroupSize: 1, Status: domain.VisitStatusPlanned,
		VisitDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.PlannedVisit{
		UserID: userID, FestivalID: gone.ID, GroupSize: 1, Status: domain.VisitStatusPlanned,
		VisitDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.PlannedVisit{
		UserID: uuid.NewString(), FestivalID: kept.ID, GroupSize: 1, Status: domain.VisitStatusPlanned,
		VisitDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	store.RemoveFestival(gone.ID)

	visits, dropped, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 1, dropped)
	require.Len(t, visits, 2)
	assert.Equal(t, earlier.ID, visits[0].ID)
	assert.Equal(t, later.ID, visits[1].ID)
	for _, v := range visits {
		require.NotNil(t, v.Festival)
		assert.Equal(t, kept.ID, v.Festival.ID)
	}
}

func TestVisitRepository_Create_Populates(t *testing.T) {
	ctx := context.Background()
	store := daotest.NewStore()
	festivals := NewFestivalRepository(store.Festivals())
	repo := NewVisitRepository(store.Visits(), festivals)

	festival, err := festivals.Create(ctx, sampleFestival("Pushkar Camel Fair", time.Now()))
	require.NoError(t, err)

	visit, err := repo.Create(ctx, domain.PlannedVisit{
		UserID: uuid.NewString(), FestivalID: festival.ID, GroupSize: 3,
		Status: domain.VisitStatusPlanned, VisitDate: time.Now(),
	})
	require.NoError(t, err)

	require.NotNil(t, visit.Festival)
	assert.Equal(t, "Pushkar Camel Fair", visit.Festival.Name)
}

func TestVisitRepository_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	store := daotest.NewStore()
	repo := NewVisitRepository(store.Visits(), NewFestivalRepository(store.Festivals()))

	owner, other := uuid.NewString(), uuid.NewString()
	visit, err := repo.Create(ctx, domain.PlannedVisit{
		UserID: owner, FestivalID: uuid.NewString(), GroupSize: 1,
		Status: domain.VisitStatusPlanned, VisitDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Nil(t, visit.Festival)

	_, err = repo.FindOwned(ctx, visit.ID, other)
	assert.ErrorIs(t, err, ErrVisitNotFound)
	assert.ErrorIs(t, repo.DeleteOwned(ctx, visit.ID, other), ErrVisitNotFound)

	require.NoError(t, repo.DeleteOwned(ctx, visit.ID, owner))
	_, err = repo.FindOwned(ctx, visit.ID, owner)
	assert.ErrorIs(t, err, ErrVisitNotFound)
}
