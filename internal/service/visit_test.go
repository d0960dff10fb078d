package service

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivefusion/festival-api/internal/domain"
)

func TestVisitService_CreateVisit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewVisitService(env.visits, env.festivals)
	festival := env.mustCreateFestival(newFestival("Bihu", time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC), false))
	userID := uuid.NewString()

	visit, err := svc.CreateVisit(ctx, domain.PlannedVisit{
		UserID:     userID,
		FestivalID: festival.ID,
		VisitDate:  time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		GroupSize:  4,
		Status:     domain.VisitStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VisitStatusPlanned, visit.Status, "new visits always start as planned")
	require.NotNil(t, visit.Festival)
	assert.Equal(t, festival.ID, visit.Festival.ID)

	visits, err := svc.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, visit.ID, visits[0].ID)
	assert.Equal(t, festival.Name, visits[0].Festival.Name)
}

func TestVisitService_CreateVisit_Rejects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewVisitService(env.visits, env.festivals)
	festival := env.mustCreateFestival(newFestival("Bihu", time.Now(), false))

	tests := []struct {
		name      string
		visit     domain.PlannedVisit
		wantField string
	}{
		{
			name:      "malformed festival id",
			visit:     domain.PlannedVisit{FestivalID: "nope", VisitDate: time.Now(), GroupSize: 1},
			wantField: "festivalId",
		},
		{
			name:      "unknown festival",
			visit:     domain.PlannedVisit{FestivalID: uuid.NewString(), VisitDate: time.Now(), GroupSize: 1},
			wantField: "festivalId",
		},
		{
			name:      "empty group",
			visit:     domain.PlannedVisit{FestivalID: festival.ID, VisitDate: time.Now(), GroupSize: 0},
			wantField: "groupSize",
		},
		{
			name:      "no date",
			visit:     domain.PlannedVisit{FestivalID: festival.ID, GroupSize: 1},
			wantField: "visitDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.visit.UserID = uuid.NewString()

			_, err := svc.CreateVisit(ctx, tt.visit)

			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestVisitService_UpdateAndDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewVisitService(env.visits, env.festivals)
	festival := env.mustCreateFestival(newFestival("Hemis", time.Now(), true))
	owner, intruder := uuid.NewString(), uuid.NewString()

	visit, err := svc.CreateVisit(ctx, domain.PlannedVisit{
		UserID: owner, FestivalID: festival.ID, VisitDate: time.Now(), GroupSize: 2,
	})
	require.NoError(t, err)

	size := 9
	_, err = svc.UpdateVisit(ctx, visit.ID, intruder, domain.VisitPatch{GroupSize: &size})
	assert.ErrorIs(t, err, ErrVisitNotFound)
	assert.ErrorIs(t, svc.DeleteVisit(ctx, visit.ID, intruder), ErrVisitNotFound)

	visits, err := svc.ListForUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, 2, visits[0].GroupSize, "intruder must not change the visit")

	status := domain.VisitStatusCancelled
	updated, err := svc.UpdateVisit(ctx, visit.ID, owner, domain.VisitPatch{GroupSize: &size, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.GroupSize)
	assert.Equal(t, domain.VisitStatusCancelled, updated.Status)
	require.NotNil(t, updated.Festival)

	zero := 0
	_, err = svc.UpdateVisit(ctx, visit.ID, owner, domain.VisitPatch{GroupSize: &zero})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)

	require.NoError(t, svc.DeleteVisit(ctx, visit.ID, owner))
	visits, err = svc.ListForUser(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestVisitService_MalformedVisitID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewVisitService(env.visits, env.festivals)

	_, err := svc.UpdateVisit(ctx, "123", uuid.NewString(), domain.VisitPatch{})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "id")

	require.ErrorAs(t, svc.DeleteVisit(ctx, "123", uuid.NewString()), &errs)
}

func TestVisitService_ListForUser_SkipsDeletedFestivals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	svc := NewVisitService(env.visits, env.festivals)
	festival := env.mustCreateFestival(newFestival("Ephemeral", time.Now(), false))
	userID := uuid.NewString()

	_, err := svc.CreateVisit(ctx, domain.PlannedVisit{
		UserID: userID, FestivalID: festival.ID, VisitDate: time.Now(), GroupSize: 1,
	})
	require.NoError(t, err)

	env.store.RemoveFestival(festival.ID)

	visits, err := svc.ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}
