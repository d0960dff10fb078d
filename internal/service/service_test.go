package service

import (
	"context"
	"time"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository"
	"github.com/festivefusion/festival-api/internal/repository/dao/daotest"
)

type testEnv struct {
	store     *daotest.Store
	festivals *repository.FestivalRepository
	visits    *repository.VisitRepository
	users     *repository.UserRepository
}

func newTestEnv() testEnv {
	store := daotest.NewStore()
	festivals := repository.NewFestivalRepository(store.Festivals())

	return testEnv{
		store:     store,
		festivals: festivals,
		visits:    repository.NewVisitRepository(store.Visits(), festivals),
		users:     repository.NewUserRepository(store.Users()),
	}
}

func newFestival(name string, start time.Time, hidden bool) domain.Festival {
	return domain.Festival{
		Name:                 name,
		Description:          "description of " + name,
		Region:               "West",
		Type:                 domain.FestivalTypeHarvest,
		StartDate:            start,
		EndDate:              start.Add(24 * time.Hour),
		CulturalSignificance: "significance",
		IsHiddenGem:          hidden,
		TouristInfo: domain.TouristInfo{
			CrowdLevel:  domain.CrowdLevelMedium,
			BudgetLevel: domain.BudgetLevelBudget,
		},
	}
}

func (e testEnv) mustCreateFestival(f domain.Festival) domain.Festival {
	created, err := e.festivals.Create(context.Background(), f)
	if err != nil {
		panic(err)
	}
	return created
}
