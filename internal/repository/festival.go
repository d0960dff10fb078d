package repository

import (
	"context"
	"fmt"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository/dao"
)

var (
	ErrFestivalNotFound = dao.ErrFestivalNotFound
)

type FestivalDAO interface {
	ValidID(id string) bool
	Insert(ctx context.Context, festival dao.Festival) (dao.Festival, error)
	FindByID(ctx context.Context, id string) (dao.Festival, error)
	FindByIDs(ctx context.Context, ids []string) ([]dao.Festival, error)
	Find(ctx context.Context, q dao.FestivalQuery) ([]dao.Festival, error)
	Update(ctx context.Context, festival dao.Festival) (dao.Festival, error)
	Delete(ctx context.Context, id string) error
}

type FestivalRepository struct {
	dao FestivalDAO
}

func NewFestivalRepository(dao FestivalDAO) *FestivalRepository {
	return &FestivalRepository{
		dao: dao,
	}
}

func (r *FestivalRepository) ValidID(id string) bool {
	return r.dao.ValidID(id)
}

func (r *FestivalRepository) Create(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	created, err := r.dao.Insert(ctx, festivalDomainToDao(festival))
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return festivalDaoToDomain(created), nil
}

func (r *FestivalRepository) FindByID(ctx context.Context, id string) (domain.Festival, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return festivalDaoToDomain(found), nil
}

// FindByIDs resolves festival references, keyed by id. Ids that no longer
// resolve are simply absent from the map.
func (r *FestivalRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Festival, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	byID := make(map[string]domain.Festival, len(found))
	for _, f := range found {
		byID[f.ID] = festivalDaoToDomain(f)
	}

	return byID, nil
}

func (r *FestivalRepository) Find(ctx context.Context, filter domain.FestivalFilter) ([]domain.Festival, error) {
	found, err := r.dao.Find(ctx, dao.FestivalQuery{
		Region:      filter.Region,
		Type:        filter.Type,
		CrowdLevel:  filter.CrowdLevel,
		BudgetLevel: filter.BudgetLevel,
		IsHiddenGem: filter.IsHiddenGem,
		StartsFrom:  filter.StartsFrom,
		EndsBy:      filter.EndsBy,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return festivalsDaoToDomain(found), nil
}

func (r *FestivalRepository) Update(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	updated, err := r.dao.Update(ctx, festivalDomainToDao(festival))
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return festivalDaoToDomain(updated), nil
}

func (r *FestivalRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func festivalsDaoToDomain(festivals []dao.Festival) []domain.Festival {
	result := make([]domain.Festival, 0, len(festivals))
	for _, f := range festivals {
		result = append(result, festivalDaoToDomain(f))
	}
	return result
}

func festivalDaoToDomain(f dao.Festival) domain.Festival {
	images := make([]domain.Image, 0, len(f.Images))
	for _, img := range f.Images {
		images = append(images, domain.Image{URL: img.URL, Caption: img.Caption})
	}

	experiences := make([]domain.LocalExperience, 0, len(f.LocalExperiences))
	for _, e := range f.LocalExperiences {
		experiences = append(experiences, domain.LocalExperience{Name: e.Name, Description: e.Description, Type: e.Type})
	}

	location := domain.Location{
		City:  f.Location.City,
		State: f.Location.State,
	}
	if f.Location.Latitude != nil && f.Location.Longitude != nil {
		location.Coordinates = &domain.Coordinates{
			Latitude:  *f.Location.Latitude,
			Longitude: *f.Location.Longitude,
		}
	}

	return domain.Festival{
		ID:                   f.ID,
		Name:                 f.Name,
		Description:          f.Description,
		Region:               f.Region,
		Type:                 f.Type,
		StartDate:            f.StartDate,
		EndDate:              f.EndDate,
		Location:             location,
		Images:               images,
		CulturalSignificance: f.CulturalSignificance,
		TouristInfo: domain.TouristInfo{
			CrowdLevel:      f.TouristInfo.CrowdLevel,
			BudgetLevel:     f.TouristInfo.BudgetLevel,
			BestTimeToVisit: f.TouristInfo.BestTimeToVisit,
			Accessibility:   f.TouristInfo.Accessibility,
		},
		LocalExperiences: experiences,
		WeatherConditions: domain.WeatherConditions{
			Temperature: domain.TemperatureRange{
				Min: f.WeatherConditions.TemperatureMin,
				Max: f.WeatherConditions.TemperatureMax,
			},
			Rainfall: f.WeatherConditions.Rainfall,
			Humidity: f.WeatherConditions.Humidity,
		},
		IsHiddenGem: f.IsHiddenGem,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func festivalDomainToDao(f domain.Festival) dao.Festival {
	images := make([]dao.FestivalImage, 0, len(f.Images))
	for _, img := range f.Images {
		images = append(images, dao.FestivalImage{URL: img.URL, Caption: img.Caption})
	}

	experiences := make([]dao.LocalExperience, 0, len(f.LocalExperiences))
	for _, e := range f.LocalExperiences {
		experiences = append(experiences, dao.LocalExperience{Name: e.Name, Description: e.Description, Type: e.Type})
	}

	location := dao.FestivalLocation{
		City:  f.Location.City,
		State: f.Location.State,
	}
	if c := f.Location.Coordinates; c != nil {
		lat, lng := c.Latitude, c.Longitude
		location.Latitude = &lat
		location.Longitude = &lng
	}

	return dao.Festival{
		ID:                   f.ID,
		Name:                 f.Name,
		Description:          f.Description,
		Region:               f.Region,
		Type:                 f.Type,
		StartDate:            f.StartDate,
		EndDate:              f.EndDate,
		Location:             location,
		Images:               images,
		CulturalSignificance: f.CulturalSignificance,
		TouristInfo: dao.TouristInfo{
			CrowdLevel:      f.TouristInfo.CrowdLevel,
			BudgetLevel:     f.TouristInfo.BudgetLevel,
			BestTimeToVisit: f.TouristInfo.BestTimeToVisit,
			Accessibility:   f.TouristInfo.Accessibility,
		},
		LocalExperiences: experiences,
		WeatherConditions: dao.WeatherConditions{
			TemperatureMin: f.WeatherConditions.Temperature.Min,
			TemperatureMax: f.WeatherConditions.Temperature.Max,
			Rainfall:       f.WeatherConditions.Rainfall,
			Humidity:       f.WeatherConditions.Humidity,
		},
		IsHiddenGem: f.IsHiddenGem,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
