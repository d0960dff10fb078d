package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrFestivalNotFound = errors.New("festival not found")
)

// Festival is a festival document. Column layout is shared with the mongo
// driver through the bson tags.
type Festival struct {
	ID                   string                                `gorm:"primaryKey;type:uuid" bson:"_id"`
	Name                 string                                `gorm:"not null" bson:"name"`
	Description          string                                `gorm:"not null" bson:"description"`
	Region               string                                `gorm:"not null;index" bson:"region"`
	Type                 string                                `gorm:"not null;index" bson:"type"`
	StartDate            time.Time                             `gorm:"not null;index" bson:"startDate"`
	EndDate              time.Time                             `gorm:"not null" bson:"endDate"`
	Location             FestivalLocation                      `gorm:"embedded;embeddedPrefix:location_" bson:"location"`
	Images               datatypes.JSONSlice[FestivalImage]    `gorm:"type:jsonb" bson:"images"`
	CulturalSignificance string                                `gorm:"not null" bson:"culturalSignificance"`
	TouristInfo          TouristInfo                           `gorm:"embedded;embeddedPrefix:tourist_info_" bson:"touristInfo"`
	LocalExperiences     datatypes.JSONSlice[LocalExperience]  `gorm:"type:jsonb" bson:"localExperiences"`
	WeatherConditions    WeatherConditions                     `gorm:"embedded;embeddedPrefix:weather_" bson:"weatherConditions"`
	IsHiddenGem          bool                                  `gorm:"not null;default:false;index" bson:"isHiddenGem"`
	CreatedAt            time.Time                             `bson:"createdAt"`
	UpdatedAt            time.Time                             `bson:"updatedAt"`
}

type FestivalLocation struct {
	City      string   `bson:"city"`
	State     string   `bson:"state"`
	Latitude  *float64 `bson:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty"`
}

type FestivalImage struct {
	URL     string `json:"url" bson:"url"`
	Caption string `json:"caption" bson:"caption"`
}

type TouristInfo struct {
	CrowdLevel      string `gorm:"not null;index" bson:"crowdLevel"`
	BudgetLevel     string `gorm:"not null;index" bson:"budgetLevel"`
	BestTimeToVisit string `bson:"bestTimeToVisit"`
	Accessibility   string `bson:"accessibility"`
}

type LocalExperience struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Type        string `json:"type" bson:"type"`
}

type WeatherConditions struct {
	TemperatureMin float64 `bson:"temperatureMin"`
	TemperatureMax float64 `bson:"temperatureMax"`
	Rainfall       float64 `bson:"rainfall"`
	Humidity       float64 `bson:"humidity"`
}

// FestivalQuery is the driver-neutral form of a festival listing filter.
type FestivalQuery struct {
	Region      *string
	Type        *string
	CrowdLevel  *string
	BudgetLevel *string
	IsHiddenGem *bool
	StartsFrom  *time.Time
	EndsBy      *time.Time
}

func (f *Festival) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = newID()
	}
	return nil
}

type FestivalDAO struct {
	db *gorm.DB
}

func NewFestivalDAO(db *gorm.DB) *FestivalDAO {
	return &FestivalDAO{
		db: db,
	}
}

func (d *FestivalDAO) ValidID(id string) bool {
	return ValidID(id)
}

func (d *FestivalDAO) Insert(ctx context.Context, festival Festival) (Festival, error) {
	result := d.db.WithContext(ctx).Create(&festival)
	if result.Error != nil {
		return Festival{}, result.Error
	}

	return festival, nil
}

func (d *FestivalDAO) FindByID(ctx context.Context, id string) (Festival, error) {
	if !ValidID(id) {
		return Festival{}, ErrFestivalNotFound
	}

	var festival Festival
	result := d.db.WithContext(ctx).First(&festival, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Festival{}, ErrFestivalNotFound
		}

		return Festival{}, result.Error
	}

	return festival, nil
}

// FindByIDs returns the festivals that still exist among ids, in no
// particular order. Malformed ids are skipped.
func (d *FestivalDAO) FindByIDs(ctx context.Context, ids []string) ([]Festival, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if ValidID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []Festival{}, nil
	}

	var festivals []Festival
	result := d.db.WithContext(ctx).Where("id IN ?", valid).Find(&festivals)
	if result.Error != nil {
		return nil, result.Error
	}

	return festivals, nil
}

func (d *FestivalDAO) Find(ctx context.Context, q FestivalQuery) ([]Festival, error) {
	tx := d.db.WithContext(ctx).Model(&Festival{})

	if q.Region != nil {
		tx = tx.Where("region = ?", *q.Region)
	}
	if q.Type != nil {
		tx = tx.Where("type = ?", *q.Type)
	}
	if q.CrowdLevel != nil {
		tx = tx.Where("tourist_info_crowd_level = ?", *q.CrowdLevel)
	}
	if q.BudgetLevel != nil {
		tx = tx.Where("tourist_info_budget_level = ?", *q.BudgetLevel)
	}
	if q.IsHiddenGem != nil {
		tx = tx.Where("is_hidden_gem = ?", *q.IsHiddenGem)
	}
	if q.StartsFrom != nil {
		tx = tx.Where("start_date >= ?", *q.StartsFrom)
	}
	if q.EndsBy != nil {
		tx = tx.Where("end_date <= ?", *q.EndsBy)
	}

	var festivals []Festival
	result := tx.Order("start_date ASC").Find(&festivals)
	if result.Error != nil {
		return nil, result.Error
	}

	return festivals, nil
}

// Update overwrites every column of an existing festival.
func (d *FestivalDAO) Update(ctx context.Context, festival Festival) (Festival, error) {
	if !ValidID(festival.ID) {
		return Festival{}, ErrFestivalNotFound
	}

	result := d.db.WithContext(ctx).Model(&Festival{ID: festival.ID}).
		Select("*").Omit("id", "created_at").
		Updates(&festival)
	if result.Error != nil {
		return Festival{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Festival{}, ErrFestivalNotFound
	}

	return d.FindByID(ctx, festival.ID)
}

func (d *FestivalDAO) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrFestivalNotFound
	}

	result := d.db.WithContext(ctx).Delete(&Festival{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFestivalNotFound
	}

	return nil
}
