package domain

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	FestivalTypeReligious = "religious"
	FestivalTypeTribal    = "tribal"
	FestivalTypeHarvest   = "harvest"
	FestivalTypeSeasonal  = "seasonal"

	CrowdLevelLow    = "low"
	CrowdLevelMedium = "medium"
	CrowdLevelHigh   = "high"

	BudgetLevelBudget   = "budget"
	BudgetLevelModerate = "moderate"
	BudgetLevelLuxury   = "luxury"
)

var (
	FestivalTypes = []interface{}{FestivalTypeReligious, FestivalTypeTribal, FestivalTypeHarvest, FestivalTypeSeasonal}
	CrowdLevels   = []interface{}{CrowdLevelLow, CrowdLevelMedium, CrowdLevelHigh}
	BudgetLevels  = []interface{}{BudgetLevelBudget, BudgetLevelModerate, BudgetLevelLuxury}

	errEndBeforeStart = errors.New("must not be before startDate")
)

type Festival struct {
	ID                   string            `json:"_id"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	Region               string            `json:"region"`
	Type                 string            `json:"type"`
	StartDate            time.Time         `json:"startDate"`
	EndDate              time.Time         `json:"endDate"`
	Location             Location          `json:"location"`
	Images               []Image           `json:"images"`
	CulturalSignificance string            `json:"culturalSignificance"`
	TouristInfo          TouristInfo       `json:"touristInfo"`
	LocalExperiences     []LocalExperience `json:"localExperiences"`
	WeatherConditions    WeatherConditions `json:"weatherConditions"`
	IsHiddenGem          bool              `json:"isHiddenGem"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

type Location struct {
	City        string       `json:"city"`
	State       string       `json:"state"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type TouristInfo struct {
	CrowdLevel      string `json:"crowdLevel"`
	BudgetLevel     string `json:"budgetLevel"`
	BestTimeToVisit string `json:"bestTimeToVisit"`
	Accessibility   string `json:"accessibility"`
}

type LocalExperience struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type WeatherConditions struct {
	Temperature TemperatureRange `json:"temperature"`
	Rainfall    float64          `json:"rainfall"`
	Humidity    float64          `json:"humidity"`
}

type TemperatureRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Validate checks the festival against the collection schema. Errors are
// keyed by JSON field name.
func (f Festival) Validate() error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Description, validation.Required),
		validation.Field(&f.Region, validation.Required),
		validation.Field(&f.Type, validation.Required, validation.In(FestivalTypes...)),
		validation.Field(&f.StartDate, validation.Required),
		validation.Field(&f.EndDate, validation.Required),
		validation.Field(&f.CulturalSignificance, validation.Required),
		validation.Field(&f.TouristInfo),
	)
	if err != nil {
		return err
	}

	if f.EndDate.Before(f.StartDate) {
		return validation.Errors{"endDate": errEndBeforeStart}
	}

	return nil
}

func (t TouristInfo) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.CrowdLevel, validation.Required, validation.In(CrowdLevels...)),
		validation.Field(&t.BudgetLevel, validation.Required, validation.In(BudgetLevels...)),
	)
}

// FestivalFilter narrows a festival listing. Nil fields are not applied.
type FestivalFilter struct {
	Region      *string
	Type        *string
	CrowdLevel  *string
	BudgetLevel *string
	IsHiddenGem *bool
	// StartsFrom keeps festivals whose StartDate is on or after it.
	StartsFrom *time.Time
	// EndsBy keeps festivals whose EndDate is on or before it.
	EndsBy *time.Time
}

// FestivalPatch carries a partial festival update. Nested objects replace
// the stored value as a whole.
type FestivalPatch struct {
	Name                 *string
	Description          *string
	Region               *string
	Type                 *string
	StartDate            *time.Time
	EndDate              *time.Time
	Location             *Location
	Images               *[]Image
	CulturalSignificance *string
	TouristInfo          *TouristInfo
	LocalExperiences     *[]LocalExperience
	WeatherConditions    *WeatherConditions
	IsHiddenGem          *bool
}

// Apply merges the patch into f. Identity and timestamps are left alone.
func (p FestivalPatch) Apply(f *Festival) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Region != nil {
		f.Region = *p.Region
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.StartDate != nil {
		f.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = *p.EndDate
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.Images != nil {
		f.Images = *p.Images
	}
	if p.CulturalSignificance != nil {
		f.CulturalSignificance = *p.CulturalSignificance
	}
	if p.TouristInfo != nil {
		f.TouristInfo = *p.TouristInfo
	}
	if p.LocalExperiences != nil {
		f.LocalExperiences = *p.LocalExperiences
	}
	if p.WeatherConditions != nil {
		f.WeatherConditions = *p.WeatherConditions
	}
	if p.IsHiddenGem != nil {
		f.IsHiddenGem = *p.IsHiddenGem
	}
}
