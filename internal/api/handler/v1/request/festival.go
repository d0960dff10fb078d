package request

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/festivefusion/festival-api/internal/domain"
)

var boolValues = []interface{}{"true", "false"}

type CreateFestivalRequest struct {
	Name                 string                   `json:"name"`
	Description          string                   `json:"description"`
	Region               string                   `json:"region"`
	Type                 string                   `json:"type"`
	StartDate            string                   `json:"startDate" example:"2026-03-14"`
	EndDate              string                   `json:"endDate" example:"2026-03-15"`
	Location             domain.Location          `json:"location"`
	Images               []domain.Image           `json:"images"`
	CulturalSignificance string                   `json:"culturalSignificance"`
	TouristInfo          domain.TouristInfo       `json:"touristInfo"`
	LocalExperiences     []domain.LocalExperience `json:"localExperiences"`
	WeatherConditions    domain.WeatherConditions `json:"weatherConditions"`
	IsHiddenGem          bool                     `json:"isHiddenGem"`
}

// Validate only checks what the domain cannot see once dates are parsed.
// The festival itself is validated by the service.
func (req *CreateFestivalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StartDate, validation.Required, dateRule),
		validation.Field(&req.EndDate, validation.Required, dateRule),
	)
}

func (req *CreateFestivalRequest) ToDomain() domain.Festival {
	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)

	return domain.Festival{
		Name:                 req.Name,
		Description:          req.Description,
		Region:               req.Region,
		Type:                 req.Type,
		StartDate:            start,
		EndDate:              end,
		Location:             req.Location,
		Images:               req.Images,
		CulturalSignificance: req.CulturalSignificance,
		TouristInfo:          req.TouristInfo,
		LocalExperiences:     req.LocalExperiences,
		WeatherConditions:    req.WeatherConditions,
		IsHiddenGem:          req.IsHiddenGem,
	}
}

// UpdateFestivalRequest is a partial festival. Absent fields are kept.
type UpdateFestivalRequest struct {
	Name                 *string                   `json:"name"`
	Description          *string                   `json:"description"`
	Region               *string                   `json:"region"`
	Type                 *string                   `json:"type"`
	StartDate            *string                   `json:"startDate"`
	EndDate              *string                   `json:"endDate"`
	Location             *domain.Location          `json:"location"`
	Images               *[]domain.Image           `json:"images"`
	CulturalSignificance *string                   `json:"culturalSignificance"`
	TouristInfo          *domain.TouristInfo       `json:"touristInfo"`
	LocalExperiences     *[]domain.LocalExperience `json:"localExperiences"`
	WeatherConditions    *domain.WeatherConditions `json:"weatherConditions"`
	IsHiddenGem          *bool                     `json:"isHiddenGem"`
}

func (req *UpdateFestivalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StartDate, dateRule),
		validation.Field(&req.EndDate, dateRule),
	)
}

func (req *UpdateFestivalRequest) ToPatch() domain.FestivalPatch {
	return domain.FestivalPatch{
		Name:                 req.Name,
		Description:          req.Description,
		Region:               req.Region,
		Type:                 req.Type,
		StartDate:            parseDatePtr(req.StartDate),
		EndDate:              parseDatePtr(req.EndDate),
		Location:             req.Location,
		Images:               req.Images,
		CulturalSignificance: req.CulturalSignificance,
		TouristInfo:          req.TouristInfo,
		LocalExperiences:     req.LocalExperiences,
		WeatherConditions:    req.WeatherConditions,
		IsHiddenGem:          req.IsHiddenGem,
	}
}

// ListFestivalsQuery holds the listing filters as they arrive in the query
// string. Empty values are not applied, and the date range only applies
// when both of its bounds are given.
type ListFestivalsQuery struct {
	Region      string `form:"region"`
	Type        string `form:"type"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	CrowdLevel  string `form:"crowdLevel"`
	BudgetLevel string `form:"budgetLevel"`
	IsHiddenGem string `form:"isHiddenGem"`
}

func (q *ListFestivalsQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Type, validation.In(domain.FestivalTypes...)),
		validation.Field(&q.StartDate, dateRule),
		validation.Field(&q.EndDate, dateRule),
		validation.Field(&q.CrowdLevel, validation.In(domain.CrowdLevels...)),
		validation.Field(&q.BudgetLevel, validation.In(domain.BudgetLevels...)),
		validation.Field(&q.IsHiddenGem, validation.In(boolValues...)),
	)
}

func (q *ListFestivalsQuery) ToFilter() domain.FestivalFilter {
	var filter domain.FestivalFilter

	filter.Region = optional(q.Region)
	filter.Type = optional(q.Type)
	filter.CrowdLevel = optional(q.CrowdLevel)
	filter.BudgetLevel = optional(q.BudgetLevel)
	if q.StartDate != "" && q.EndDate != "" {
		filter.StartsFrom = parseDatePtr(&q.StartDate)
		filter.EndsBy = parseDatePtr(&q.EndDate)
	}
	if q.IsHiddenGem != "" {
		hidden, _ := strconv.ParseBool(q.IsHiddenGem)
		filter.IsHiddenGem = &hidden
	}

	return filter
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
