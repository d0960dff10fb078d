package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	VisitStatusPlanned   = "planned"
	VisitStatusCompleted = "completed"
	VisitStatusCancelled = "cancelled"
)

var VisitStatuses = []interface{}{VisitStatusPlanned, VisitStatusCompleted, VisitStatusCancelled}

// PlannedVisit is a user's intent to attend a festival. Festival is the
// expanded reference and is nil until the repository populates it.
type PlannedVisit struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	FestivalID          string    `json:"-"`
	Festival            *Festival `json:"festivalId"`
	VisitDate           time.Time `json:"visitDate"`
	GroupSize           int       `json:"groupSize"`
	SpecialRequirements string    `json:"specialRequirements,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// VisitPatch lists the only fields an owner may change on a visit.
type VisitPatch struct {
	VisitDate           *time.Time
	GroupSize           *int
	SpecialRequirements *string
	Status              *string
}

func (p VisitPatch) Apply(v *PlannedVisit) {
	if p.VisitDate != nil {
		v.VisitDate = *p.VisitDate
	}
	if p.GroupSize != nil {
		v.GroupSize = *p.GroupSize
	}
	if p.SpecialRequirements != nil {
		v.SpecialRequirements = *p.SpecialRequirements
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
}

func (v PlannedVisit) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.VisitDate, validation.Required),
		validation.Field(&v.GroupSize, validation.Required, validation.Min(1)),
		validation.Field(&v.SpecialRequirements, validation.Length(0, 1000)),
		validation.Field(&v.Status, validation.Required, validation.In(VisitStatuses...)),
	)
}
