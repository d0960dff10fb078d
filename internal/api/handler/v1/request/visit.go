package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/festivefusion/festival-api/internal/domain"
)

var errNotANumber = errors.New("groupSize must be a number")

// GroupSize accepts a JSON number or a numeric string. Fractions are
// truncated.
type GroupSize int

func (g *GroupSize) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return errNotANumber
		}
		raw = []byte(strings.TrimSpace(s))
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errNotANumber
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return errNotANumber
	}

	*g = GroupSize(math.Trunc(f))

	return nil
}

type CreateVisitRequest struct {
	FestivalID          string     `json:"festivalId"`
	VisitDate           string     `json:"visitDate" example:"2026-03-14"`
	GroupSize           *GroupSize `json:"groupSize" swaggertype:"integer"`
	SpecialRequirements string     `json:"specialRequirements"`
}

func (req *CreateVisitRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FestivalID, validation.Required),
		validation.Field(&req.VisitDate, validation.Required, dateRule),
		validation.Field(&req.GroupSize, validation.NotNil, validation.Min(1)),
		validation.Field(&req.SpecialRequirements, validation.Length(0, 1000)),
	)
}

func (req *CreateVisitRequest) ToDomain(userID string) domain.PlannedVisit {
	visitDate, _ := parseDate(req.VisitDate)

	visit := domain.PlannedVisit{
		UserID:              userID,
		FestivalID:          req.FestivalID,
		VisitDate:           visitDate,
		SpecialRequirements: req.SpecialRequirements,
	}
	if req.GroupSize != nil {
		visit.GroupSize = int(*req.GroupSize)
	}

	return visit
}

// UpdateVisitRequest is a partial visit. Only these fields can change.
type UpdateVisitRequest struct {
	VisitDate           *string    `json:"visitDate"`
	GroupSize           *GroupSize `json:"groupSize" swaggertype:"integer"`
	SpecialRequirements *string    `json:"specialRequirements"`
	Status              *string    `json:"status"`
}

func (req *UpdateVisitRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VisitDate, dateRule),
		validation.Field(&req.GroupSize, validation.Min(1)),
		validation.Field(&req.SpecialRequirements, validation.Length(0, 1000)),
		validation.Field(&req.Status, validation.In(domain.VisitStatuses...)),
	)
}

func (req *UpdateVisitRequest) ToPatch() domain.VisitPatch {
	patch := domain.VisitPatch{
		VisitDate:           parseDatePtr(req.VisitDate),
		SpecialRequirements: req.SpecialRequirements,
		Status:              req.Status,
	}
	if req.GroupSize != nil {
		size := int(*req.GroupSize)
		patch.GroupSize = &size
	}

	return patch
}
