package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrVisitNotFound = errors.New("planned visit not found")
)

type PlannedVisit struct {
	ID                  string    `gorm:"primaryKey;type:uuid" bson:"_id"`
	UserID              string    `gorm:"type:uuid;not null;index:idx_visits_user_date,priority:1" bson:"userId"`
	FestivalID          string    `gorm:"type:uuid;not null;index" bson:"festivalId"`
	VisitDate           time.Time `gorm:"not null;index:idx_visits_user_date,priority:2" bson:"visitDate"`
	GroupSize           int       `gorm:"not null" bson:"groupSize"`
	SpecialRequirements string    `bson:"specialRequirements,omitempty"`
	Status              string    `gorm:"not null;default:planned" bson:"status"`
	CreatedAt           time.Time `bson:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt"`
}

func (v *PlannedVisit) BeforeCreate(_ *gorm.DB) error {
	if v.ID == "" {
		v.ID = newID()
	}
	return nil
}

type VisitDAO struct {
	db *gorm.DB
}

func NewVisitDAO(db *gorm.DB) *VisitDAO {
	return &VisitDAO{
		db: db,
	}
}

func (d *VisitDAO) ValidID(id string) bool {
	return ValidID(id)
}

func (d *VisitDAO) Insert(ctx context.Context, visit PlannedVisit) (PlannedVisit, error) {
	result := d.db.WithContext(ctx).Create(&visit)
	if result.Error != nil {
		return PlannedVisit{}, result.Error
	}

	return visit, nil
}

func (d *VisitDAO) FindByUserID(ctx context.Context, userID string) ([]PlannedVisit, error) {
	if !ValidID(userID) {
		return []PlannedVisit{}, nil
	}

	var visits []PlannedVisit
	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visit_date ASC").
		Find(&visits)
	if result.Error != nil {
		return nil, result.Error
	}

	return visits, nil
}

// FindOwned looks a visit up by id and owner together; a visit owned by
// someone else is reported exactly like a missing one.
func (d *VisitDAO) FindOwned(ctx context.Context, id, userID string) (PlannedVisit, error) {
	if !ValidID(id) || !ValidID(userID) {
		return PlannedVisit{}, ErrVisitNotFound
	}

	var visit PlannedVisit
	result := d.db.WithContext(ctx).First(&visit, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PlannedVisit{}, ErrVisitNotFound
		}

		return PlannedVisit{}, result.Error
	}

	return visit, nil
}

func (d *VisitDAO) UpdateOwned(ctx context.Context, visit PlannedVisit) (PlannedVisit, error) {
	if !ValidID(visit.ID) || !ValidID(visit.UserID) {
		return PlannedVisit{}, ErrVisitNotFound
	}

	result := d.db.WithContext(ctx).Model(&PlannedVisit{}).
		Where("id = ? AND user_id = ?", visit.ID, visit.UserID).
		Select("visit_date", "group_size", "special_requirements", "status", "updated_at").
		Updates(&visit)
	if result.Error != nil {
		return PlannedVisit{}, result.Error
	}
	if result.RowsAffected == 0 {
		return PlannedVisit{}, ErrVisitNotFound
	}

	return d.FindOwned(ctx, visit.ID, visit.UserID)
}

func (d *VisitDAO) DeleteOwned(ctx context.Context, id, userID string) error {
	if !ValidID(id) || !ValidID(userID) {
		return ErrVisitNotFound
	}

	result := d.db.WithContext(ctx).Delete(&PlannedVisit{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVisitNotFound
	}

	return nil
}

func (d *VisitDAO) DeleteByFestivalID(ctx context.Context, festivalID string) (int64, error) {
	if !ValidID(festivalID) {
		return 0, nil
	}

	result := d.db.WithContext(ctx).Delete(&PlannedVisit{}, "festival_id = ?", festivalID)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
