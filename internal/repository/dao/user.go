package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID             string                      `gorm:"primaryKey;type:uuid" bson:"_id"`
	Name           string                      `gorm:"not null" bson:"name"`
	Email          string                      `gorm:"uniqueIndex:uni_users_email;not null" bson:"email"`
	Password       string                      `gorm:"not null" bson:"password"`
	Role           string                      `gorm:"not null;default:user" bson:"role"`
	SavedFestivals datatypes.JSONSlice[string] `gorm:"type:jsonb" bson:"savedFestivals"`
	Preferences    UserPreferences             `gorm:"embedded;embeddedPrefix:preferences_" bson:"preferences"`
	CreatedAt      time.Time                   `gorm:"not null" bson:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"not null" bson:"updatedAt"`
}

type UserPreferences struct {
	Categories datatypes.JSONSlice[string] `gorm:"type:jsonb" bson:"categories"`
	Regions    datatypes.JSONSlice[string] `gorm:"type:jsonb" bson:"regions"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			err.ConstraintName == "uni_users_email" {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id string) (User, error) {
	if !ValidID(id) {
		return User{}, ErrUserNotFound
	}

	var user User
	result := d.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) UpdatePreferences(ctx context.Context, id string, prefs UserPreferences) (User, error) {
	if !ValidID(id) {
		return User{}, ErrUserNotFound
	}

	result := d.db.WithContext(ctx).Model(&User{ID: id}).
		Select("preferences_categories", "preferences_regions").
		Updates(&User{Preferences: prefs})
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *UserDAO) AddSavedFestival(ctx context.Context, id, festivalID string) (User, error) {
	return d.editSavedFestivals(ctx, id, func(saved []string) []string {
		for _, s := range saved {
			if s == festivalID {
				return saved
			}
		}
		return append(saved, festivalID)
	})
}

func (d *UserDAO) RemoveSavedFestival(ctx context.Context, id, festivalID string) (User, error) {
	return d.editSavedFestivals(ctx, id, func(saved []string) []string {
		kept := make([]string, 0, len(saved))
		for _, s := range saved {
			if s != festivalID {
				kept = append(kept, s)
			}
		}
		return kept
	})
}

// editSavedFestivals rewrites the saved list under a row lock so concurrent
// edits of the same user do not lose each other.
func (d *UserDAO) editSavedFestivals(ctx context.Context, id string, edit func([]string) []string) (User, error) {
	if !ValidID(id) {
		return User{}, ErrUserNotFound
	}

	var user User
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", id)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return result.Error
		}

		user.SavedFestivals = edit(user.SavedFestivals)

		return tx.Model(&user).Select("saved_festivals", "updated_at").Updates(&user).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}
