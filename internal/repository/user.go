package repository

import (
	"context"
	"fmt"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id string) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs dao.UserPreferences) (dao.User, error)
	AddSavedFestival(ctx context.Context, id, festivalID string) (dao.User, error)
	RemoveSavedFestival(ctx context.Context, id, festivalID string) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
		Role:     user.Role,
		Preferences: dao.UserPreferences{
			Categories: user.Preferences.Categories,
			Regions:    user.Preferences.Regions,
		},
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (domain.User, error) {
	updated, err := r.dao.UpdatePreferences(ctx, id, dao.UserPreferences{
		Categories: prefs.Categories,
		Regions:    prefs.Regions,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdatePreferences -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) AddSavedFestival(ctx context.Context, id, festivalID string) (domain.User, error) {
	updated, err := r.dao.AddSavedFestival(ctx, id, festivalID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.AddSavedFestival -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) RemoveSavedFestival(ctx context.Context, id, festivalID string) (domain.User, error) {
	updated, err := r.dao.RemoveSavedFestival(ctx, id, festivalID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.RemoveSavedFestival -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Password:       u.Password,
		Role:           u.Role,
		SavedFestivals: nonNil(u.SavedFestivals),
		Preferences: domain.Preferences{
			Categories: nonNil(u.Preferences.Categories),
			Regions:    nonNil(u.Preferences.Regions),
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// nonNil keeps empty lists serializing as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
