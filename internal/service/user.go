package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/festivefusion/festival-api/internal/domain"
	"github.com/festivefusion/festival-api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (domain.User, error)
	AddSavedFestival(ctx context.Context, id, festivalID string) (domain.User, error)
	RemoveSavedFestival(ctx context.Context, id, festivalID string) (domain.User, error)
}

type UserFestivalRepository interface {
	ValidID(id string) bool
	FindByID(ctx context.Context, id string) (domain.Festival, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Festival, error)
}

type UserService struct {
	repo      UserRepository
	festivals UserFestivalRepository
}

func NewUserService(repo UserRepository, festivals UserFestivalRepository) *UserService {
	return &UserService{
		repo:      repo,
		festivals: festivals,
	}
}

func (s *UserService) GetProfile(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (domain.User, error) {
	if prefs.Categories == nil {
		prefs.Categories = []string{}
	}
	if prefs.Regions == nil {
		prefs.Regions = []string{}
	}

	user, err := s.repo.UpdatePreferences(ctx, id, prefs)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdatePreferences -> %w", err)
	}

	return user, nil
}

// ListSavedFestivals expands the user's saved festivals in the order they
// were saved. References to deleted festivals are skipped.
func (s *UserService) ListSavedFestivals(ctx context.Context, id string) ([]domain.Festival, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	found, err := s.festivals.FindByIDs(ctx, user.SavedFestivals)
	if err != nil {
		return nil, fmt.Errorf("s.festivals.FindByIDs -> %w", err)
	}

	festivals := make([]domain.Festival, 0, len(user.SavedFestivals))
	for _, festivalID := range user.SavedFestivals {
		if f, ok := found[festivalID]; ok {
			festivals = append(festivals, f)
		}
	}

	if dropped := len(user.SavedFestivals) - len(festivals); dropped > 0 {
		zap.L().Warn("skipped saved festivals that no longer exist",
			zap.String("user_id", id), zap.Int("count", dropped))
	}

	return festivals, nil
}

func (s *UserService) SaveFestival(ctx context.Context, id, festivalID string) (domain.User, error) {
	if !s.festivals.ValidID(festivalID) {
		return domain.User{}, validation.Errors{"festivalId": errInvalidFestivalID}
	}

	if _, err := s.festivals.FindByID(ctx, festivalID); err != nil {
		if errors.Is(err, repository.ErrFestivalNotFound) {
			return domain.User{}, validation.Errors{"festivalId": errUnknownFestival}
		}
		return domain.User{}, fmt.Errorf("s.festivals.FindByID -> %w", err)
	}

	user, err := s.repo.AddSavedFestival(ctx, id, festivalID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.AddSavedFestival -> %w", err)
	}

	return user, nil
}

func (s *UserService) UnsaveFestival(ctx context.Context, id, festivalID string) (domain.User, error) {
	user, err := s.repo.RemoveSavedFestival(ctx, id, festivalID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.RemoveSavedFestival -> %w", err)
	}

	return user, nil
}
