// Package daotest provides in-memory DAOs with the same observable behavior
// as the database-backed ones, for service and handler tests.
package daotest

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/festivefusion/festival-api/internal/repository/dao"
)

// Store holds every collection. The DAOs returned by its methods share it,
// the same way the real DAOs share one database.
type Store struct {
	mu        sync.Mutex
	festivals map[string]dao.Festival
	users     map[string]dao.User
	visits    map[string]dao.PlannedVisit
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		festivals: make(map[string]dao.Festival),
		users:     make(map[string]dao.User),
		visits:    make(map[string]dao.PlannedVisit),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Festivals() *FestivalDAO { return &FestivalDAO{s: s} }

func (s *Store) Users() *UserDAO { return &UserDAO{s: s} }

func (s *Store) Visits() *VisitDAO { return &VisitDAO{s: s} }

// PutFestival stores f as is, bypassing the DAO. Handy for seeding.
func (s *Store) PutFestival(f dao.Festival) dao.Festival {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.festivals[f.ID] = f

	return f
}

// RemoveFestival drops a festival without cascading, leaving any
// references to it dangling.
func (s *Store) RemoveFestival(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.festivals, id)
}

// PutVisit stores v as is, bypassing the DAO.
func (s *Store) PutVisit(v dao.PlannedVisit) dao.PlannedVisit {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.visits[v.ID] = v

	return v
}

type FestivalDAO struct {
	s *Store
}

func (d *FestivalDAO) ValidID(id string) bool {
	return dao.ValidID(id)
}

func (d *FestivalDAO) Insert(_ context.Context, festival dao.Festival) (dao.Festival, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	now := d.s.now()
	festival.ID = uuid.NewString()
	festival.CreatedAt = now
	festival.UpdatedAt = now
	d.s.festivals[festival.ID] = festival

	return festival, nil
}

func (d *FestivalDAO) FindByID(_ context.Context, id string) (dao.Festival, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	f, ok := d.s.festivals[id]
	if !ok {
		return dao.Festival{}, dao.ErrFestivalNotFound
	}

	return f, nil
}

func (d *FestivalDAO) FindByIDs(_ context.Context, ids []string) ([]dao.Festival, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	found := make([]dao.Festival, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if f, ok := d.s.festivals[id]; ok && !seen[id] {
			seen[id] = true
			found = append(found, f)
		}
	}

	return found, nil
}

func (d *FestivalDAO) Find(_ context.Context, q dao.FestivalQuery) ([]dao.Festival, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	found := make([]dao.Festival, 0)
	for _, f := range d.s.festivals {
		if matches(f, q) {
			found = append(found, f)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].StartDate.Before(found[j].StartDate)
	})

	return found, nil
}

func matches(f dao.Festival, q dao.FestivalQuery) bool {
	switch {
	case q.Region != nil && f.Region != *q.Region:
		return false
	case q.Type != nil && f.Type != *q.Type:
		return false
	case q.CrowdLevel != nil && f.TouristInfo.CrowdLevel != *q.CrowdLevel:
		return false
	case q.BudgetLevel != nil && f.TouristInfo.BudgetLevel != *q.BudgetLevel:
		return false
	case q.IsHiddenGem != nil && f.IsHiddenGem != *q.IsHiddenGem:
		return false
	case q.StartsFrom != nil && f.StartDate.Before(*q.StartsFrom):
		return false
	case q.EndsBy != nil && f.EndDate.After(*q.EndsBy):
		return false
	}

	return true
}

func (d *FestivalDAO) Update(_ context.Context, festival dao.Festival) (dao.Festival, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	old, ok := d.s.festivals[festival.ID]
	if !ok {
		return dao.Festival{}, dao.ErrFestivalNotFound
	}

	festival.CreatedAt = old.CreatedAt
	festival.UpdatedAt = d.s.now()
	d.s.festivals[festival.ID] = festival

	return festival, nil
}

func (d *FestivalDAO) Delete(_ context.Context, id string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.festivals[id]; !ok {
		return dao.ErrFestivalNotFound
	}
	delete(d.s.festivals, id)

	return nil
}

type UserDAO struct {
	s *Store
}

func (d *UserDAO) Insert(_ context.Context, user dao.User) (dao.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	for _, u := range d.s.users {
		if u.Email == user.Email {
			return dao.User{}, dao.ErrUserEmailExists
		}
	}

	now := d.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.SavedFestivals == nil {
		user.SavedFestivals = []string{}
	}
	d.s.users[user.ID] = user

	return user, nil
}

func (d *UserDAO) FindByID(_ context.Context, id string) (dao.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	u, ok := d.s.users[id]
	if !ok {
		return dao.User{}, dao.ErrUserNotFound
	}

	return u, nil
}

func (d *UserDAO) FindByEmail(_ context.Context, email string) (dao.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	for _, u := range d.s.users {
		if u.Email == email {
			return u, nil
		}
	}

	return dao.User{}, dao.ErrUserNotFound
}

func (d *UserDAO) UpdatePreferences(_ context.Context, id string, prefs dao.UserPreferences) (dao.User, error) {
	return d.edit(id, func(u *dao.User) {
		u.Preferences = prefs
	})
}

func (d *UserDAO) AddSavedFestival(_ context.Context, id, festivalID string) (dao.User, error) {
	return d.edit(id, func(u *dao.User) {
		if !slices.Contains(u.SavedFestivals, festivalID) {
			u.SavedFestivals = append(slices.Clone(u.SavedFestivals), festivalID)
		}
	})
}

func (d *UserDAO) RemoveSavedFestival(_ context.Context, id, festivalID string) (dao.User, error) {
	return d.edit(id, func(u *dao.User) {
		kept := make([]string, 0, len(u.SavedFestivals))
		for _, saved := range u.SavedFestivals {
			if saved != festivalID {
				kept = append(kept, saved)
			}
		}
		u.SavedFestivals = kept
	})
}

func (d *UserDAO) edit(id string, fn func(u *dao.User)) (dao.User, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	u, ok := d.s.users[id]
	if !ok {
		return dao.User{}, dao.ErrUserNotFound
	}

	fn(&u)
	u.UpdatedAt = d.s.now()
	d.s.users[id] = u

	return u, nil
}

type VisitDAO struct {
	s *Store
}

func (d *VisitDAO) ValidID(id string) bool {
	return dao.ValidID(id)
}

func (d *VisitDAO) Insert(_ context.Context, visit dao.PlannedVisit) (dao.PlannedVisit, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	now := d.s.now()
	visit.ID = uuid.NewString()
	visit.CreatedAt = now
	visit.UpdatedAt = now
	d.s.visits[visit.ID] = visit

	return visit, nil
}

func (d *VisitDAO) FindByUserID(_ context.Context, userID string) ([]dao.PlannedVisit, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	found := make([]dao.PlannedVisit, 0)
	for _, v := range d.s.visits {
		if v.UserID == userID {
			found = append(found, v)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].VisitDate.Before(found[j].VisitDate)
	})

	return found, nil
}

func (d *VisitDAO) FindOwned(_ context.Context, id, userID string) (dao.PlannedVisit, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	v, ok := d.s.visits[id]
	if !ok || v.UserID != userID {
		return dao.PlannedVisit{}, dao.ErrVisitNotFound
	}

	return v, nil
}

func (d *VisitDAO) UpdateOwned(_ context.Context, visit dao.PlannedVisit) (dao.PlannedVisit, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	v, ok := d.s.visits[visit.ID]
	if !ok || v.UserID != visit.UserID {
		return dao.PlannedVisit{}, dao.ErrVisitNotFound
	}

	v.VisitDate = visit.VisitDate
	v.GroupSize = visit.GroupSize
	v.SpecialRequirements = visit.SpecialRequirements
	v.Status = visit.Status
	v.UpdatedAt = d.s.now()
	d.s.visits[v.ID] = v

	return v, nil
}

func (d *VisitDAO) DeleteOwned(_ context.Context, id, userID string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	v, ok := d.s.visits[id]
	if !ok || v.UserID != userID {
		return dao.ErrVisitNotFound
	}
	delete(d.s.visits, id)

	return nil
}

func (d *VisitDAO) DeleteByFestivalID(_ context.Context, festivalID string) (int64, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	var n int64
	for id, v := range d.s.visits {
		if v.FestivalID == festivalID {
			delete(d.s.visits, id)
			n++
		}
	}

	return n, nil
}
