package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.LocationRepository   = (*LocationRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.CredentialRepository = (*CredentialRepo)(nil)
	_ repository.InviteRepository     = (*InviteRepo)(nil)
)

type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies.put(c.ID, clonePtr(c))
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, _ := r.s.companies.get(id)
	return clonePtr(c), nil
}

// List más recientes primero, igual que el adaptador PostgreSQL.
func (r *CompanyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.companies.filter(func(*entity.Company) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	var out []*entity.Company
	for _, c := range page(all, limit, offset) {
		out = append(out, clonePtr(c))
	}
	return out, nil
}

type LocationRepo struct{ s *Store }

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations.put(l.ID, clonePtr(l))
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, _ := r.s.locations.get(id)
	return clonePtr(l), nil
}

func (r *LocationRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Location
	for _, l := range r.s.locations.filter(func(l *entity.Location) bool { return l.CompanyID == companyID }) {
		out = append(out, clonePtr(l))
	}
	return out, nil
}

type UserRepo struct{ s *Store }

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	c.TelegramID = clonePtr(u.TelegramID)
	return &c
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users.put(u.ID, cloneUser(u))
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, _ := r.s.users.get(id)
	return cloneUser(u), nil
}

func (r *UserRepo) GetByTelegramID(_ context.Context, companyID string, telegramID int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	found := r.s.users.filter(func(u *entity.User) bool {
		return u.CompanyID == companyID && u.TelegramID != nil && *u.TelegramID == telegramID
	})
	if len(found) == 0 {
		return nil, nil
	}
	return cloneUser(found[0]), nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	all := r.s.users.filter(func(u *entity.User) bool { return u.CompanyID == companyID })
	for _, u := range page(all, limit, offset) {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *UserRepo) ListByRole(_ context.Context, companyID, role string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.s.users.filter(func(u *entity.User) bool { return u.CompanyID == companyID && u.Role == role }) {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

type CredentialRepo struct{ s *Store }

// Create falla con domain.ErrUsernameTaken si el username ya existe.
func (r *CredentialRepo) Create(_ context.Context, c *entity.WebCredential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.credentials.get(c.Username); ok {
		return domain.ErrUsernameTaken
	}
	r.s.credentials.put(c.Username, clonePtr(c))
	return nil
}

func (r *CredentialRepo) GetByUsername(_ context.Context, username string) (*entity.WebCredential, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, _ := r.s.credentials.get(username)
	return clonePtr(c), nil
}

type InviteRepo struct{ s *Store }

func cloneInvite(i *entity.Invite) *entity.Invite {
	if i == nil {
		return nil
	}
	c := *i
	c.ExpiresAt = clonePtr(i.ExpiresAt)
	return &c
}

func (r *InviteRepo) Create(_ context.Context, i *entity.Invite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invites.get(i.Code); ok {
		return domain.Conflict("INVITE_CODE_TAKEN", "código de invitación duplicado")
	}
	r.s.invites.put(i.Code, cloneInvite(i))
	return nil
}

func (r *InviteRepo) GetByCode(_ context.Context, code string) (*entity.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, _ := r.s.invites.get(code)
	return cloneInvite(i), nil
}

func (r *InviteRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Invite
	for _, i := range r.s.invites.filter(func(i *entity.Invite) bool { return i.CompanyID == companyID }) {
		out = append(out, cloneInvite(i))
	}
	return out, nil
}
