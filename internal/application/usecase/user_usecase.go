package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// UserUseCase alta de empleados e invitaciones.
type UserUseCase struct {
	users     repository.UserRepository
	invites   repository.InviteRepository
	companies repository.CompanyRepository
	clock     ports.Clock
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, invites repository.InviteRepository, companies repository.CompanyRepository, clock ports.Clock) *UserUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &UserUseCase{users: users, invites: invites, companies: companies, clock: clock}
}

// Create da de alta un usuario activo.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		TelegramID: in.TelegramID,
		Name:       in.Name,
		Role:       in.Role,
		Status:     entity.UserStatusActive,
		CreatedAt:  uc.clock.Now(),
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// List usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.users.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// CreateInvite genera un código de invitación. Rol por defecto staff.
func (uc *UserUseCase) CreateInvite(ctx context.Context, companyID string, in dto.CreateInviteRequest) (*dto.InviteResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	role := in.RoleDefault
	if role == "" {
		role = entity.RoleStaff
	}
	inv := NewInvite(companyID, role, in.ExpiresAt, uc.clock.Now())
	if err := uc.invites.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInviteResponse(inv), nil
}

// ListInvites invitaciones de la empresa.
func (uc *UserUseCase) ListInvites(ctx context.Context, companyID string) ([]dto.InviteResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	list, err := uc.invites.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInviteResponse(inv))
	}
	return out, nil
}

// NewInvite construye una invitación con código de 8 caracteres hexadecimales.
func NewInvite(companyID, role string, expiresAt *time.Time, now time.Time) *entity.Invite {
	return &entity.Invite{
		Code:        strings.ReplaceAll(uuid.New().String(), "-", "")[:8],
		CompanyID:   companyID,
		RoleDefault: role,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}
}

// ToUserResponse mapea la entidad a su salida pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         u.ID,
		CompanyID:  u.CompanyID,
		TelegramID: u.TelegramID,
		Name:       u.Name,
		Role:       u.Role,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
	}
}

func toInviteResponse(i *entity.Invite) *dto.InviteResponse {
	return &dto.InviteResponse{
		Code:        i.Code,
		CompanyID:   i.CompanyID,
		RoleDefault: i.RoleDefault,
		ExpiresAt:   i.ExpiresAt,
		CreatedAt:   i.CreatedAt,
	}
}
