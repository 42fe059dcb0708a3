package repository

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByTelegramID(ctx context.Context, companyID string, telegramID int64) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	ListByRole(ctx context.Context, companyID, role string) ([]*entity.User, error)
}

// CredentialRepository puerto para las credenciales web. Username es único global.
type CredentialRepository interface {
	Create(ctx context.Context, cred *entity.WebCredential) error
	GetByUsername(ctx context.Context, username string) (*entity.WebCredential, error)
}

// InviteRepository puerto para los códigos de invitación.
type InviteRepository interface {
	Create(ctx context.Context, invite *entity.Invite) error
	GetByCode(ctx context.Context, code string) (*entity.Invite, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Invite, error)
}
