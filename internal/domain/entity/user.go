package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// IsValidRole informa si r es uno de los roles conocidos.
func IsValidRole(r string) bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User representa un empleado o dueño (pertenece a una Company).
type User struct {
	ID         string
	CompanyID  string
	TelegramID *int64 // nil si el usuario aún no vinculó Telegram
	Name       string
	Role       string // owner, manager, staff
	Status     string // active, inactive
	CreatedAt  time.Time
}

// WebCredential acceso web (usuario + contraseña) de un User.
type WebCredential struct {
	ID           string
	CompanyID    string
	UserID       string
	Username     string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}

// Invite código con el que un empleado se une a la empresa desde el bot.
type Invite struct {
	Code        string
	CompanyID   string
	RoleDefault string
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
}

// Expired informa si la invitación venció en el instante now.
func (i *Invite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}
