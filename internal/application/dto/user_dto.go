package dto

import "time"

// CreateUserRequest entrada para dar de alta un empleado desde el panel.
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Role       string `json:"role" validate:"required,oneof=owner manager staff"`
	TelegramID *int64 `json:"telegram_id" validate:"omitempty,gt=0"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	TelegramID *int64    `json:"telegram_id,omitempty"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateInviteRequest entrada para generar un código de invitación.
type CreateInviteRequest struct {
	RoleDefault string     `json:"role_default" validate:"omitempty,oneof=manager staff"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// InviteResponse salida de una invitación.
type InviteResponse struct {
	Code        string     `json:"code"`
	CompanyID   string     `json:"company_id"`
	RoleDefault string     `json:"role_default"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OwnerOnboardingRequest alta de empresa + dueño (web o bot).
type OwnerOnboardingRequest struct {
	CompanyName  string `json:"company_name" validate:"required,min=1,max=200"`
	OwnerName    string `json:"owner_name" validate:"required,min=1,max=200"`
	Username     string `json:"username" validate:"required,min=3,max=64"`
	Password     string `json:"password" validate:"required,min=6,max=128"`
	Timezone     string `json:"timezone" validate:"omitempty,timezone"`
	LocationName string `json:"location_name" validate:"omitempty,max=200"`
	SkipLocation bool   `json:"skip_location"`
	TelegramID   *int64 `json:"telegram_id" validate:"omitempty,gt=0"`
}

// OwnerOnboardingResponse resultado del alta.
type OwnerOnboardingResponse struct {
	CompanyID    string `json:"company_id"`
	LocationID   string `json:"location_id,omitempty"`
	OwnerUserID  string `json:"owner_user_id"`
	CredentialID string `json:"credential_id"`
	InviteCode   string `json:"invite_code"`
	BotHint      string `json:"bot_hint"`
}

// InviteRedeemRequest canje de invitación desde el bot.
type InviteRedeemRequest struct {
	Code       string `json:"code" validate:"required,min=1,max=64"`
	TelegramID int64  `json:"telegram_id" validate:"required,gt=0"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
}

// InviteRedeemResponse resultado del canje.
type InviteRedeemResponse struct {
	UserID      string `json:"user_id"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
}

// LoginRequest credenciales web.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más identificadores.
type LoginResponse struct {
	Token         string `json:"token"`
	UserID        string `json:"user_id"`
	CompanyID     string `json:"company_id"`
	Role          string `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

// CheckTokenRequest verificación de un token de bot de Telegram.
type CheckTokenRequest struct {
	Token string `json:"token"` // vacío = token configurado del bot
}

// CheckTokenResponse resultado de getMe.
type CheckTokenResponse struct {
	OK       bool   `json:"ok"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}
