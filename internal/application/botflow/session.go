package botflow

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/application/dto"
)

// Claves de Session.Data.
const (
	keyCompanyName = "company_name"
	keyOwnerName   = "owner_name"
	keyUsername    = "username"
	keyPassword    = "password"
	keyTimezone    = "timezone"
	keyInviteCode  = "invite_code"
	keyStaffName   = "staff_name"
)

// Session estado de la conversación de un usuario de Telegram.
type Session struct {
	Role         Role
	Step         Step
	Data         map[string]string
	LastUpdateID *int64
}

// NewSession sesión vacía.
func NewSession() *Session {
	return &Session{Data: make(map[string]string)}
}

// AlreadySeen true si updateID ya fue procesado para esta sesión.
func (s *Session) AlreadySeen(updateID int64) bool {
	return s.LastUpdateID != nil && updateID <= *s.LastUpdateID
}

// MarkSeen registra el último update procesado.
func (s *Session) MarkSeen(updateID int64) {
	id := updateID
	s.LastUpdateID = &id
}

// reset vacía rol, paso y datos conservando el último update procesado.
func (s *Session) reset() {
	s.Role = RoleNone
	s.Step = StepNone
	s.Data = make(map[string]string)
}

func (s *Session) set(key, value string) {
	if s.Data == nil {
		s.Data = make(map[string]string)
	}
	s.Data[key] = value
}

// SessionStore persistencia de sesiones por id de usuario de Telegram.
// Load devuelve una sesión vacía si el usuario no tiene ninguna.
type SessionStore interface {
	Load(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, userID int64, s *Session) error
}

// Reply mensaje saliente; Keyboard vacío = sin teclado.
type Reply struct {
	Text     string
	Keyboard [][]string
	OneTime  bool
}

// Messenger canal de salida hacia el chat.
type Messenger interface {
	Send(ctx context.Context, chatID int64, reply Reply) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Backend operaciones de onboarding que el bot delega en la API.
type Backend interface {
	OnboardOwner(ctx context.Context, in dto.OwnerOnboardingRequest) (*dto.OwnerOnboardingResponse, error)
	RedeemInvite(ctx context.Context, in dto.InviteRedeemRequest) (*dto.InviteRedeemResponse, error)
}
