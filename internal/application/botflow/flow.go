package botflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/domain"
)

// Callbacks de los botones inline de elección de rol.
const (
	CallbackRoleOwner = "role_owner"
	CallbackRoleStaff = "role_staff"
)

// Menú del empleado.
const (
	LabelProfile     = "Perfil"
	LabelRecipes     = "Recetas"
	LabelBackToMenu  = "Al menú"
	LabelBackRecipes = "Atrás"
)

const skipToken = "-"

var prompts = map[Step]string{
	StepOwnerCompany:  "Ingresa el nombre de la empresa.",
	StepOwnerName:     "Ingresa tu nombre.",
	StepOwnerUsername: "Elige un usuario para el panel web.",
	StepOwnerPassword: "Elige una contraseña para el panel web.",
	StepOwnerTimezone: "Ingresa la zona horaria (por ejemplo, Europe/Moscow) o envía '-' para usar la predeterminada.",
	StepOwnerLocation: "Ingresa el nombre del punto de venta (o envía '-' para omitirlo).",
	StepStaffInvite:   "Ingresa el código de invitación de la empresa.",
	StepStaffName:     "Ingresa tu nombre.",
}

var roleLabels = map[string]string{
	"owner":   "dueño",
	"manager": "encargado",
	"staff":   "empleado",
}

// Flow máquina de estados de la conversación. No guarda estado propio: todo vive en Session.
type Flow struct {
	msg     Messenger
	backend Backend
	log     zerolog.Logger
}

// NewFlow construye la conversación.
func NewFlow(msg Messenger, backend Backend, log zerolog.Logger) *Flow {
	return &Flow{msg: msg, backend: backend, log: log}
}

// HandleMessage procesa un mensaje de texto y devuelve la sesión resultante.
// Los errores devueltos son de envío; la sesión devuelta sigue siendo válida.
func (f *Flow) HandleMessage(ctx context.Context, chatID, userID int64, text string, s *Session) (*Session, error) {
	if s == nil {
		s = NewSession()
	}
	message := strings.TrimSpace(text)
	if strings.EqualFold(message, "/start") {
		return f.start(ctx, chatID, s)
	}

	choice := ParseRoleChoice(message)
	if s.Step == StepChooseRole || (s.Role == RoleNone && choice != RoleNone) {
		switch choice {
		case RoleOwner:
			return f.enter(ctx, chatID, s, StepOwnerCompany)
		case RoleStaff:
			return f.enter(ctx, chatID, s, StepStaffInvite)
		}
		if err := f.send(ctx, chatID, Reply{Text: "Por favor, elige un rol con los botones."}); err != nil {
			return s, err
		}
		return f.rolePrompt(ctx, chatID, s)
	}

	if s.Role == RoleNone {
		s.Role = s.Step.Role()
	}
	switch s.Role {
	case RoleOwner:
		return f.ownerFlow(ctx, chatID, userID, s, message)
	case RoleStaff:
		return f.staffFlow(ctx, chatID, userID, s, message)
	}
	return f.repeat(ctx, chatID, s)
}

// HandleCallback procesa una pulsación de botón inline.
func (f *Flow) HandleCallback(ctx context.Context, chatID, userID int64, data, callbackID string, s *Session) (*Session, error) {
	if s == nil {
		s = NewSession()
	}
	if err := f.msg.AnswerCallback(ctx, callbackID); err != nil {
		f.log.Warn().Err(err).Str("callback_id", callbackID).Msg("answerCallbackQuery")
	}
	switch data {
	case CallbackRoleOwner:
		return f.enter(ctx, chatID, s, StepOwnerCompany)
	case CallbackRoleStaff:
		return f.enter(ctx, chatID, s, StepStaffInvite)
	}
	return f.repeat(ctx, chatID, s)
}

func (f *Flow) start(ctx context.Context, chatID int64, s *Session) (*Session, error) {
	s.reset()
	return f.rolePrompt(ctx, chatID, s)
}

func (f *Flow) rolePrompt(ctx context.Context, chatID int64, s *Session) (*Session, error) {
	s.Step = StepChooseRole
	s.Role = RoleNone
	return s, f.send(ctx, chatID, Reply{
		Text:     "¡Hola! ¿Eres dueño/administrador o empleado?",
		Keyboard: [][]string{{LabelOwner}, {LabelStaff}},
		OneTime:  true,
	})
}

// enter mueve la sesión a step (fijando su rol) y envía la pregunta del paso.
func (f *Flow) enter(ctx context.Context, chatID int64, s *Session, step Step) (*Session, error) {
	s.Step = step
	s.Role = step.Role()
	return s, f.send(ctx, chatID, Reply{Text: prompts[step]})
}

func (f *Flow) repeat(ctx context.Context, chatID int64, s *Session) (*Session, error) {
	switch s.Step {
	case StepNone, StepChooseRole:
		return f.rolePrompt(ctx, chatID, s)
	case StepStaffMenu:
		return f.staffMenu(ctx, chatID, s)
	case StepStaffProfile:
		return f.staffProfile(ctx, chatID, s)
	case StepStaffRecipes:
		return f.staffRecipes(ctx, chatID, s)
	}
	if p, ok := prompts[s.Step]; ok {
		return s, f.send(ctx, chatID, Reply{Text: p})
	}
	return s, f.send(ctx, chatID, Reply{Text: "Escribe /start para comenzar."})
}

// ── Dueño ─────────────────────────────────────────────────────────────────────

func (f *Flow) ownerFlow(ctx context.Context, chatID, userID int64, s *Session, message string) (*Session, error) {
	switch s.Step {
	case StepOwnerCompany:
		s.set(keyCompanyName, message)
		return f.enter(ctx, chatID, s, StepOwnerName)
	case StepOwnerName:
		s.set(keyOwnerName, message)
		return f.enter(ctx, chatID, s, StepOwnerUsername)
	case StepOwnerUsername:
		s.set(keyUsername, message)
		return f.enter(ctx, chatID, s, StepOwnerPassword)
	case StepOwnerPassword:
		s.set(keyPassword, message)
		return f.enter(ctx, chatID, s, StepOwnerTimezone)
	case StepOwnerTimezone:
		if message == skipToken {
			message = ""
		}
		s.set(keyTimezone, message)
		return f.enter(ctx, chatID, s, StepOwnerLocation)
	case StepOwnerLocation:
		return f.finishOwner(ctx, chatID, userID, s, message)
	}
	return f.repeat(ctx, chatID, s)
}

func (f *Flow) finishOwner(ctx context.Context, chatID, userID int64, s *Session, message string) (*Session, error) {
	tgID := userID
	req := dto.OwnerOnboardingRequest{
		CompanyName: s.Data[keyCompanyName],
		OwnerName:   s.Data[keyOwnerName],
		Username:    s.Data[keyUsername],
		Password:    s.Data[keyPassword],
		Timezone:    s.Data[keyTimezone],
		TelegramID:  &tgID,
	}
	if message == skipToken {
		req.SkipLocation = true
	} else {
		req.LocationName = message
	}

	res, err := f.backend.OnboardOwner(ctx, req)
	s.reset()
	if err != nil {
		f.log.Info().Err(err).Int64("user_id", userID).Msg("onboarding de dueño rechazado")
		return s, f.send(ctx, chatID, Reply{Text: "Error de onboarding: " + errorText(err)})
	}
	return s, f.send(ctx, chatID, Reply{Text: fmt.Sprintf(
		"Empresa creada ✅\nCódigo de invitación para el equipo: %s\nUsuario y contraseña del panel web guardados.",
		res.InviteCode,
	)})
}

// ── Empleado ──────────────────────────────────────────────────────────────────

func (f *Flow) staffFlow(ctx context.Context, chatID, userID int64, s *Session, message string) (*Session, error) {
	switch s.Step {
	case StepStaffMenu:
		switch message {
		case LabelProfile:
			return f.staffProfile(ctx, chatID, s)
		case LabelRecipes:
			return f.staffRecipes(ctx, chatID, s)
		}
		return f.staffMenu(ctx, chatID, s)
	case StepStaffProfile:
		if message == LabelBackToMenu {
			return f.staffMenu(ctx, chatID, s)
		}
		return f.staffProfile(ctx, chatID, s)
	case StepStaffRecipes:
		if message == LabelBackRecipes {
			return f.staffMenu(ctx, chatID, s)
		}
		return f.staffRecipes(ctx, chatID, s)
	case StepStaffInvite:
		s.set(keyInviteCode, message)
		return f.enter(ctx, chatID, s, StepStaffName)
	case StepStaffName:
		return f.finishStaff(ctx, chatID, userID, s, message)
	}
	return f.repeat(ctx, chatID, s)
}

func (f *Flow) finishStaff(ctx context.Context, chatID, userID int64, s *Session, name string) (*Session, error) {
	res, err := f.backend.RedeemInvite(ctx, dto.InviteRedeemRequest{
		Code:       s.Data[keyInviteCode],
		TelegramID: userID,
		Name:       name,
	})
	if err != nil {
		s.reset()
		f.log.Info().Err(err).Int64("user_id", userID).Msg("canje de invitación rechazado")
		return s, f.send(ctx, chatID, Reply{Text: "Error con el código de invitación: " + errorText(err)})
	}
	s.set(keyStaffName, name)
	if res.CompanyName != "" {
		s.set(keyCompanyName, res.CompanyName)
	}
	if err := f.send(ctx, chatID, Reply{Text: fmt.Sprintf("Listo ✅ Quedaste registrado como %s.", roleLabel(res.Role))}); err != nil {
		return s, err
	}
	return f.staffMenu(ctx, chatID, s)
}

func (f *Flow) staffMenu(ctx context.Context, chatID int64, s *Session) (*Session, error) {
	s.Step = StepStaffMenu
	s.Role = RoleStaff
	return s, f.send(ctx, chatID, Reply{
		Text:     "Estás en el menú del empleado. Elige una sección.",
		Keyboard: [][]string{{LabelProfile}, {LabelRecipes}},
	})
}

func (f *Flow) staffProfile(ctx context.Context, chatID int64, s *Session) (*Session, error) {
	s.Step = StepStaffProfile
	return s, f.send(ctx, chatID, Reply{
		Text: fmt.Sprintf("Perfil del empleado\nNombre: %s\nEmpresa: %s",
			valueOr(s.Data[keyStaffName], "—"), valueOr(s.Data[keyCompanyName], "—")),
		Keyboard: [][]string{{LabelBackToMenu}},
	})
}

func (f *Flow) staffRecipes(ctx context.Context, chatID int64, s *Session) (*Session, error) {
	s.Step = StepStaffRecipes
	return s, f.send(ctx, chatID, Reply{
		Text:     "Todavía no hay recetas.",
		Keyboard: [][]string{{LabelBackRecipes}},
	})
}

func (f *Flow) send(ctx context.Context, chatID int64, r Reply) error {
	if err := f.msg.Send(ctx, chatID, r); err != nil {
		return fmt.Errorf("enviar a %d: %w", chatID, err)
	}
	return nil
}

func roleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	if role == "" {
		return roleLabels["staff"]
	}
	return role
}

// errorText mensaje legible para el usuario final.
func errorText(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return err.Error()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
