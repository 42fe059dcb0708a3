package botflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/domain"
)

type sentMsg struct {
	chatID int64
	reply  botflow.Reply
}

type fakeMessenger struct {
	sent     []sentMsg
	answered []string
}

func (m *fakeMessenger) Send(_ context.Context, chatID int64, r botflow.Reply) error {
	m.sent = append(m.sent, sentMsg{chatID: chatID, reply: r})
	return nil
}

func (m *fakeMessenger) AnswerCallback(_ context.Context, id string) error {
	m.answered = append(m.answered, id)
	return nil
}

func (m *fakeMessenger) lastText() string {
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].reply.Text
}

type fakeBackend struct {
	owner     *dto.OwnerOnboardingRequest
	redeem    *dto.InviteRedeemRequest
	ownerErr  error
	redeemErr error
}

func (b *fakeBackend) OnboardOwner(_ context.Context, in dto.OwnerOnboardingRequest) (*dto.OwnerOnboardingResponse, error) {
	b.owner = &in
	if b.ownerErr != nil {
		return nil, b.ownerErr
	}
	return &dto.OwnerOnboardingResponse{CompanyID: "c1", InviteCode: "ABCD1234"}, nil
}

func (b *fakeBackend) RedeemInvite(_ context.Context, in dto.InviteRedeemRequest) (*dto.InviteRedeemResponse, error) {
	b.redeem = &in
	if b.redeemErr != nil {
		return nil, b.redeemErr
	}
	return &dto.InviteRedeemResponse{UserID: "u9", CompanyID: "c1", CompanyName: "Café Norte", Role: "staff"}, nil
}

const (
	chat = int64(100)
	user = int64(555)
)

func newFlow() (*botflow.Flow, *fakeMessenger, *fakeBackend) {
	m := &fakeMessenger{}
	b := &fakeBackend{}
	return botflow.NewFlow(m, b, zerolog.Nop()), m, b
}

// say envía una secuencia de mensajes y devuelve la sesión final.
func say(t *testing.T, f *botflow.Flow, s *botflow.Session, msgs ...string) *botflow.Session {
	t.Helper()
	var err error
	for _, text := range msgs {
		s, err = f.HandleMessage(context.Background(), chat, user, text, s)
		require.NoError(t, err)
	}
	return s
}

// ────────────────────────────────────────────────────────────────
// Pasos
// ────────────────────────────────────────────────────────────────

func TestStep_RolYNombre(t *testing.T) {
	assert.Equal(t, botflow.RoleOwner, botflow.StepOwnerTimezone.Role())
	assert.Equal(t, botflow.RoleStaff, botflow.StepStaffRecipes.Role())
	assert.Equal(t, botflow.RoleNone, botflow.StepChooseRole.Role())
	assert.Equal(t, "owner_location", botflow.StepOwnerLocation.String())
	assert.Equal(t, botflow.StepStaffMenu, botflow.ParseStep("staff_menu"))
	assert.Equal(t, botflow.StepNone, botflow.ParseStep("owner_typo"))
}

func TestParseRoleChoice(t *testing.T) {
	cases := map[string]botflow.Role{
		botflow.LabelOwner: botflow.RoleOwner,
		botflow.LabelStaff: botflow.RoleStaff,
		"DUEÑO":            botflow.RoleOwner,
		"soy la duena":     botflow.RoleOwner,
		"Administrador":    botflow.RoleOwner,
		"Владелец":         botflow.RoleOwner,
		"сотрудник":        botflow.RoleStaff,
		"  EMPLEADA ":      botflow.RoleStaff,
		"hola":             botflow.RoleNone,
		"":                 botflow.RoleNone,
	}
	for in, want := range cases {
		assert.Equal(t, want, botflow.ParseRoleChoice(in), in)
	}
}

// ────────────────────────────────────────────────────────────────
// Flujo del dueño
// ────────────────────────────────────────────────────────────────

func TestOwnerFlow_Completo(t *testing.T) {
	f, m, b := newFlow()
	s := say(t, f, nil, "/start")
	assert.Equal(t, botflow.StepChooseRole, s.Step)
	require.Len(t, m.sent, 1)
	assert.Equal(t, [][]string{{botflow.LabelOwner}, {botflow.LabelStaff}}, m.sent[0].reply.Keyboard)

	s = say(t, f, s, botflow.LabelOwner, "Café Norte", "Ana", "ana", "secreto1", "-")
	assert.Equal(t, botflow.StepOwnerLocation, s.Step)
	assert.Equal(t, botflow.RoleOwner, s.Role)

	s = say(t, f, s, "Centro")
	require.NotNil(t, b.owner)
	assert.Equal(t, "Café Norte", b.owner.CompanyName)
	assert.Equal(t, "Ana", b.owner.OwnerName)
	assert.Equal(t, "ana", b.owner.Username)
	assert.Equal(t, "secreto1", b.owner.Password)
	assert.Empty(t, b.owner.Timezone)
	assert.Equal(t, "Centro", b.owner.LocationName)
	assert.False(t, b.owner.SkipLocation)
	require.NotNil(t, b.owner.TelegramID)
	assert.Equal(t, user, *b.owner.TelegramID)

	assert.Contains(t, m.lastText(), "ABCD1234")
	assert.Equal(t, botflow.StepNone, s.Step)
	assert.Empty(t, s.Data)
}

func TestOwnerFlow_OmitirPuntoDeVenta(t *testing.T) {
	f, _, b := newFlow()
	say(t, f, nil, "/start", botflow.LabelOwner, "Bar", "Luis", "luis", "clave123", "America/Bogota", "-")
	require.NotNil(t, b.owner)
	assert.True(t, b.owner.SkipLocation)
	assert.Empty(t, b.owner.LocationName)
	assert.Equal(t, "America/Bogota", b.owner.Timezone)
}

func TestOwnerFlow_ErrorDelBackendReinicia(t *testing.T) {
	f, m, b := newFlow()
	b.ownerErr = domain.ErrUsernameTaken
	s := say(t, f, nil, "/start", botflow.LabelOwner, "Bar", "Luis", "luis", "clave123", "-", "-")
	assert.Contains(t, m.lastText(), "el nombre de usuario ya existe")
	assert.Equal(t, botflow.StepNone, s.Step)
	assert.Equal(t, botflow.RoleNone, s.Role)
}

func TestCallback_EligeRol(t *testing.T) {
	f, m, _ := newFlow()
	s, err := f.HandleCallback(context.Background(), chat, user, botflow.CallbackRoleStaff, "cb-1", botflow.NewSession())
	require.NoError(t, err)
	assert.Equal(t, botflow.StepStaffInvite, s.Step)
	assert.Equal(t, botflow.RoleStaff, s.Role)
	assert.Equal(t, []string{"cb-1"}, m.answered)
}

func TestRolInferidoDelPaso(t *testing.T) {
	f, _, _ := newFlow()
	// Sesión persistida sin rol: el paso lo define.
	s := &botflow.Session{Step: botflow.StepOwnerName, Data: map[string]string{}}
	s = say(t, f, s, "Marta")
	assert.Equal(t, botflow.RoleOwner, s.Role)
	assert.Equal(t, botflow.StepOwnerUsername, s.Step)
}

func TestElegirRolInvalido(t *testing.T) {
	f, m, _ := newFlow()
	s := say(t, f, nil, "/start", "no sé")
	assert.Equal(t, botflow.StepChooseRole, s.Step)
	require.GreaterOrEqual(t, len(m.sent), 2)
	assert.Equal(t, "Por favor, elige un rol con los botones.", m.sent[len(m.sent)-2].reply.Text)
}

// ────────────────────────────────────────────────────────────────
// Flujo del empleado
// ────────────────────────────────────────────────────────────────

func TestStaffFlow_CanjeYMenu(t *testing.T) {
	f, m, b := newFlow()
	s := say(t, f, nil, "/start", botflow.LabelStaff, "ABCD1234", "Pedro")
	require.NotNil(t, b.redeem)
	assert.Equal(t, "ABCD1234", b.redeem.Code)
	assert.Equal(t, user, b.redeem.TelegramID)
	assert.Equal(t, "Pedro", b.redeem.Name)
	assert.Equal(t, botflow.StepStaffMenu, s.Step)

	s = say(t, f, s, botflow.LabelProfile)
	assert.Equal(t, botflow.StepStaffProfile, s.Step)
	assert.Contains(t, m.lastText(), "Pedro")
	assert.Contains(t, m.lastText(), "Café Norte")

	s = say(t, f, s, botflow.LabelBackToMenu, botflow.LabelRecipes)
	assert.Equal(t, botflow.StepStaffRecipes, s.Step)
	s = say(t, f, s, botflow.LabelBackRecipes)
	assert.Equal(t, botflow.StepStaffMenu, s.Step)
}

func TestStaffFlow_CodigoInvalido(t *testing.T) {
	f, m, b := newFlow()
	b.redeemErr = errors.New("backend caído")
	s := say(t, f, nil, "/start", botflow.LabelStaff, "XXXX", "Pedro")
	assert.Contains(t, m.lastText(), "backend caído")
	assert.Equal(t, botflow.StepNone, s.Step)
}

func TestSession_Deduplicacion(t *testing.T) {
	s := botflow.NewSession()
	assert.False(t, s.AlreadySeen(10))
	s.MarkSeen(10)
	assert.True(t, s.AlreadySeen(10))
	assert.True(t, s.AlreadySeen(9))
	assert.False(t, s.AlreadySeen(11))
}

func TestStart_ConservaUltimoUpdate(t *testing.T) {
	f, _, _ := newFlow()
	s := botflow.NewSession()
	s.MarkSeen(7)
	s = say(t, f, s, botflow.LabelStaff, "/start")
	require.NotNil(t, s.LastUpdateID)
	assert.Equal(t, int64(7), *s.LastUpdateID)
	assert.Equal(t, botflow.StepChooseRole, s.Step)
}
