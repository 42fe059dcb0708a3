package bot_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/infrastructure/telegram"
	"github.com/jhoicas/staffops-api/internal/interfaces/bot"
)

type sent struct {
	chatID int64
	text   string
	markup any
}

type fakeTelegram struct {
	mu        sync.Mutex
	batches   [][]telegram.Update
	offsets   []int64
	sent      []sent
	answered  []string
	updateErr error
	deleted   bool
	cancel    context.CancelFunc
}

func (f *fakeTelegram) GetMe(context.Context) (*telegram.User, error) {
	return &telegram.User{ID: 1, IsBot: true, Username: "staffops_bot"}, nil
}

func (f *fakeTelegram) GetUpdates(_ context.Context, offset int64, _ time.Duration) ([]telegram.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, offset)
	if f.updateErr != nil {
		err := f.updateErr
		f.updateErr = nil
		return nil, err
	}
	if len(f.batches) == 0 {
		f.cancel()
		return nil, nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b, nil
}

func (f *fakeTelegram) SendMessage(_ context.Context, chatID int64, text string, markup any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{chatID: chatID, text: text, markup: markup})
	return nil
}

func (f *fakeTelegram) DeleteWebhook(context.Context, bool) error {
	f.deleted = true
	return nil
}

func (f *fakeTelegram) GetWebhookInfo(context.Context) (*telegram.WebhookInfo, error) {
	return &telegram.WebhookInfo{}, nil
}

func (f *fakeTelegram) AnswerCallbackQuery(_ context.Context, id string) error {
	f.answered = append(f.answered, id)
	return nil
}

type memStore struct {
	sessions map[int64]*botflow.Session
}

func newMemStore() *memStore { return &memStore{sessions: map[int64]*botflow.Session{}} }

func (m *memStore) Load(_ context.Context, userID int64) (*botflow.Session, error) {
	if s, ok := m.sessions[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return botflow.NewSession(), nil
}

func (m *memStore) Save(_ context.Context, userID int64, s *botflow.Session) error {
	cp := *s
	m.sessions[userID] = &cp
	return nil
}

type nopBackend struct{}

func (nopBackend) OnboardOwner(context.Context, dto.OwnerOnboardingRequest) (*dto.OwnerOnboardingResponse, error) {
	return &dto.OwnerOnboardingResponse{InviteCode: "X"}, nil
}

func (nopBackend) RedeemInvite(context.Context, dto.InviteRedeemRequest) (*dto.InviteRedeemResponse, error) {
	return &dto.InviteRedeemResponse{Role: "staff"}, nil
}

func textUpdate(id, userID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: id,
		Message: &telegram.Message{
			From: &telegram.User{ID: userID},
			Chat: telegram.Chat{ID: userID, Type: "private"},
			Text: text,
		},
	}
}

func newPoller(api *fakeTelegram, store *memStore) *bot.Poller {
	flow := botflow.NewFlow(bot.NewMessenger(api), nopBackend{}, zerolog.Nop())
	p := bot.NewPoller(api, store, flow, 0, zerolog.Nop())
	p.SetRetryDelay(time.Millisecond)
	return p
}

// ────────────────────────────────────────────────────────────────
// Messenger
// ────────────────────────────────────────────────────────────────

func TestMessenger_Teclado(t *testing.T) {
	api := &fakeTelegram{}
	m := bot.NewMessenger(api)

	require.NoError(t, m.Send(context.Background(), 7, botflow.Reply{
		Text:     "elige",
		Keyboard: [][]string{{"A"}, {"B", "C"}},
		OneTime:  true,
	}))
	require.NoError(t, m.Send(context.Background(), 7, botflow.Reply{Text: "sin teclado"}))

	require.Len(t, api.sent, 2)
	kb, ok := api.sent[0].markup.(telegram.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.OneTimeKeyboard)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, "C", kb.Keyboard[1][1].Text)
	assert.Nil(t, api.sent[1].markup)

	require.NoError(t, m.AnswerCallback(context.Background(), ""))
	assert.Empty(t, api.answered)
}

// ────────────────────────────────────────────────────────────────
// Poller
// ────────────────────────────────────────────────────────────────

func TestPoller_OffsetYSesiones(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	api := &fakeTelegram{
		cancel: cancel,
		batches: [][]telegram.Update{
			{textUpdate(10, 555, "/start")},
			{textUpdate(11, 555, botflow.LabelStaff)},
		},
	}
	store := newMemStore()
	p := newPoller(api, store)

	require.NoError(t, p.Prepare(ctx))
	assert.True(t, api.deleted)
	require.NoError(t, p.Run(ctx))

	assert.Equal(t, []int64{0, 11, 12}, api.offsets)
	s := store.sessions[555]
	require.NotNil(t, s)
	assert.Equal(t, botflow.StepStaffInvite, s.Step)
	require.NotNil(t, s.LastUpdateID)
	assert.Equal(t, int64(11), *s.LastUpdateID)
}

func TestPoller_IgnoraUpdateRepetido(t *testing.T) {
	api := &fakeTelegram{}
	store := newMemStore()
	p := newPoller(api, store)
	ctx := context.Background()

	p.HandleUpdate(ctx, textUpdate(20, 9, "/start"))
	require.Len(t, api.sent, 1)

	// Reentrega tras un reinicio: mismo update_id.
	p.HandleUpdate(ctx, textUpdate(20, 9, botflow.LabelOwner))
	assert.Len(t, api.sent, 1)
	assert.Equal(t, botflow.StepChooseRole, store.sessions[9].Step)
}

func TestPoller_Callback(t *testing.T) {
	api := &fakeTelegram{}
	store := newMemStore()
	p := newPoller(api, store)

	p.HandleUpdate(context.Background(), telegram.Update{
		UpdateID: 30,
		CallbackQuery: &telegram.CallbackQuery{
			ID:      "cb",
			From:    telegram.User{ID: 9},
			Message: &telegram.Message{Chat: telegram.Chat{ID: 9}},
			Data:    botflow.CallbackRoleOwner,
		},
	})
	assert.Equal(t, []string{"cb"}, api.answered)
	assert.Equal(t, botflow.StepOwnerCompany, store.sessions[9].Step)
}

func TestPoller_DescartaSinTexto(t *testing.T) {
	api := &fakeTelegram{}
	store := newMemStore()
	p := newPoller(api, store)

	p.HandleUpdate(context.Background(), telegram.Update{UpdateID: 1, Message: &telegram.Message{From: &telegram.User{ID: 3}}})
	assert.Empty(t, store.sessions)
	assert.Empty(t, api.sent)
}

func TestPoller_ReintentaYCortaConTokenInvalido(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := &fakeTelegram{cancel: cancel, updateErr: errors.New("red caída")}
	require.NoError(t, newPoller(api, newMemStore()).Run(ctx))
	assert.Len(t, api.offsets, 2)

	api = &fakeTelegram{cancel: cancel, updateErr: &telegram.APIError{Method: "getUpdates", Code: http.StatusUnauthorized}}
	err := newPoller(api, newMemStore()).Run(context.Background())
	require.Error(t, err)
	assert.True(t, telegram.IsUnauthorized(err))
}

// ────────────────────────────────────────────────────────────────
// BackendClient
// ────────────────────────────────────────────────────────────────

func TestBackendClient_Onboarding(t *testing.T) {
	var got dto.OwnerOnboardingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/onboarding/owner", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"company_id":"c1","invite_code":"ABCD1234"}`))
	}))
	defer srv.Close()

	c := bot.NewBackendClient(srv.URL + "/")
	res, err := c.OnboardOwner(context.Background(), dto.OwnerOnboardingRequest{CompanyName: "Bar", Username: "ana"})
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", res.InviteCode)
	assert.Equal(t, "Bar", got.CompanyName)
}

func TestBackendClient_ErroresDeDominio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/onboarding/owner":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"code":"USERNAME_TAKEN","message":"el nombre de usuario ya existe"}`))
		case "/api/onboarding/invite":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"INVITE_NOT_FOUND","message":"invitación no encontrada"}`))
		}
	}))
	defer srv.Close()
	c := bot.NewBackendClient(srv.URL)

	_, err := c.OnboardOwner(context.Background(), dto.OwnerOnboardingRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "el nombre de usuario ya existe", err.Error())

	_, err = c.RedeemInvite(context.Background(), dto.InviteRedeemRequest{Code: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
