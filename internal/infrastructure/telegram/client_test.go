package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/infrastructure/telegram"
)

type recorded struct {
	path string
	body map[string]any
}

// fakeAPI responde según el método final de la URL y guarda cada request.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []recorded
	handlers map[string]string // método -> JSON de respuesta
}

func newFakeAPI(t *testing.T, handlers map[string]string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{handlers: handlers}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		f.mu.Lock()
		f.calls = append(f.calls, recorded{path: r.URL.Path, body: body})
		f.mu.Unlock()

		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		resp, ok := f.handlers[method]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func TestGetMe(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{
		"getMe": `{"ok":true,"result":{"id":7,"is_bot":true,"first_name":"Ops","username":"ops_bot"}}`,
	})
	c := telegram.NewClient("123:abc", srv.URL)

	me, err := c.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ops_bot", me.Username)
	assert.Equal(t, "/bot123:abc/getMe", api.last().path)
}

func TestGetUpdates_EnviaOffsetYTimeout(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{
		"getUpdates": `{"ok":true,"result":[
			{"update_id":10,"message":{"message_id":1,"from":{"id":5,"first_name":"Ana"},"chat":{"id":5,"type":"private"},"text":"/start"}},
			{"update_id":11,"callback_query":{"id":"cb1","from":{"id":5,"first_name":"Ana"},"message":{"message_id":2,"chat":{"id":5,"type":"private"}},"data":"role_owner"}}
		]}`,
	})
	c := telegram.NewClient("t", srv.URL)

	updates, err := c.GetUpdates(context.Background(), 10, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "/start", updates[0].Message.Text)
	assert.Equal(t, int64(5), updates[0].Message.From.ID)
	require.NotNil(t, updates[1].CallbackQuery)
	assert.Equal(t, "role_owner", updates[1].CallbackQuery.Data)

	body := api.last().body
	assert.EqualValues(t, 10, body["offset"])
	assert.EqualValues(t, 30, body["timeout"])
}

func TestSendMessage_ConTeclado(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":3,"chat":{"id":9,"type":"private"}}}`,
	})
	c := telegram.NewClient("t", srv.URL)

	err := c.SendMessage(context.Background(), 9, "hola", telegram.ReplyKeyboardMarkup{
		Keyboard:       [][]telegram.KeyboardButton{{{Text: "Perfil"}}},
		ResizeKeyboard: true,
	})
	require.NoError(t, err)
	body := api.last().body
	assert.EqualValues(t, 9, body["chat_id"])
	assert.Equal(t, "hola", body["text"])
	markup, ok := body["reply_markup"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, markup["resize_keyboard"])
}

func TestAPIError_NoExponeToken(t *testing.T) {
	_, srv := newFakeAPI(t, map[string]string{
		"getMe": `{"ok":false,"error_code":401,"description":"Unauthorized"}`,
	})
	c := telegram.NewClient("secreto", srv.URL)

	_, err := c.GetMe(context.Background())
	require.Error(t, err)
	assert.True(t, telegram.IsUnauthorized(err))
	assert.NotContains(t, err.Error(), "secreto")
}

func TestCheckToken_UsaTokenIndicado(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{
		"getMe": `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"x","username":"otro_bot"}}`,
	})
	c := telegram.NewClient("principal", srv.URL)

	name, err := c.CheckToken(context.Background(), "999:zzz")
	require.NoError(t, err)
	assert.Equal(t, "otro_bot", name)
	assert.Equal(t, "/bot999:zzz/getMe", api.last().path)
}

func TestClient_SinToken(t *testing.T) {
	_, err := telegram.NewClient("", "http://127.0.0.1:1").GetMe(context.Background())
	assert.Error(t, err)
}

func TestNotifier(t *testing.T) {
	api, srv := newFakeAPI(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{}}`,
	})
	n := telegram.NewNotifier(telegram.NewClient("t", srv.URL))

	require.NoError(t, n.NotifyUser(context.Background(), 0, "ignorado"))
	api.mu.Lock()
	assert.Empty(t, api.calls)
	api.mu.Unlock()

	require.NoError(t, n.NotifyUser(context.Background(), 42, "Incidente HIGH"))
	assert.EqualValues(t, 42, api.last().body["chat_id"])
}
