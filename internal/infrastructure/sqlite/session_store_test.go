package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/botflow"
	"github.com/jhoicas/staffops-api/internal/infrastructure/sqlite"
)

func TestSessionStore_LoadVacio(t *testing.T) {
	st, err := sqlite.NewSessionStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	s, err := st.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, botflow.StepNone, s.Step)
	assert.Nil(t, s.LastUpdateID)
	assert.NotNil(t, s.Data)
}

func TestSessionStore_UpsertYReapertura(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "sessions.db")

	st, err := sqlite.NewSessionStore(path)
	require.NoError(t, err)

	s := botflow.NewSession()
	s.Role = botflow.RoleOwner
	s.Step = botflow.StepOwnerPassword
	s.Data["company_name"] = "Café Norte"
	s.MarkSeen(41)
	require.NoError(t, st.Save(ctx, 555, s))

	s.Step = botflow.StepOwnerTimezone
	s.MarkSeen(42)
	require.NoError(t, st.Save(ctx, 555, s))
	require.NoError(t, st.Close())

	// Los datos sobreviven al reinicio del proceso.
	st, err = sqlite.NewSessionStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	got, err := st.Load(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, botflow.RoleOwner, got.Role)
	assert.Equal(t, botflow.StepOwnerTimezone, got.Step)
	assert.Equal(t, "Café Norte", got.Data["company_name"])
	require.NotNil(t, got.LastUpdateID)
	assert.Equal(t, int64(42), *got.LastUpdateID)
	assert.True(t, got.AlreadySeen(42))
}
