package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/storage"
	"github.com/jhoicas/supermercado-admin/pkg/config"
)

// claveTest clave hex de 32 bytes para los escenarios cifrados.
const claveTest = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newStore(t *testing.T, key string) (*storage.Store, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := storage.New(config.SessionConfig{Dir: dir, Key: key})
	require.NoError(t, err)
	return st, dir
}

// ──────────────────────────────────────────────────────────────────────────────
// Token
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_TokenIdaYVuelta(t *testing.T) {
	st, _ := newStore(t, "")

	// Ausente: cadena vacía, nunca error.
	tok, err := st.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "", tok)

	require.NoError(t, st.SaveToken("tok1"))
	tok, err = st.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok)

	require.NoError(t, st.ClearToken())
	tok, err = st.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "", tok)

	// Limpiar dos veces no es error.
	require.NoError(t, st.ClearToken())
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_UsuarioIdaYVuelta(t *testing.T) {
	st, _ := newStore(t, "")

	u, err := st.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, u, "usuario ausente es nil, nunca error")

	original := &entity.User{ID: 7, Name: "Ana", Email: "a@mhj.com", Role: entity.RoleAdmin}
	require.NoError(t, st.SaveUser(original))

	u, err = st.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, original, u)

	require.NoError(t, st.ClearUser())
	u, err = st.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestStore_UsuarioCorruptoSeTrataComoAusente(t *testing.T) {
	st, dir := newStore(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_user.json"), []byte("{no es json"), 0o600))

	u, err := st.LoadUser()
	require.NoError(t, err)
	assert.Nil(t, u, "un registro ilegible se trata como sin sesión")
}

func TestStore_ClearEliminaTokenYUsuario(t *testing.T) {
	st, _ := newStore(t, "")
	require.NoError(t, st.SaveToken("tok1"))
	require.NoError(t, st.SaveUser(&entity.User{ID: 1, Name: "Ana", Email: "a@mhj.com"}))

	require.NoError(t, st.Clear())

	tok, _ := st.LoadToken()
	assert.Equal(t, "", tok)
	u, _ := st.LoadUser()
	assert.Nil(t, u)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cifrado en reposo
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_CifradoIdaYVuelta(t *testing.T) {
	st, dir := newStore(t, claveTest)
	require.NoError(t, st.SaveToken("tok-secreto"))

	// En disco no queda el token en claro.
	raw, err := os.ReadFile(filepath.Join(dir, "admin_token"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok-secreto")

	tok, err := st.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-secreto", tok)
}

func TestStore_ClaveDistintaNoDescifra(t *testing.T) {
	st, dir := newStore(t, claveTest)
	require.NoError(t, st.SaveToken("tok-secreto"))

	otra, err := storage.New(config.SessionConfig{
		Dir: dir,
		Key: "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
	})
	require.NoError(t, err)

	tok, err := otra.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "", tok, "con otra clave el valor es ilegible y se trata como ausente")
}

func TestStore_ClaveInvalidaFallaAlConstruir(t *testing.T) {
	_, err := storage.New(config.SessionConfig{Dir: t.TempDir(), Key: "zz"})
	require.Error(t, err)

	_, err = storage.New(config.SessionConfig{Dir: t.TempDir(), Key: "abcd"})
	require.Error(t, err, "una clave hex válida pero corta también falla")
}
