package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaldonado/obrix/internal/auth"
	"github.com/rmaldonado/obrix/internal/user"
)

const testSecret = "test-secret"

func testUser() *user.User {
	return &user.User{
		ID:      uuid.New(),
		Usuario: "admin",
		Nivel:   user.LevelAdmin,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	u := testUser()

	token, err := auth.GenerateToken(testSecret, u, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Usuario)
	assert.Equal(t, user.LevelAdmin, claims.Nivel)
	assert.Equal(t, u.ID.String(), claims.Subject)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, testUser(), time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := auth.GenerateToken(testSecret, testUser(), -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken(testSecret, "not-a-token")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "admin", claims.Usuario)

		w.WriteHeader(http.StatusOK)
	})

	handler := auth.Middleware(testSecret)(next)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := auth.GenerateToken(testSecret, testUser(), time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)
		req.Header.Set("Authorization", "Token abc")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/proyectos", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
