package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaldonado/obrix/internal/gateway"
)

func TestClient_List(t *testing.T) {
	projectID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gastosProyecto", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("_page"))
		assert.Equal(t, "20", q.Get("_limit"))
		assert.Equal(t, "date", q.Get("_sort"))
		assert.Equal(t, "desc", q.Get("_order"))
		assert.Equal(t, projectID.String(), q.Get("projectId"))

		w.Header().Set(gateway.TotalCountHeader, "42")
		w.Write([]byte(`[{"concept":"Materiales"}]`))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)

	filters := url.Values{}
	filters.Set("projectId", projectID.String())

	raw, total, err := c.List(context.Background(), "gastosProyecto", gateway.ListQuery{
		Page:    2,
		Limit:   20,
		Sort:    "date",
		Order:   "desc",
		Filters: filters,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.JSONEq(t, `[{"concept":"Materiales"}]`, string(raw))
}

func TestClient_List_MissingTotalCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)

	_, total, err := c.List(context.Background(), "proyectos", gateway.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, -1, total)
}

func TestClient_Get_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)

	_, err := c.Get(context.Background(), "proyectos", uuid.New())
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)

	_, err := c.Post(context.Background(), "clientes", map[string]string{"firstName": "Ana"})
	require.Error(t, err)

	var statusErr *gateway.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Body)
}

func TestClient_SetToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)
	c.SetToken("abc123")

	_, _, err := c.List(context.Background(), "personal", gateway.ListQuery{})
	require.NoError(t, err)
}

func TestClient_Login_InstallsToken(t *testing.T) {
	var sawToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "admin", creds["usuario"])
			assert.Equal(t, "s3cret", creds["clave"])

			json.NewEncoder(w).Encode(gateway.Session{Token: "tok-1", Usuario: "admin", Nivel: "admin"})

			return
		}

		sawToken = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)

	sess, err := c.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "admin", sess.Usuario)

	_, _, err = c.List(context.Background(), "proyectos", gateway.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", sawToken)
}

func TestClient_Delete(t *testing.T) {
	id := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tiempos/"+id.String(), r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := gateway.New(srv.URL, 5*time.Second)

	require.NoError(t, c.Delete(context.Background(), "tiempos", id))
}
