package state_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaldonado/obrix/internal/gateway"
	"github.com/rmaldonado/obrix/internal/state"
)

type testEntity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Notes string    `json:"notes"`
}

func newTestStore(t *testing.T, handler http.HandlerFunc) *state.Store[testEntity] {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw := gateway.New(srv.URL, 5*time.Second)

	return state.NewStore(gw, "widgets", 10, "name", "asc", func(e testEntity) uuid.UUID { return e.ID })
}

func TestStore_List(t *testing.T) {
	items := []testEntity{
		{ID: uuid.New(), Name: "uno"},
		{ID: uuid.New(), Name: "dos"},
		{ID: uuid.New(), Name: "tres"},
	}

	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name", r.URL.Query().Get("_sort"))
		assert.Equal(t, "asc", r.URL.Query().Get("_order"))
		assert.Equal(t, "3", r.URL.Query().Get("_limit"))

		w.Header().Set(gateway.TotalCountHeader, "7")
		json.NewEncoder(w).Encode(items)
	})

	page, err := st.List(context.Background(), 1, 3, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 7, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Empty(t, st.Err())
	assert.False(t, st.Loading())
}

func TestStore_List_DefaultLimit(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("_limit"))
		w.Write([]byte(`[]`))
	})

	_, err := st.List(context.Background(), 1, 0, nil)
	require.NoError(t, err)
}

func TestStore_List_MissingTotalFallsBackToPageLength(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]testEntity{{ID: uuid.New()}, {ID: uuid.New()}})
	})

	page, err := st.List(context.Background(), 1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestStore_List_ErrorKeepsCache(t *testing.T) {
	var fail bool

	items := []testEntity{{ID: uuid.New(), Name: "uno"}}

	st := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set(gateway.TotalCountHeader, "1")
		json.NewEncoder(w).Encode(items)
	})

	_, err := st.List(context.Background(), 1, 10, nil)
	require.NoError(t, err)

	fail = true

	_, err = st.List(context.Background(), 1, 10, nil)
	require.Error(t, err)
	assert.Equal(t, "error loading widgets", st.Err())
	assert.False(t, st.Loading())
	assert.Len(t, st.Items(), 1)
}

func TestStore_GetByID_Upserts(t *testing.T) {
	target := testEntity{ID: uuid.New(), Name: "antes", Notes: "n"}

	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/"+target.ID.String()) {
			json.NewEncoder(w).Encode(testEntity{ID: target.ID, Name: "después", Notes: "n"})
			return
		}

		w.Header().Set(gateway.TotalCountHeader, "1")
		json.NewEncoder(w).Encode([]testEntity{target})
	})

	_, err := st.List(context.Background(), 1, 10, nil)
	require.NoError(t, err)

	got, err := st.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, "después", got.Name)

	cached, ok := st.Find(target.ID)
	require.True(t, ok)
	assert.Equal(t, "después", cached.Name)
	assert.Len(t, st.Items(), 1)
}

func TestStore_Create_Appends(t *testing.T) {
	created := testEntity{ID: uuid.New(), Name: "nuevo"}

	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(created)
	})

	got, err := st.Create(context.Background(), map[string]string{"name": "nuevo"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, st.Items(), 1)

	_, _, totalItems, _ := st.Pagination()
	assert.Equal(t, 1, totalItems)
}

func TestStore_Update_MergePreservesOmittedFields(t *testing.T) {
	target := testEntity{ID: uuid.New(), Name: "antes", Notes: "se conserva"}

	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			// Echo the changed field only, the way a partial PATCH answers.
			fmt.Fprintf(w, `{"id":%q,"name":"después"}`, target.ID)
		default:
			w.Header().Set(gateway.TotalCountHeader, "1")
			json.NewEncoder(w).Encode([]testEntity{target})
		}
	})

	_, err := st.List(context.Background(), 1, 10, nil)
	require.NoError(t, err)

	got, err := st.Update(context.Background(), target.ID, map[string]string{"name": "después"})
	require.NoError(t, err)
	assert.Equal(t, "después", got.Name)
	assert.Equal(t, "se conserva", got.Notes)

	cached, ok := st.Find(target.ID)
	require.True(t, ok)
	assert.Equal(t, "se conserva", cached.Notes)
}

func TestStore_Remove(t *testing.T) {
	target := testEntity{ID: uuid.New(), Name: "uno"}
	other := testEntity{ID: uuid.New(), Name: "dos"}

	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.Write([]byte(`{}`))
		default:
			w.Header().Set(gateway.TotalCountHeader, "2")
			json.NewEncoder(w).Encode([]testEntity{target, other})
		}
	})

	_, err := st.List(context.Background(), 1, 10, nil)
	require.NoError(t, err)

	require.NoError(t, st.Remove(context.Background(), target.ID))

	_, ok := st.Find(target.ID)
	assert.False(t, ok)
	assert.Len(t, st.Items(), 1)

	_, _, totalItems, _ := st.Pagination()
	assert.Equal(t, 1, totalItems)
}

func TestTimes_ListByEmployee_DateRange(t *testing.T) {
	employeeID := uuid.New()

	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	st := state.New(gateway.New(srv.URL, 5*time.Second))

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	_, err := st.Times.ListByEmployee(context.Background(), employeeID, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, employeeID.String(), gotQuery.Get("employeeId"))
	assert.Equal(t, "2026-03-01", gotQuery.Get("date_gte"))
	assert.Equal(t, "2026-03-31", gotQuery.Get("date_lte"))

	_, err = st.Times.ListByEmployee(context.Background(), employeeID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, employeeID.String(), gotQuery.Get("employeeId"))
	assert.False(t, gotQuery.Has("date_gte"))
	assert.False(t, gotQuery.Has("date_lte"))
}
