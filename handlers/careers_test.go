package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

func newCareersRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	g := gin.New()
	NewCareersHandler(st).Register(g.Group("/api"), passGuard)
	return g, st
}

func TestCareersGetEmptyStoreReturnsDefaults(t *testing.T) {
	g, _ := newCareersRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/careers", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, false, out["hasData"])
	assert.NotEmpty(t, out["perks"])
	assert.NotEmpty(t, out["cta"])
}

func TestCareersGetSortsOrderedCollections(t *testing.T) {
	g, st := newCareersRouter(t)
	require.NoError(t, st.Set(context.Background(), "careers", "careersPage", store.Document{
		"perks": []interface{}{
			map[string]interface{}{"id": "b", "order": int64(2)},
			map[string]interface{}{"id": "a", "order": int64(1)},
		},
	}, false))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/careers", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Perks []map[string]interface{} `json:"perks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Perks, 2)
	assert.Equal(t, "a", out.Perks[0]["id"])
	assert.Equal(t, "b", out.Perks[1]["id"])
}

func TestCareersSeedOverwritesAndMarksData(t *testing.T) {
	g, st := newCareersRouter(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "careers", "careersPage", store.Document{"hero": map[string]interface{}{"title": "Old"}}, false))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("POST", "/api/careers", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(ctx, "careers", "careersPage")
	require.NoError(t, err)
	assert.Equal(t, true, doc["hasData"])
	hero := doc["hero"].(map[string]interface{})
	assert.Equal(t, "Grow with us", hero["title"])
}

func TestCareersUpdateMerges(t *testing.T) {
	g, st := newCareersRouter(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "careers", "careersPage", store.Document{"description": "keep", "hasData": false}, false))

	w := putJSON(t, g, "/api/careers", `{"hero":{"title":"Join the crew"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(ctx, "careers", "careersPage")
	require.NoError(t, err)
	assert.Equal(t, "keep", doc["description"])
	assert.Equal(t, true, doc["hasData"])
	hero := doc["hero"].(map[string]interface{})
	assert.Equal(t, "Join the crew", hero["title"])
}
