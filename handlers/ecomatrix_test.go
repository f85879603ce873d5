package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

func newEcoMatrixRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	g := gin.New()
	NewEcoMatrixHandler(st).Register(g.Group("/api"), passGuard)
	return g, st
}

func TestEcoMatrixUnknownGroup(t *testing.T) {
	g, _ := newEcoMatrixRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/eco-matrix/bogus", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEcoMatrixGetDefaultsSorted(t *testing.T) {
	g, _ := newEcoMatrixRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/eco-matrix/dimensions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Items, 3)
	assert.Equal(t, "dim-water", out.Items[0]["id"])
}

func TestEcoMatrixCreateAssignsID(t *testing.T) {
	g, st := newEcoMatrixRouter(t)
	w := postJSON(t, g, "/api/eco-matrix/dimensions", `{"title":"Air","order":4}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	id, _ := out["id"].(string)
	assert.True(t, strings.HasPrefix(id, "dim-"), "generated id %q should carry the group prefix", id)

	doc, err := st.Get(context.Background(), "ecoMatrix", "dimensions")
	require.NoError(t, err)
	items, _ := doc["items"].([]interface{})
	assert.Len(t, items, 4)
}

func TestEcoMatrixPutReplacesCollection(t *testing.T) {
	g, st := newEcoMatrixRouter(t)
	w := putJSON(t, g, "/api/eco-matrix/nature", `[{"id":"n1","title":"Hedgerows","order":1}]`)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(context.Background(), "ecoMatrix", "nature")
	require.NoError(t, err)
	items, _ := doc["items"].([]interface{})
	require.Len(t, items, 1)
}

func TestEcoMatrixPutMergesItem(t *testing.T) {
	g, st := newEcoMatrixRouter(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "ecoMatrix", "menu", store.Document{"items": []interface{}{
		map[string]interface{}{"id": "m1", "label": "Old", "order": int64(1)},
	}}, false))

	w := putJSON(t, g, "/api/eco-matrix/menu", `{"id":"m1","label":"New"}`)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(ctx, "ecoMatrix", "menu")
	require.NoError(t, err)
	items, _ := doc["items"].([]interface{})
	item := items[0].(map[string]interface{})
	assert.Equal(t, "New", item["label"])
	assert.Equal(t, int64(1), item["order"])

	miss := putJSON(t, g, "/api/eco-matrix/menu", `{"id":"nope","label":"x"}`)
	assert.Equal(t, http.StatusNotFound, miss.Code)
}

func TestEcoMatrixDeleteItem(t *testing.T) {
	g, st := newEcoMatrixRouter(t)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "ecoMatrix", "menu", store.Document{"items": []interface{}{
		map[string]interface{}{"id": "m1"},
		map[string]interface{}{"id": "m2"},
	}}, false))

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/eco-matrix/menu?id=m1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(ctx, "ecoMatrix", "menu")
	require.NoError(t, err)
	items, _ := doc["items"].([]interface{})
	require.Len(t, items, 1)

	miss := httptest.NewRecorder()
	g.ServeHTTP(miss, httptest.NewRequest("DELETE", "/api/eco-matrix/menu?id=m1", nil))
	assert.Equal(t, http.StatusNotFound, miss.Code)
}

func TestEcoMatrixOverviewUpdate(t *testing.T) {
	g, st := newEcoMatrixRouter(t)
	w := putJSON(t, g, "/api/eco-matrix/overview", `{"title":"Scores"}`)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(context.Background(), "ecoMatrix", "overview")
	require.NoError(t, err)
	assert.Equal(t, "Scores", doc["title"])

	get := httptest.NewRecorder()
	g.ServeHTTP(get, httptest.NewRequest("GET", "/api/eco-matrix/overview", nil))
	require.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), "Scores")
}
