package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/intake"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

func newSectorsRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	g := gin.New()
	in := NewIntakeHandler(st, intake.NewLimiter(5, 15*time.Minute))
	NewSectorsHandler(st, in).Register(g.Group("/api"), passGuard)
	return g, st
}

func TestSectorsListDefaultsSorted(t *testing.T) {
	g, _ := newSectorsRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/sectors", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Sectors []map[string]interface{} `json:"sectors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Sectors, 3)
	assert.Equal(t, "residential", out.Sectors[0]["slug"])
	assert.Equal(t, "commercial", out.Sectors[1]["slug"])
	assert.Equal(t, "public", out.Sectors[2]["slug"])
}

func TestSectorContentUnknownSector(t *testing.T) {
	g, _ := newSectorsRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/sectors/maritime", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSectorContentCreatedLazily(t *testing.T) {
	g, st := newSectorsRouter(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/api/sectors/residential", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, false, out["hasData"])

	// the defaults were persisted on first read
	doc, err := st.Get(context.Background(), "sectorContent", "residential")
	require.NoError(t, err)
	hero := doc["hero"].(map[string]interface{})
	assert.Equal(t, "Residential", hero["title"])
}

func TestSectorContentUpdateAndReset(t *testing.T) {
	g, st := newSectorsRouter(t)
	ctx := context.Background()

	w := putJSON(t, g, "/api/sectors/residential", `{"description":"Gardens for homes"}`)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := st.Get(ctx, "sectorContent", "residential")
	require.NoError(t, err)
	assert.Equal(t, "Gardens for homes", doc["description"])
	assert.Equal(t, true, doc["hasData"])

	// delete resets to defaults instead of removing
	del := httptest.NewRecorder()
	g.ServeHTTP(del, httptest.NewRequest("DELETE", "/api/sectors/residential", nil))
	require.Equal(t, http.StatusOK, del.Code)

	doc, err = st.Get(ctx, "sectorContent", "residential")
	require.NoError(t, err)
	assert.Equal(t, false, doc["hasData"])
	assert.Equal(t, "", doc["description"])
}

func TestSectorCreateAndSeed(t *testing.T) {
	g, st := newSectorsRouter(t)
	ctx := context.Background()

	w := postJSON(t, g, "/api/sectors", `{"name":"Green Roofs","order":4}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "green-roofs", out["slug"])

	seed := postJSON(t, g, "/api/sectors", `{"action":"seed"}`)
	require.Equal(t, http.StatusOK, seed.Code)

	sectors, err := st.List(ctx, "sectors")
	require.NoError(t, err)
	assert.Len(t, sectors, 4)
}

func TestSectorCreateRejectsReservedSlug(t *testing.T) {
	g, _ := newSectorsRouter(t)
	w := postJSON(t, g, "/api/sectors", `{"name":"Contact"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSectorContactFormDispatch(t *testing.T) {
	g, _ := newSectorsRouter(t)
	w := postJSON(t, g, "/api/sectors/contact", `{"name":"Ann","email":"ann@example.com","message":"Quote please","sector":"residential"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestSectorNewsletterDispatch(t *testing.T) {
	g, _ := newSectorsRouter(t)
	w := postJSON(t, g, "/api/sectors/newsletter", `{"email":"ann@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	missing := postJSON(t, g, "/api/sectors/newsletter", `{}`)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Contains(t, missing.Body.String(), "Email is required.")
}

func TestSectorPostUnknownSlug(t *testing.T) {
	g, _ := newSectorsRouter(t)
	w := postJSON(t, g, "/api/sectors/maritime", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
