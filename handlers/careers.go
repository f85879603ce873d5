package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/content"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// careersDocID is the singleton document holding the whole careers page.
const careersDocID = "careersPage"

// CareersHandler serves the careers page singleton: hero, perks, culture
// highlights, work environment, and the closing call to action.
type CareersHandler struct {
	store store.Store
}

func NewCareersHandler(st store.Store) *CareersHandler {
	return &CareersHandler{store: st}
}

// Register routes under /api/careers.
func (h *CareersHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	cr := rg.Group("/careers")
	cr.GET("", h.Get)
	cr.POST("", guard, h.Seed)
	cr.PUT("", guard, h.Update)
}

// Get returns the careers page data, defaults when nothing is stored. The
// ordered collections come back sorted for display.
func (h *CareersHandler) Get(c *gin.Context) {
	doc, err := h.store.Get(c.Request.Context(), content.ColCareers, careersDocID)
	if err == store.ErrNotFound {
		doc = content.DefaultCareers()
	} else if err != nil {
		respondError(c, err)
		return
	}
	for _, field := range []string{"perks", "culture"} {
		items := content.Items(doc, field)
		content.SortByOrder(items)
		doc[field] = content.ItemsToValues(items)
	}
	c.JSON(http.StatusOK, doc)
}

// Seed writes the default careers page. The domain tracks hasData, so
// seeding overwrites an already-seeded page and flips the flag on.
func (h *CareersHandler) Seed(c *gin.Context) {
	doc := content.DefaultCareers()
	doc["hasData"] = true
	if err := h.store.Set(c.Request.Context(), content.ColCareers, careersDocID, doc, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Update merge-writes the supplied fields into the careers page and marks it
// as carrying real data.
func (h *CareersHandler) Update(c *gin.Context) {
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	doc["hasData"] = true
	if err := h.store.Set(c.Request.Context(), content.ColCareers, careersDocID, doc, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
