package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/content"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// SectionsHandler serves the generic page-content blocks: every section of
// every public page is a schema-less document keyed by section id.
type SectionsHandler struct {
	store store.Store
}

func NewSectionsHandler(st store.Store) *SectionsHandler {
	return &SectionsHandler{store: st}
}

// Register routes under /api/sections. guard protects the mutating routes;
// reads stay public so the site can render.
func (h *SectionsHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	s := rg.Group("/sections")
	s.GET("", h.List)
	s.GET("/:id", h.Get)
	s.POST("", guard, h.Seed)
	s.PUT("/:id", guard, h.Update)
}

// List returns every section keyed by id. Sections that have never been
// written come back as their defaults so the site always has something to
// render.
func (h *SectionsHandler) List(c *gin.Context) {
	stored, err := h.store.List(c.Request.Context(), content.ColSections)
	if err != nil {
		respondError(c, err)
		return
	}
	out := content.DefaultSections()
	for id, doc := range stored {
		out[id] = doc
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one section, falling back to its default. A section with
// neither stored data nor a default is a 404.
func (h *SectionsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.store.Get(c.Request.Context(), content.ColSections, id)
	if err == nil {
		c.JSON(http.StatusOK, doc)
		return
	}
	if err != store.ErrNotFound {
		respondError(c, err)
		return
	}
	if def, ok := content.DefaultSections()[id]; ok {
		c.JSON(http.StatusOK, def)
		return
	}
	respondError(c, notFoundError("section not found"))
}

// Update merge-writes the supplied fields into the section. Unspecified
// fields are preserved; a supplied nested object replaces the stored one
// wholesale.
func (h *SectionsHandler) Update(c *gin.Context) {
	id := c.Param("id")
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.Set(c.Request.Context(), content.ColSections, id, doc, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Seed writes the default payload for every section that does not exist yet.
// Idempotent: sections with stored data are left untouched.
func (h *SectionsHandler) Seed(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.store.List(ctx, content.ColSections)
	if err != nil {
		respondError(c, err)
		return
	}
	seeded := []string{}
	for id, def := range content.DefaultSections() {
		if _, exists := stored[id]; exists {
			continue
		}
		if err := h.store.Set(ctx, content.ColSections, id, def, false); err != nil {
			respondError(c, err)
			return
		}
		seeded = append(seeded, id)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "seeded": seeded})
}
