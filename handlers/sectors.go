package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/content"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// SectorsHandler serves the market sector pages: the sector list, the
// per-sector free-form content (created lazily with defaults on first read,
// reset to defaults on delete), and the sector-scoped intake forms.
type SectorsHandler struct {
	store  store.Store
	intake *IntakeHandler
}

func NewSectorsHandler(st store.Store, in *IntakeHandler) *SectorsHandler {
	return &SectorsHandler{store: st, intake: in}
}

// Register routes under /api/sectors. The intake forms live on the same
// path level as the slug routes, so POST dispatches by path parameter.
func (h *SectorsHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	s := rg.Group("/sectors")
	s.GET("", h.List)
	s.POST("", guard, h.CreateOrSeed)
	s.GET("/:slug", h.GetContent)
	s.POST("/:slug", h.PostSlug)
	s.PUT("/:slug", guard, h.UpdateContent)
	s.DELETE("/:slug", guard, h.ResetContent)
}

// reservedSlugs are path parameters claimed by the intake forms; no sector
// may use them.
var reservedSlugs = map[string]bool{"contact": true, "newsletter": true}

// List returns the sector list, defaults when nothing is stored, sorted for
// display.
func (h *SectorsHandler) List(c *gin.Context) {
	sectors, err := h.sectors(c)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]content.Item, 0, len(sectors))
	for id, doc := range sectors {
		item := content.Item{"id": id}
		for k, v := range doc {
			item[k] = v
		}
		out = append(out, item)
	}
	content.SortByOrder(out)
	c.JSON(http.StatusOK, gin.H{"sectors": out})
}

// CreateOrSeed either seeds the default sector list ({"action":"seed"}) or
// creates one sector from the supplied fields.
func (h *SectorsHandler) CreateOrSeed(c *gin.Context) {
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if content.Str(doc, "action") == "seed" {
		stored, err := h.store.List(ctx, content.ColSectors)
		if err != nil {
			respondError(c, err)
			return
		}
		seeded := []string{}
		for id, def := range content.DefaultSectors() {
			if _, exists := stored[id]; exists {
				continue
			}
			if err := h.store.Set(ctx, content.ColSectors, id, def, false); err != nil {
				respondError(c, err)
				return
			}
			seeded = append(seeded, id)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "seeded": seeded})
		return
	}

	name := content.Str(doc, "name")
	if name == "" {
		respondError(c, validationError("name is required"))
		return
	}
	slug := content.Str(doc, "slug")
	if slug == "" {
		slug = content.Slugify(name)
	}
	if reservedSlugs[slug] {
		respondError(c, validationError("this slug is reserved"))
		return
	}
	id := content.Str(doc, "id")
	if id == "" {
		id = slug
	}
	sector := store.Document{
		"name":   name,
		"slug":   slug,
		"order":  doc["order"],
		"active": content.BoolOr(doc, "active", true),
	}
	if sector["order"] == nil {
		sector["order"] = int64(0)
	}
	if err := h.store.Set(ctx, content.ColSectors, id, sector, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id, "slug": slug})
}

// GetContent returns the free-form content of one sector, writing the
// default content on first read so later merge updates have a base.
func (h *SectorsHandler) GetContent(c *gin.Context) {
	id, sector, err := h.findSector(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	doc, err := h.store.Get(ctx, content.ColSectorContent, id)
	if err == store.ErrNotFound {
		doc = content.DefaultSectorContent(content.Str(sector, "name"))
		if err := h.store.Set(ctx, content.ColSectorContent, id, doc, false); err != nil {
			respondError(c, err)
			return
		}
	} else if err != nil {
		respondError(c, err)
		return
	}
	for _, field := range []string{"processSteps", "faq"} {
		items := content.Items(doc, field)
		content.SortByOrder(items)
		doc[field] = content.ItemsToValues(items)
	}
	c.JSON(http.StatusOK, doc)
}

// PostSlug dispatches the sector-scoped intake forms, which share the path
// level with the slug routes.
func (h *SectorsHandler) PostSlug(c *gin.Context) {
	switch c.Param("slug") {
	case "contact":
		h.intake.Contact(c)
	case "newsletter":
		h.intake.Newsletter(c)
	default:
		respondError(c, notFoundError("sector not found"))
	}
}

// UpdateContent merge-writes the supplied fields into the sector's content.
func (h *SectorsHandler) UpdateContent(c *gin.Context) {
	id, _, err := h.findSector(c)
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	doc["hasData"] = true
	if err := h.store.Set(c.Request.Context(), content.ColSectorContent, id, doc, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetContent puts the sector's content back to its defaults. A soft reset:
// the sector itself and its content document both survive.
func (h *SectorsHandler) ResetContent(c *gin.Context) {
	id, sector, err := h.findSector(c)
	if err != nil {
		respondError(c, err)
		return
	}
	def := content.DefaultSectorContent(content.Str(sector, "name"))
	if err := h.store.Set(c.Request.Context(), content.ColSectorContent, id, def, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// sectors returns the stored sector list, falling back to the defaults when
// the collection is empty.
func (h *SectorsHandler) sectors(c *gin.Context) (map[string]store.Document, error) {
	stored, err := h.store.List(c.Request.Context(), content.ColSectors)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return content.DefaultSectors(), nil
	}
	return stored, nil
}

// findSector resolves the slug path parameter to a known sector, by slug
// first and id second.
func (h *SectorsHandler) findSector(c *gin.Context) (string, store.Document, error) {
	slug := c.Param("slug")
	sectors, err := h.sectors(c)
	if err != nil {
		return "", nil, err
	}
	for id, doc := range sectors {
		if content.Str(doc, "slug") == slug {
			return id, doc, nil
		}
	}
	if doc, ok := sectors[slug]; ok {
		return slug, doc, nil
	}
	return "", nil, notFoundError("sector not found")
}
