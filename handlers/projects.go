package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/content"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/middleware"
)

// ProjectsHandler serves the project portfolio: the public listing, the
// per-project page addressed by slug or id, the projects page copy, and the
// category lookup table.
type ProjectsHandler struct {
	store    store.Store
	verifier middleware.SessionVerifier
}

func NewProjectsHandler(st store.Store, verifier middleware.SessionVerifier) *ProjectsHandler {
	return &ProjectsHandler{store: st, verifier: verifier}
}

// Register routes under /api/projects.
func (h *ProjectsHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	p := rg.Group("/projects")
	p.GET("", h.List)
	p.POST("", guard, h.Create)
	p.PUT("", guard, h.UpdateSettings)
	p.GET("/:slug", h.Get)
	p.PUT("/:slug", guard, h.Update)
	p.DELETE("/:slug", guard, h.Delete)
}

// List returns the project list together with the listing page copy and the
// category table. Drafts are excluded unless the caller holds an admin
// session.
func (h *ProjectsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.store.List(ctx, content.ColProjects)
	if err != nil {
		respondError(c, err)
		return
	}
	projects := make([]content.Item, 0, len(stored))
	for id, doc := range stored {
		p := content.NormalizeProject(doc)
		p["id"] = id
		projects = append(projects, p)
	}
	admin := h.verifier != nil && h.verifier.Verify(ctx, c.Request).Authenticated
	if !admin {
		projects = content.PublishedOnly(projects)
	}
	content.SortByOrder(projects)

	pageData, err := h.store.Get(ctx, content.ColSections, "projectsPage")
	if err == store.ErrNotFound {
		pageData = content.DefaultProjectsPageData()
	} else if err != nil {
		respondError(c, err)
		return
	}

	categories, err := h.listCategories(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":   projects,
		"pageData":   pageData,
		"categories": categories,
	})
}

// Create adds a project. The slug is derived from the title when not
// supplied and must not collide with an existing project.
func (h *ProjectsHandler) Create(c *gin.Context) {
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if content.Str(doc, "title") == "" {
		respondError(c, validationError("title is required"))
		return
	}
	ctx := c.Request.Context()
	project := content.NormalizeProject(doc)
	id := content.Str(project, "id")
	if id == "" {
		id = content.NewItemID("project")
	}
	delete(project, "id")

	existing, err := h.store.List(ctx, content.ColProjects)
	if err != nil {
		respondError(c, err)
		return
	}
	slug := content.Str(project, "slug")
	for otherID, other := range existing {
		if otherID != id && content.Str(other, "slug") == slug {
			respondError(c, validationError("a project with this slug already exists"))
			return
		}
	}
	if err := h.store.Set(ctx, content.ColProjects, id, project, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id, "slug": slug})
}

// UpdateSettings updates the listing page copy and/or replaces the category
// table. The body carries "pageData" (merged) or "categories" (replaced
// wholesale), or both.
func (h *ProjectsHandler) UpdateSettings(c *gin.Context) {
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	pageData, hasPageData := doc["pageData"].(map[string]interface{})
	rawCategories, hasCategories := doc["categories"].([]interface{})
	if !hasPageData && !hasCategories {
		respondError(c, validationError("body must contain pageData or categories"))
		return
	}
	if hasPageData {
		if err := h.store.Set(ctx, content.ColSections, "projectsPage", pageData, true); err != nil {
			respondError(c, err)
			return
		}
	}
	if hasCategories {
		if err := h.replaceCategories(c, rawCategories); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Get returns one project by slug or id. A miss answers a fallback default
// projection instead of a 404 so editor previews never hard-fail.
func (h *ProjectsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.store.List(ctx, content.ColProjects)
	if err != nil {
		respondError(c, err)
		return
	}
	slugOrID := c.Param("slug")
	id, doc, ok := content.FindProject(stored, slugOrID)
	if !ok {
		c.JSON(http.StatusOK, content.FallbackProject(slugOrID))
		return
	}
	project := content.NormalizeProject(doc)
	project["id"] = id
	project["related"] = relatedProjects(stored, project)
	c.JSON(http.StatusOK, project)
}

// Update merge-writes the supplied fields into the project addressed by slug
// or id. Unknown projects are a 404, unlike GET.
func (h *ProjectsHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.store.List(ctx, content.ColProjects)
	if err != nil {
		respondError(c, err)
		return
	}
	id, current, ok := content.FindProject(stored, c.Param("slug"))
	if !ok {
		respondError(c, notFoundError("project not found"))
		return
	}
	doc, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	delete(doc, "id")
	// a slug change must not collide with another project
	if slug := content.Str(doc, "slug"); slug != "" && slug != content.Str(current, "slug") {
		for otherID, other := range stored {
			if otherID != id && content.Str(other, "slug") == slug {
				respondError(c, validationError("a project with this slug already exists"))
				return
			}
		}
	}
	if err := h.store.Set(ctx, content.ColProjects, id, doc, true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// Delete removes the project addressed by slug or id.
func (h *ProjectsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.store.List(ctx, content.ColProjects)
	if err != nil {
		respondError(c, err)
		return
	}
	id, _, ok := content.FindProject(stored, c.Param("slug"))
	if !ok {
		respondError(c, notFoundError("project not found"))
		return
	}
	if err := h.store.Delete(ctx, content.ColProjects, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProjectsHandler) listCategories(c *gin.Context) ([]content.Item, error) {
	stored, err := h.store.List(c.Request.Context(), content.ColCategories)
	if err != nil {
		return nil, err
	}
	out := make([]content.Item, 0, len(stored))
	for id, doc := range stored {
		cat := content.Item{"id": id}
		for k, v := range doc {
			cat[k] = v
		}
		out = append(out, cat)
	}
	content.SortByOrder(out)
	return out, nil
}

// replaceCategories swaps the category table for the supplied one. Entries
// without an id get one derived from their slug or name.
func (h *ProjectsHandler) replaceCategories(c *gin.Context, raw []interface{}) error {
	ctx := c.Request.Context()
	existing, err := h.store.List(ctx, content.ColCategories)
	if err != nil {
		return err
	}
	keep := map[string]bool{}
	for _, v := range raw {
		cat, ok := v.(map[string]interface{})
		if !ok {
			return validationError("categories must be objects")
		}
		id := content.Str(cat, "id")
		if id == "" {
			if slug := content.Str(cat, "slug"); slug != "" {
				id = slug
			} else if name := content.Str(cat, "name"); name != "" {
				id = content.Slugify(name)
			} else {
				id = content.NewItemID("category")
			}
		}
		if content.Str(cat, "slug") == "" {
			cat["slug"] = content.Slugify(content.Str(cat, "name"))
		}
		delete(cat, "id")
		if err := h.store.Set(ctx, content.ColCategories, id, cat, false); err != nil {
			return err
		}
		keep[id] = true
	}
	for id := range existing {
		if !keep[id] {
			if err := h.store.Delete(ctx, content.ColCategories, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// relatedProjects resolves a project's relatedProjects id list to minimal
// projections of the projects that still exist.
func relatedProjects(stored map[string]store.Document, project store.Document) []content.Item {
	related := []content.Item{}
	ids, _ := project["relatedProjects"].([]interface{})
	for _, v := range ids {
		rid, ok := v.(string)
		if !ok {
			continue
		}
		doc, ok := stored[rid]
		if !ok {
			continue
		}
		related = append(related, content.Item{
			"id":            rid,
			"slug":          content.Str(doc, "slug"),
			"title":         content.Str(doc, "title"),
			"featuredImage": content.Str(doc, "featuredImage"),
		})
	}
	return related
}
