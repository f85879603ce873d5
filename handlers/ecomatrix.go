package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/content"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// ecoMatrixGroups are the sub-resources of the eco matrix. menu, dimensions,
// and nature hold ordered item collections; overview is a singleton.
var ecoMatrixGroups = map[string]string{
	"menu":       "menu",
	"dimensions": "dim",
	"nature":     "nature",
	"overview":   "",
}

// EcoMatrixHandler serves the eco matrix: the scoring dimensions, the page
// menu, the nature accordion, and the overview copy. All four groups follow
// the same document pattern and share one handler.
type EcoMatrixHandler struct {
	store store.Store
}

func NewEcoMatrixHandler(st store.Store) *EcoMatrixHandler {
	return &EcoMatrixHandler{store: st}
}

// Register routes under /api/eco-matrix.
func (h *EcoMatrixHandler) Register(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	e := rg.Group("/eco-matrix")
	e.GET("/:group", h.Get)
	e.POST("/:group", guard, h.Create)
	e.PUT("/:group", guard, h.Update)
	e.DELETE("/:group", guard, h.Delete)
}

// group validates the path parameter and reports whether the group is an
// item collection.
func (h *EcoMatrixHandler) group(c *gin.Context) (name, prefix string, ok bool) {
	name = c.Param("group")
	prefix, ok = ecoMatrixGroups[name]
	if !ok {
		respondError(c, notFoundError("unknown eco-matrix group"))
		return "", "", false
	}
	return name, prefix, true
}

// load fetches the group's document, defaulting when it was never written.
func (h *EcoMatrixHandler) load(c *gin.Context, group string) (store.Document, error) {
	doc, err := h.store.Get(c.Request.Context(), content.ColEcoMatrix, group)
	if err == store.ErrNotFound {
		return content.DefaultEcoMatrix(group), nil
	}
	return doc, err
}

// Get returns the group document; item collections come back sorted.
func (h *EcoMatrixHandler) Get(c *gin.Context) {
	group, prefix, ok := h.group(c)
	if !ok {
		return
	}
	doc, err := h.load(c, group)
	if err != nil {
		respondError(c, err)
		return
	}
	if prefix != "" {
		items := content.Items(doc, "items")
		content.SortByOrder(items)
		doc["items"] = content.ItemsToValues(items)
	}
	c.JSON(http.StatusOK, doc)
}

// Create appends one item to an item collection, assigning a time-based id
// when the caller did not supply one. On the overview it is a settings
// update instead.
func (h *EcoMatrixHandler) Create(c *gin.Context) {
	group, prefix, ok := h.group(c)
	if !ok {
		return
	}
	body, err := bindDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if prefix == "" {
		if err := h.store.Set(ctx, content.ColEcoMatrix, group, body, true); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	doc, err := h.load(c, group)
	if err != nil {
		respondError(c, err)
		return
	}
	id := content.Str(body, "id")
	if id == "" {
		id = content.NewItemID(prefix)
		body["id"] = id
	}
	items := append(content.Items(doc, "items"), body)
	doc["items"] = content.ItemsToValues(items)
	if err := h.store.Set(ctx, content.ColEcoMatrix, group, doc, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

// Update either replaces an item collection wholesale (array body) or
// merge-updates a single item located by id (object body). The overview
// takes a plain merge update.
func (h *EcoMatrixHandler) Update(c *gin.Context) {
	group, prefix, ok := h.group(c)
	if !ok {
		return
	}
	body, err := bindValue(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()

	if prefix == "" {
		obj, ok := body.(map[string]interface{})
		if !ok {
			respondError(c, validationError("request body must be a JSON object"))
			return
		}
		if err := h.store.Set(ctx, content.ColEcoMatrix, group, obj, true); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	doc, err := h.load(c, group)
	if err != nil {
		respondError(c, err)
		return
	}
	switch v := body.(type) {
	case []interface{}:
		doc["items"] = v
	case map[string]interface{}:
		id := content.Str(v, "id")
		if id == "" {
			respondError(c, validationError("item id is required"))
			return
		}
		items := content.Items(doc, "items")
		found := false
		for i, item := range items {
			if content.Str(item, "id") != id {
				continue
			}
			merged := content.Item{}
			for k, val := range item {
				merged[k] = val
			}
			for k, val := range v {
				merged[k] = val
			}
			items[i] = merged
			found = true
			break
		}
		if !found {
			respondError(c, notFoundError("item not found"))
			return
		}
		doc["items"] = content.ItemsToValues(items)
	}
	if err := h.store.Set(ctx, content.ColEcoMatrix, group, doc, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes one item by id from an item collection. The overview has
// no items, so any id misses.
func (h *EcoMatrixHandler) Delete(c *gin.Context) {
	group, _, ok := h.group(c)
	if !ok {
		return
	}
	id := c.Query("id")
	if id == "" {
		if body, err := bindDocument(c); err == nil {
			id = content.Str(body, "id")
		}
	}
	if id == "" {
		respondError(c, validationError("item id is required"))
		return
	}
	doc, err := h.load(c, group)
	if err != nil {
		respondError(c, err)
		return
	}
	items := content.Items(doc, "items")
	kept := make([]content.Item, 0, len(items))
	found := false
	for _, item := range items {
		if content.Str(item, "id") == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		respondError(c, notFoundError("item not found"))
		return
	}
	doc["items"] = content.ItemsToValues(kept)
	if err := h.store.Set(c.Request.Context(), content.ColEcoMatrix, group, doc, false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
