// Package content defines the typed views over the schema-less documents
// the public site renders: default payloads per domain, ordered-collection
// helpers, and the project model. The store enforces no schema; each domain
// applies its expected shape and defaults here, in code.
package content

import (
	"fmt"
	"sort"
	"time"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// Collection names in the document store.
const (
	ColSections      = "sections"
	ColProjects      = "projects"
	ColCategories    = "projectCategories"
	ColSectors       = "sectors"
	ColSectorContent = "sectorContent"
	ColCareers       = "careers"
	ColEcoMatrix     = "ecoMatrix"
)

// Item is one entry of an ordered collection inside a document.
type Item = map[string]interface{}

// NewItemID returns a caller-visible id for a freshly created item when the
// caller did not supply one: "{prefix}-{currentTimeMillis}".
func NewItemID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// SortByOrder stably sorts items ascending by their numeric "order" field.
// Order values are not unique; ties keep insertion order, which is why the
// sort must be stable. Items without an order sort as zero.
func SortByOrder(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return OrderOf(items[i]) < OrderOf(items[j])
	})
}

// OrderOf reads the numeric "order" field, tolerating the numeric types the
// store can hand back.
func OrderOf(item Item) float64 {
	switch v := item["order"].(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Items extracts an ordered-collection field from a document. Elements that
// are not objects are skipped.
func Items(doc store.Document, field string) []Item {
	raw, _ := doc[field].([]interface{})
	out := make([]Item, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Item); ok {
			out = append(out, m)
		}
	}
	return out
}

// ItemsToValues converts items back to the []interface{} shape documents use.
func ItemsToValues(items []Item) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Str reads a string field, with empty string for absent or non-string.
func Str(doc store.Document, field string) string {
	s, _ := doc[field].(string)
	return s
}

// BoolOr reads a boolean field with a fallback for absent values. A stored
// non-bool also yields the fallback.
func BoolOr(doc store.Document, field string, fallback bool) bool {
	if v, ok := doc[field].(bool); ok {
		return v
	}
	return fallback
}
