package content

import "github.com/sjmedialabs/vbrlandscap-sub001/internal/store"

// Project status values. Drafts stay out of the public listing but remain
// visible to admin queries.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// NormalizeProject decodes a caller-supplied project document into the shape
// the site expects: the slug is derived from the title when absent, status
// defaults to draft, and the ordered/collection fields always exist.
func NormalizeProject(doc store.Document) store.Document {
	out := make(store.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	if Str(out, "slug") == "" {
		out["slug"] = Slugify(Str(out, "title"))
	}
	status := Str(out, "status")
	if status != StatusDraft && status != StatusPublished {
		out["status"] = StatusDraft
	}
	for _, field := range []string{"categories", "features", "gallery", "relatedProjects"} {
		if _, ok := out[field].([]interface{}); !ok {
			out[field] = []interface{}{}
		}
	}
	if _, ok := out["order"]; !ok {
		out["order"] = int64(0)
	}
	return out
}

// FindProject locates a project by path parameter: slug match first, then id
// match. Returns the matched id and document.
func FindProject(projects map[string]store.Document, slugOrID string) (string, store.Document, bool) {
	for id, doc := range projects {
		if Str(doc, "slug") == slugOrID {
			return id, doc, true
		}
	}
	if doc, ok := projects[slugOrID]; ok {
		return slugOrID, doc, true
	}
	return "", nil, false
}

// PublishedOnly filters a decoded project list down to published entries.
func PublishedOnly(projects []Item) []Item {
	out := make([]Item, 0, len(projects))
	for _, p := range projects {
		if Str(p, "status") == StatusPublished {
			out = append(out, p)
		}
	}
	return out
}
