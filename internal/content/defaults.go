package content

import "github.com/sjmedialabs/vbrlandscap-sub001/internal/store"

// Default payloads per content domain. Public pages must always render
// something, so GET on an empty store returns these instead of an error.
// Seeding writes them into the store so editors have a starting point.

// DefaultSections returns the full default section set for the public site.
func DefaultSections() map[string]store.Document {
	return map[string]store.Document{
		"branding": {
			"siteName": "VBR Landscaping",
			"tagline":  "Outdoor spaces, built to last",
			"logoUrl":  "/images/logo.svg",
		},
		"navbar": {
			"links": []interface{}{
				Item{"label": "Home", "href": "/", "order": int64(1)},
				Item{"label": "Services", "href": "/services", "order": int64(2)},
				Item{"label": "Projects", "href": "/projects", "order": int64(3)},
				Item{"label": "Sectors", "href": "/sectors", "order": int64(4)},
				Item{"label": "Careers", "href": "/careers", "order": int64(5)},
				Item{"label": "Contact", "href": "/contact", "order": int64(6)},
			},
		},
		"hero": {
			"title":    "Design. Build. Maintain.",
			"subtitle": "Full-service landscaping for homes and businesses",
			"imageUrl": "/images/hero.jpg",
			"cta":      map[string]interface{}{"label": "Get a free quote", "href": "/contact"},
		},
		"about": {
			"title": "About us",
			"body":  "Family-run landscaping studio with two decades of gardens, terraces, and green roofs behind us.",
			"stats": []interface{}{
				Item{"label": "Years in business", "value": int64(20), "order": int64(1)},
				Item{"label": "Projects delivered", "value": int64(450), "order": int64(2)},
			},
		},
		"services": {
			"title": "What we do",
			"items": []interface{}{
				Item{"id": "svc-design", "title": "Garden design", "order": int64(1)},
				Item{"id": "svc-build", "title": "Hard landscaping", "order": int64(2)},
				Item{"id": "svc-maintain", "title": "Grounds maintenance", "order": int64(3)},
			},
		},
		"testimonials": {
			"title": "What clients say",
			"items": []interface{}{},
		},
		"faq": {
			"title": "Frequently asked questions",
			"items": []interface{}{},
		},
		"footer": {
			"copyright": "VBR Landscaping",
			"links":     []interface{}{},
		},
		"contactSettings": {
			"formEnabled":    true,
			"successMessage": "Thanks for getting in touch. We will reply within two working days.",
			"recipient":      "office@vbrlandscaping.example",
		},
		"newsletterSettings": {
			"formEnabled":    true,
			"successMessage": "You are on the list. Seasonal tips are on their way.",
		},
		"projectsPage": {
			"title":    "Our projects",
			"subtitle": "A selection of recent work",
		},
	}
}

// DefaultCareers is the careers page singleton: hero, perks, culture
// highlights, work environment, and the closing call to action.
func DefaultCareers() store.Document {
	return store.Document{
		"hasData": false,
		"hero": map[string]interface{}{
			"title":    "Grow with us",
			"subtitle": "We hire gardeners, builders, and arborists year round",
		},
		"perks": []interface{}{
			Item{"id": "perk-outdoors", "title": "Work outdoors", "order": int64(1)},
			Item{"id": "perk-training", "title": "Paid certifications", "order": int64(2)},
			Item{"id": "perk-gear", "title": "Tools and gear provided", "order": int64(3)},
		},
		"culture": []interface{}{
			Item{"id": "culture-crew", "title": "Small, steady crews", "order": int64(1)},
			Item{"id": "culture-craft", "title": "Craft over speed", "order": int64(2)},
		},
		"environment": map[string]interface{}{
			"title": "A typical week",
			"body":  "Four days on site, one in the yard. Winters are for planning and pruning.",
		},
		"cta": map[string]interface{}{
			"title":  "Ready to apply?",
			"label":  "Send us your CV",
			"href":   "mailto:jobs@vbrlandscaping.example",
		},
	}
}

// DefaultSectors is the sector list shown on the sectors landing page.
func DefaultSectors() map[string]store.Document {
	return map[string]store.Document{
		"residential": {"name": "Residential", "slug": "residential", "order": int64(1), "active": true},
		"commercial":  {"name": "Commercial", "slug": "commercial", "order": int64(2), "active": true},
		"public":      {"name": "Public spaces", "slug": "public", "order": int64(3), "active": true},
	}
}

// DefaultSectorContent is the lazily created free-form content for one
// sector. Deleting sector content resets to this rather than removing it.
func DefaultSectorContent(name string) store.Document {
	return store.Document{
		"hasData":     false,
		"hero":        map[string]interface{}{"title": name, "subtitle": "", "imageUrl": ""},
		"description": "",
		"gallery":     []interface{}{},
		"processSteps": []interface{}{
			Item{"id": "step-consult", "title": "Consultation", "order": int64(1)},
			Item{"id": "step-design", "title": "Design", "order": int64(2)},
			Item{"id": "step-build", "title": "Build", "order": int64(3)},
		},
		"faq": []interface{}{},
	}
}

// DefaultEcoMatrix returns the default document for one eco-matrix group:
// menu, dimensions, nature (accordion), or overview.
func DefaultEcoMatrix(group string) store.Document {
	switch group {
	case "menu":
		return store.Document{"items": []interface{}{
			Item{"id": "menu-overview", "label": "Overview", "target": "overview", "order": int64(1)},
			Item{"id": "menu-dimensions", "label": "Dimensions", "target": "dimensions", "order": int64(2)},
			Item{"id": "menu-nature", "label": "Nature", "target": "nature", "order": int64(3)},
		}}
	case "dimensions":
		return store.Document{"items": []interface{}{
			Item{"id": "dim-water", "title": "Water", "score": int64(0), "order": int64(1)},
			Item{"id": "dim-soil", "title": "Soil", "score": int64(0), "order": int64(2)},
			Item{"id": "dim-biodiversity", "title": "Biodiversity", "score": int64(0), "order": int64(3)},
		}}
	case "nature":
		return store.Document{"items": []interface{}{
			Item{"id": "nature-native", "title": "Native planting", "body": "", "order": int64(1)},
		}}
	case "overview":
		return store.Document{
			"title": "Our eco matrix",
			"body":  "How we score every project on its environmental footprint.",
		}
	default:
		return store.Document{}
	}
}

// DefaultProjectsPageData backs the projects listing when nothing is stored.
func DefaultProjectsPageData() store.Document {
	return store.Document{
		"title":    "Our projects",
		"subtitle": "A selection of recent work",
	}
}

// FallbackProject is the projection a GET by unknown slug returns so
// editors and previews never hard-fail.
func FallbackProject(slugOrID string) store.Document {
	return store.Document{
		"slug":             slugOrID,
		"title":            "Untitled project",
		"status":           StatusDraft,
		"heroImage":        "",
		"featuredImage":    "",
		"shortDescription": "",
		"longDescription":  "",
		"categories":       []interface{}{},
		"features":         []interface{}{},
		"gallery":          []interface{}{},
		"relatedProjects":  []interface{}{},
		"order":            int64(0),
	}
}
