package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/content"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/intake"
	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/logger"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/metrics"
)

const (
	contactRequiredMsg  = "Name, email, and message are required."
	invalidEmailMsg     = "Please enter a valid email address."
	contactDisabledMsg  = "The contact form is currently disabled. Please try again later."
	newsletterDisabled  = "The newsletter signup is currently disabled. Please try again later."
	tooManyRequestsMsg  = "Too many requests. Please try again later."
	contactFallbackMsg  = "Thanks for getting in touch. We will reply within two working days."
	newsletterFallback  = "You are on the list. Seasonal tips are on their way."
	newsletterNeedEmail = "Email is required."
)

// IntakeHandler receives public form submissions. Nothing is delivered
// anywhere; accepted submissions are validated, sanitized, rate-limited
// (contact only), logged, and acknowledged with a configurable message.
type IntakeHandler struct {
	store   store.Store
	limiter *intake.Limiter
}

func NewIntakeHandler(st store.Store, limiter *intake.Limiter) *IntakeHandler {
	return &IntakeHandler{store: st, limiter: limiter}
}

// Register routes the main contact form. The sector form routes reuse the
// same handlers via SectorsHandler.
func (h *IntakeHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/contact/submit", h.Contact)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Sector  string `json:"sector"`
}

// Contact handles a contact form submission: required fields, then email
// format, then the feature flag, then the per-IP rate limit.
func (h *IntakeHandler) Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IntakeSubmissions.WithLabelValues("contact", "invalid").Inc()
		respondError(c, validationError(contactRequiredMsg))
		return
	}
	req.Name = intake.Sanitize(req.Name)
	req.Message = intake.Sanitize(req.Message)
	req.Phone = intake.Sanitize(req.Phone)
	req.Sector = intake.Sanitize(req.Sector)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		metrics.IntakeSubmissions.WithLabelValues("contact", "invalid").Inc()
		respondError(c, validationError(contactRequiredMsg))
		return
	}
	if !intake.ValidEmail(req.Email) {
		metrics.IntakeSubmissions.WithLabelValues("contact", "invalid").Inc()
		respondError(c, validationError(invalidEmailMsg))
		return
	}

	settings, err := h.settings(c, "contactSettings")
	if err != nil {
		respondError(c, err)
		return
	}
	if !content.BoolOr(settings, "formEnabled", true) {
		metrics.IntakeSubmissions.WithLabelValues("contact", "disabled").Inc()
		respondError(c, featureDisabledError(contactDisabledMsg))
		return
	}

	ip := intake.ClientIP(c.GetHeader("X-Forwarded-For"))
	if !h.limiter.Allow(ip) {
		metrics.IntakeSubmissions.WithLabelValues("contact", "rate_limited").Inc()
		respondError(c, rateLimitedError(tooManyRequestsMsg))
		return
	}

	logger.Infof("contact submission from %s <%s> (sector=%q phone=%q): %s",
		req.Name, req.Email, req.Sector, req.Phone, req.Message)
	metrics.IntakeSubmissions.WithLabelValues("contact", "accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": messageOr(settings, contactFallbackMsg),
	})
}

type newsletterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Newsletter handles a newsletter signup. No rate limit here; the limiter
// covers the contact form only.
func (h *IntakeHandler) Newsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		metrics.IntakeSubmissions.WithLabelValues("newsletter", "invalid").Inc()
		respondError(c, validationError(newsletterNeedEmail))
		return
	}
	if !intake.ValidEmail(req.Email) {
		metrics.IntakeSubmissions.WithLabelValues("newsletter", "invalid").Inc()
		respondError(c, validationError(invalidEmailMsg))
		return
	}

	settings, err := h.settings(c, "newsletterSettings")
	if err != nil {
		respondError(c, err)
		return
	}
	if !content.BoolOr(settings, "formEnabled", true) {
		metrics.IntakeSubmissions.WithLabelValues("newsletter", "disabled").Inc()
		respondError(c, featureDisabledError(newsletterDisabled))
		return
	}

	logger.Infof("newsletter signup %s <%s>", intake.Sanitize(req.Name), req.Email)
	metrics.IntakeSubmissions.WithLabelValues("newsletter", "accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": messageOr(settings, newsletterFallback),
	})
}

// settings loads one of the form settings documents, defaulting when it was
// never written.
func (h *IntakeHandler) settings(c *gin.Context, id string) (store.Document, error) {
	doc, err := h.store.Get(c.Request.Context(), content.ColSections, id)
	if err == store.ErrNotFound {
		if def, ok := content.DefaultSections()[id]; ok {
			return def, nil
		}
		return store.Document{}, nil
	}
	return doc, err
}

func messageOr(settings store.Document, fallback string) string {
	if msg := content.Str(settings, "successMessage"); msg != "" {
		return msg
	}
	return fallback
}
