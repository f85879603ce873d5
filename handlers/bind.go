package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
)

// bindDocument decodes the request body as a JSON object, preserving the
// integer/float distinction the store round-trips. A non-object or
// unparseable body is a validation error.
func bindDocument(c *gin.Context) (store.Document, error) {
	doc, err := store.DecodeJSON(c.Request.Body)
	if err != nil {
		return nil, validationError("request body must be a JSON object")
	}
	return doc, nil
}

// bindValue decodes a body that may be either a JSON object or an array;
// collection update routes accept both.
func bindValue(c *gin.Context) (interface{}, error) {
	v, err := store.DecodeJSONValue(c.Request.Body)
	if err != nil {
		return nil, validationError("invalid request body")
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return v, nil
	default:
		return nil, validationError("request body must be a JSON object or array")
	}
}
