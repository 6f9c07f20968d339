// Response utilities shared by all endpoints: the generic error envelope,
// the resource-style not-found body, and the validation failure body.
//
// Three failure shapes exist on purpose:
//   - ErrorResponse{request_id, code, message} for generic errors
//     (bad JSON, auth, rate limiting, 5xx);
//   - {message, success:false} for a missing cliente — this exact shape is
//     part of the public contract;
//   - {message, errors:{field:[msgs]}} with status 422 when validation
//     rejects the input.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/marvera/go-clientes-backend/internal/http/middleware"
	"github.com/marvera/go-clientes-backend/internal/i18n"
	"github.com/marvera/go-clientes-backend/internal/services"
)

// ErrorResponse is the generic error envelope.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, used to match
//     server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable description, safe for display to users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"resource not found"`
}

// NotFoundResponse is the body returned when a cliente does not exist.
type NotFoundResponse struct {
	Message string `json:"message" example:"Cliente no encontrado"`
	Success bool   `json:"success" example:"false"`
}

// ValidationFailedResponse is the 422 body: a summary message plus
// field-keyed lists of localized rule messages.
type ValidationFailedResponse struct {
	Message string              `json:"message" example:"Los datos proporcionados no son válidos."`
	Errors  map[string][]string `json:"errors"`
}

// fail aborts the request with the generic envelope and logs server-side
// errors with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// notFound writes the resource-style 404 body with the localized message.
func notFound(c *gin.Context, tag language.Tag) {
	c.AbortWithStatusJSON(http.StatusNotFound, NotFoundResponse{
		Message: i18n.Message(tag, "cliente.not_found", ""),
		Success: false,
	})
}

// validationFailed renders a *services.ValidationError as a 422 with
// localized per-field messages. The operation never ran; this is a client
// error and is not logged as a system fault.
func validationFailed(c *gin.Context, tag language.Tag, ve *services.ValidationError) {
	errs := make(map[string][]string, len(ve.Violations))
	for _, v := range ve.Violations {
		msg := i18n.Message(tag, v.Field+"."+v.Code, v.Param)
		errs[v.Field] = append(errs[v.Field], msg)
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationFailedResponse{
		Message: i18n.Message(tag, "validation.failed", ""),
		Errors:  errs,
	})
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
