package api

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var internalError = errorResponse{Error: "INTERNAL_ERROR", Message: "internal server error"}

// statusFor maps an error kind to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotFoundOrUnauthorized):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCapacity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError aborts the request with the JSON error body for err. Storage
// and unknown failures are logged in full and answered with a generic 500.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	de, ok := domain.AsError(err)
	if status == http.StatusInternalServerError || !ok {
		userID, _ := UserIDFrom(c)
		logger.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"user_id", userID,
			"request_id", c.GetString(contextRequestID),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, internalError)
		return
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: de.Code, Message: de.Message})
}

var bindingOnce sync.Once

func configureBinding() {
	bindingOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

// bindJSON decodes the request body into dst. Shape problems become
// INVALID_REQUEST_BODY and failed binding rules become MISSING_FIELDS
// naming the JSON fields.
func bindJSON(c *gin.Context, dst any) error {
	configureBinding()
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return domain.Validation("MISSING_FIELDS", "Missing required fields: "+strings.Join(fields, ", "))
	}
	return domain.Validation("INVALID_REQUEST_BODY", "Request body is not valid JSON for this endpoint")
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
