package httpapi

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	detailNotAuthenticated   = "Not authenticated"
	detailInvalidCredentials = "Could not validate credentials"
	detailBadLogin           = "Invalid email or password"
	detailEmailTaken         = "Email already registered"
	detailUsernameTaken      = "Username already registered"
	detailItemNotFound       = "Item not found"
	detailInternal           = "Internal Server Error"
)

type errorResponse struct {
	Detail string       `json:"detail"`
	Errors []fieldError `json:"errors,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps service errors to HTTP responses and aborts the chain.
func writeError(c *gin.Context, l logging.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Detail: validationDetail(err)})
	case errors.Is(err, common.ErrDuplicateEmail):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Detail: detailEmailTaken})
	case errors.Is(err, common.ErrDuplicateUsername):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Detail: detailUsernameTaken})
	case errors.Is(err, common.ErrMissingCredentials):
		unauthorized(c, detailNotAuthenticated)
	case errors.Is(err, common.ErrInvalidCredentials):
		unauthorized(c, detailInvalidCredentials)
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Detail: "Not Found"})
	default:
		l.Error(c.Request.Context(), "request failed",
			"request_id", requestIDFromContext(c), "route", c.FullPath(), "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Detail: detailInternal})
	}
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Detail: detail})
}

func validationDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// writeBindError answers a request whose body or path failed to bind.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Message: describeTag(fe)})
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Detail: "Validation error", Errors: fields})
		return
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Detail: "Invalid request body"})
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

var registerFieldNamesOnce sync.Once

// registerJSONFieldNames makes validation errors report JSON field names.
func registerJSONFieldNames() {
	registerFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}
