package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"mentionmates/database"
	"mentionmates/matching"
	"mentionmates/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const defaultLimit = 10

// Relay delivers chat messages to connected creators.
type Relay interface {
	Relay(ctx context.Context, in models.NewMessage) (models.Message, error)
	ConnectedClients() int
}

type Handler struct {
	store   *database.Store
	matcher *matching.Generator
	relay   Relay
}

func New(store *database.Store, matcher *matching.Generator, relay Relay) *Handler {
	registerJSONFieldNames()
	return &Handler{store: store, matcher: matcher, relay: relay}
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var jsonNamesOnce sync.Once

// registerJSONFieldNames makes validation errors report the JSON name of a
// field ("audienceSizeRange") instead of the Go one.
func registerJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSON decodes the request body into dst and writes a 400 response when
// that fails. It reports whether the handler should continue.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	respondValidation(c, bindingErrors(err))
	return false
}

func bindingErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []fieldError{{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}}
	}
	if errors.Is(err, io.EOF) {
		return []fieldError{{Field: "body", Message: "request body is required"}}
	}
	return []fieldError{{Field: "body", Message: "request body must be valid JSON"}}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "must be at least " + fe.Param()
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

func respondValidation(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request",
		"errors":  errs,
	})
}

func respondNotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"message": what + " not found"})
}

func respondInternal(c *gin.Context, msg string, err error) {
	slog.Error("❌ "+msg, "method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

// queryLimit reads ?limit=N. Missing or non-numeric values fall back to the
// default; negative values become zero.
func queryLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultLimit
	}
	return max(n, 0)
}
