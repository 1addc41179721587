// AngelaMos | 2026
// request.go

package core

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var requestValidator = newRequestValidator()

// newRequestValidator names fields by their json tag so messages match
// what the client sent.
func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Decode reads a JSON body of at most 1 MiB into dst, writing a 400 when
// it is malformed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// DecodeValid is Decode followed by struct tag validation.
func DecodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !Decode(w, r, dst) {
		return false
	}
	if err := requestValidator.Struct(dst); err != nil {
		BadRequest(w, FormatValidationError(err))
		return false
	}
	return true
}

// ValidateVar checks a non-struct value such as a batch slice against tag.
func ValidateVar(w http.ResponseWriter, v any, tag string) bool {
	if err := requestValidator.Var(v, tag); err != nil {
		BadRequest(w, FormatValidationError(err))
		return false
	}
	return true
}

// PathID parses a positive integer URL parameter, writing a 400 when it is
// missing or malformed.
func PathID(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id < 1 {
		BadRequest(w, key+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// QueryInt parses a required integer query parameter, writing a 400 when it
// is missing or malformed.
func QueryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		BadRequest(w, key+" is required")
		return 0, false
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		BadRequest(w, key+" must be an integer")
		return 0, false
	}
	return v, true
}

// OptionalQueryInt64 returns nil when key is absent.
func OptionalQueryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
