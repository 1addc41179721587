// AngelaMos | 2026
// request_test.go

package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type leaseInput struct {
	PropertyID int64  `json:"property_id" validate:"required"`
	Notes      string `json:"notes"       validate:"max=5"`
}

func TestDecodeValid(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
		msg  string
	}{
		{"valid", `{"property_id": 42}`, true, ""},
		{"malformed", `{"property_id":`, false, "invalid request body"},
		{"missing required", `{"notes": "hi"}`, false, "property_id is required"},
		{"too long", `{"property_id": 1, "notes": "longer"}`, false, "notes must be at most 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var in leaseInput
			ok := DecodeValid(rec, r, &in)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, int64(42), in.PropertyID)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"notes":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var in leaseInput
	assert.False(t, Decode(rec, r, &in))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateVarBatch(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.False(t, ValidateVar(rec, []leaseInput{}, "required,min=1,dive"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	assert.True(t, ValidateVar(rec, []leaseInput{{PropertyID: 1}}, "required,min=1,dive"))
}
