// AngelaMos | 2026
// handler_test.go

package occupancy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amontalvo1020/rentalspro/internal/status"
)

func passThrough(next http.Handler) http.Handler { return next }

func deny(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
}

func newTestRouter(m *memStore, manager func(http.Handler) http.Handler) *chi.Mux {
	e, _ := newTestEngine(m, time.Second)
	r := chi.NewRouter()
	NewHandler(e).RegisterRoutes(r, passThrough, manager)
	return r
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func TestPatchPropertyStatus(t *testing.T) {
	m := newMemStore()
	seedRentedProperty(m)
	r := newTestRouter(m, passThrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/properties/42/status?statusID=2", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body envelope[CascadeResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(42), body.Data.ID)
	assert.Equal(t, "Vacant", body.Data.Status)
	assert.True(t, body.Data.Changed)
	require.NotNil(t, body.Data.EndedLeaseID)
	assert.Equal(t, int64(7), *body.Data.EndedLeaseID)
	assert.Equal(t, int64(2), body.Data.DeactivatedTenants)
}

func TestPatchPropertyStatusRejectsBadInput(t *testing.T) {
	m := newMemStore()
	seedRentedProperty(m)
	r := newTestRouter(m, passThrough)

	for _, target := range []string{
		"/properties/42/status",
		"/properties/42/status?statusID=abc",
		"/properties/42/status?statusID=9",
		"/properties/abc/status?statusID=2",
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
	assert.Equal(t, status.Rented, m.state.properties[42].StatusID)
}

func TestPatchUnknownPropertyIsNotFound(t *testing.T) {
	r := newTestRouter(newMemStore(), passThrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/properties/404/status?statusID=2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusRoutesUseManagerGate(t *testing.T) {
	m := newMemStore()
	seedCommercial(m)
	r := newTestRouter(m, deny)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/units/5/status?statusID=2", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, status.Rented, m.state.units[5].StatusID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/leases/11",
		strings.NewReader(`{"rent_amount":"900"}`)))
	assert.Equal(t, http.StatusOK, rec.Code, "lease writes only need authentication")
}

func TestPatchUnitPaymentStatus(t *testing.T) {
	m := newMemStore()
	seedCommercial(m)
	r := newTestRouter(m, passThrough)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/units/5/payment-status?statusID=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body envelope[PaymentStatusResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Paid", body.Data.PaymentStatus)
	assert.Equal(t, status.Paid, m.state.units[5].PaymentStatusID)
}

func TestPostLeaseEndpoint(t *testing.T) {
	m := newMemStore()
	seedRentedProperty(m)
	r := newTestRouter(m, passThrough)

	payload := `{
		"property_id": 42,
		"start_date": "2026-05-01T00:00:00Z",
		"end_date": "2027-04-30T00:00:00Z",
		"rent_amount": "1350.00",
		"tenants": [{"first_name": "Ann", "last_name": "Lee"}]
	}`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/leases", strings.NewReader(payload)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body envelope[PostLeaseResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Data.SupersededLeaseID)
	assert.Equal(t, int64(7), *body.Data.SupersededLeaseID)
	assert.True(t, body.Data.Lease.Active)
	require.Len(t, body.Data.Lease.Tenants, 1)
	assert.Equal(t, "Ann", body.Data.Lease.Tenants[0].FirstName)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/leases", strings.NewReader(`{"rent_amount":"1"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
