// AngelaMos | 2026
// company_test.go

package company

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var companyCols = []string{
	"id", "name", "address", "city", "state", "zip_code", "phone", "email",
	"created_date", "updated_date", "active",
}

func newTestRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	r := chi.NewRouter()
	NewHandler(NewRepository(sqlx.NewDb(mockDB, "pgx"))).
		RegisterRoutes(r, func(next http.Handler) http.Handler { return next })
	return r, mock
}

func TestGetCompany(t *testing.T) {
	r, mock := newTestRouter(t)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow(
			3, "Acme Property Group", "1 Main St", "Springfield", "IL", "62701",
			"5551234567", "office@acme.test", created, nil, true,
		))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Acme Property Group"`)
	assert.Contains(t, rec.Body.String(), `"zip_code":"62701"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCompanyNotFound(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE id = $1")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(companyCols))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/8", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/companies/x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
