// AngelaMos | 2026
// user_test.go

package user

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amontalvo1020/rentalspro/internal/config"
	"github.com/amontalvo1020/rentalspro/internal/core"
)

type fakeRepo struct {
	users   map[int64]*User
	updates int
	created []*User
}

func newFakeRepo(users ...User) *fakeRepo {
	f := &fakeRepo{users: map[int64]*User{}}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	u.ID = int64(len(f.users) + 1)
	f.users[u.ID] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeRepo) CreateBatch(context.Context, []User) error { return nil }

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	f.updates++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) DeactivateByLease(context.Context, int64) (int64, error) { return 0, nil }
func (f *fakeRepo) ListByLease(context.Context, int64) ([]User, error)      { return nil, nil }
func (f *fakeRepo) Search(context.Context, SearchParams) ([]User, error)    { return nil, nil }

var testSecurity = config.SecurityConfig{HashIterations: 10, SaltSize: 8}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testSecurity)

	u, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username:  "  jdoe ",
		Password:  "correct horse",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "Jane@Example.com",
		Phone:     "(555) 010-2000",
		Role:      RoleTenant,
	})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", u.Username)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "5550102000", u.Phone)
	assert.True(t, u.Active)
	assert.True(t, u.HasCredentials())

	ok, err := core.Verify(u.PasswordHash, u.PasswordSalt, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeRepo(), testSecurity)

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Username: "x", Password: "longenough", Role: Role(42),
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateUserWritesOnlyOnChange(t *testing.T) {
	repo := newFakeRepo(User{ID: 1, Username: "jdoe", FirstName: "Jane", Phone: "5550102000", Active: true})
	svc := NewService(repo, testSecurity)
	ctx := context.Background()

	same := "Jane"
	samePhone := "555-010-2000"
	_, err := svc.UpdateUser(ctx, 1, UpdateUserRequest{FirstName: &same, Phone: &samePhone})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.updates)

	changed := "Janet"
	u, err := svc.UpdateUser(ctx, 1, UpdateUserRequest{FirstName: &changed})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, "Janet", u.FirstName)

	_, err = svc.UpdateUser(ctx, 99, UpdateUserRequest{FirstName: &changed})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNewTenantDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	u := NewTenant(TenantRequest{FirstName: "Ann", LastName: "Lee", Phone: "555.123"}, 7, now)
	require.NotNil(t, u.LeaseID)
	assert.Equal(t, int64(7), *u.LeaseID)
	assert.Equal(t, RoleTenant, u.Role)
	assert.True(t, u.Active)
	assert.Equal(t, now, u.CreatedDate)
	assert.Equal(t, "555123", u.Phone)
	assert.False(t, u.HasCredentials())

	inactive := false
	u = NewTenant(TenantRequest{Active: &inactive, Role: RoleGuest}, 7, now)
	assert.False(t, u.Active)
	assert.Equal(t, RoleGuest, u.Role)
}

func TestRole(t *testing.T) {
	assert.True(t, RolePropertyManager.CanManage())
	assert.False(t, RoleTenant.CanManage())
	assert.False(t, Role(0).Valid())
	assert.Equal(t, "Unknown", Role(0).String())
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewRepository(sqlx.NewDb(mockDB, "pgx")), mock
}

func TestRepositoryGetByUsernameNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(username) = LOWER($1) AND active = TRUE")).
		WithArgs("JDoe").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "JDoe")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{Username: "jdoe", Role: RoleTenant})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepositoryCreateBatchSetsIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31).AddRow(32))

	users := []User{
		{Username: "ann", Role: RoleTenant, Active: true},
		{Username: "bob", Role: RoleTenant, Active: true},
	}
	require.NoError(t, repo.CreateBatch(context.Background(), users))

	assert.Equal(t, int64(31), users[0].ID)
	assert.Equal(t, int64(32), users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateBatchIDCountMismatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

	users := []User{{Username: "ann", Role: RoleTenant}, {Username: "bob", Role: RoleTenant}}
	err := repo.CreateBatch(context.Background(), users)
	assert.ErrorIs(t, err, core.ErrStorage)
}

func TestRepositoryDeactivateByLease(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeactivateByLease(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
