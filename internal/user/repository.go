// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	CreateBatch(ctx context.Context, users []User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	DeactivateByLease(ctx context.Context, leaseID int64) (int64, error)
	ListByLease(ctx context.Context, leaseID int64) ([]User, error)
	Search(ctx context.Context, params SearchParams) ([]User, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, company_id, lease_id, username, password_hash, password_salt,
		       first_name, last_name, email, phone, role, birthdate,
		       created_date, updated_date, active, is_owner`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			company_id, lease_id, username, password_hash, password_salt,
			first_name, last_name, email, phone, role, birthdate,
			created_date, active, is_owner
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING id`

	err := r.db.GetContext(ctx, &user.ID, query,
		user.CompanyID,
		user.LeaseID,
		user.Username,
		user.PasswordHash,
		user.PasswordSalt,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Role,
		user.Birthdate,
		user.CreatedDate,
		user.Active,
		user.IsOwner,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return core.StorageErr("create user", err)
	}

	return nil
}

// CreateBatch inserts all users with a single multi-row INSERT and sets
// each user's generated ID.
func (r *repository) CreateBatch(ctx context.Context, users []User) error {
	if len(users) == 0 {
		return nil
	}

	query := `
		INSERT INTO users (
			company_id, lease_id, username, password_hash, password_salt,
			first_name, last_name, email, phone, role, birthdate,
			created_date, active, is_owner
		) VALUES (
			:company_id, :lease_id, :username, :password_hash, :password_salt,
			:first_name, :last_name, :email, :phone, :role, :birthdate,
			:created_date, :active, :is_owner
		)
		RETURNING id`

	ids, err := core.NamedInsertIDs(ctx, r.db, query, users)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create users: %w", core.ErrDuplicateKey)
		}
		return core.StorageErr("create users", err)
	}
	if len(ids) != len(users) {
		return core.StorageErr("create users",
			fmt.Errorf("inserted %d rows, got %d ids", len(users), len(ids)))
	}
	for i := range users {
		users[i].ID = ids[i]
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get user", err)
	}

	return &user, nil
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(username) = LOWER($1) AND active = TRUE`

	var user User
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by username: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, core.StorageErr("get user by username", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET username = $2, first_name = $3, last_name = $4, email = $5,
		    phone = $6, active = $7, updated_date = NOW()
		WHERE id = $1
		RETURNING updated_date`

	err := r.db.GetContext(ctx, &user.UpdatedDate, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return core.StorageErr("update user", err)
	}

	return nil
}

// DeactivateByLease marks every user linked to leaseID inactive and returns
// the number of rows written.
func (r *repository) DeactivateByLease(
	ctx context.Context,
	leaseID int64,
) (int64, error) {
	query := `
		UPDATE users
		SET active = FALSE, updated_date = NOW()
		WHERE lease_id = $1 AND active = TRUE`

	result, err := r.db.ExecContext(ctx, query, leaseID)
	if err != nil {
		return 0, core.StorageErr("deactivate lease users", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, core.StorageErr("deactivate lease users", err)
	}

	return rows, nil
}

func (r *repository) ListByLease(
	ctx context.Context,
	leaseID int64,
) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE lease_id = $1 AND active = TRUE
		ORDER BY id`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, leaseID); err != nil {
		return nil, core.StorageErr("list lease users", err)
	}

	return users, nil
}

func (r *repository) Search(
	ctx context.Context,
	params SearchParams,
) ([]User, error) {
	conditions := []string{"active = TRUE"}
	var args []any
	argIdx := 1

	if params.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("id = $%d", argIdx))
		args = append(args, *params.UserID)
		argIdx++
	}

	if params.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *params.Role)
		argIdx++
	}

	if params.CompanyID != nil {
		conditions = append(conditions, fmt.Sprintf("company_id = $%d", argIdx))
		args = append(args, *params.CompanyID)
		argIdx++
	}

	if params.LeaseID != nil {
		conditions = append(conditions, fmt.Sprintf("lease_id = $%d", argIdx))
		args = append(args, *params.LeaseID)
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY id`,
		userColumns, strings.Join(conditions, " AND "))

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, core.StorageErr("search users", err)
	}

	return users, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
