package alerts

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the principal store.
type Users interface {
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, record *User) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) Create(ctx context.Context, record *User) (*User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if _, err := tx.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrap(err, errors.CategoryConflict, "username or email already in use").
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}
	return record, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return record, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return record, nil
}

func (r *users) List(ctx context.Context) ([]*User, error) {
	var records []*User
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users")
	}
	return records, nil
}

func (r *users) Update(ctx context.Context, record *User) (*User, error) {
	res, err := r.db.NewUpdate().Model(record).
		WherePK().
		Set("updated_at = current_timestamp").
		OmitZero().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrap(err, errors.CategoryConflict, "username or email already in use").
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update user")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, newNotFound("user not found")
	}
	return record, nil
}

func (r *users) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return newNotFound("user not found")
	}
	return nil
}

func newNotFound(msg string) *errors.Error {
	return errors.New(msg, errors.CategoryNotFound).WithCode(errors.CodeNotFound)
}

func wrapNotFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, errors.CategoryNotFound, msg).WithCode(errors.CodeNotFound)
	}
	return errors.Wrap(err, errors.CategoryInternal, "query failed")
}

// isUniqueViolation matches SQLite unique constraint failures. The drivers
// behind sqliteshim do not expose a typed error for this.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE")
}
