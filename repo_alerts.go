package alerts

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Alerts is the alert store.
type Alerts interface {
	Create(ctx context.Context, record *Alert) (*Alert, error)
	GetByID(ctx context.Context, id int64) (*Alert, error)
	List(ctx context.Context) ([]*Alert, error)
	Update(ctx context.Context, record *Alert) (*Alert, error)
	Delete(ctx context.Context, id int64) error
}

type alertsRepo struct {
	db *bun.DB
}

var _ Alerts = (*alertsRepo)(nil)

func NewAlertsRepository(db *bun.DB) Alerts {
	return &alertsRepo{db: db}
}

func (r *alertsRepo) Create(ctx context.Context, record *Alert) (*Alert, error) {
	if _, err := r.db.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create alert")
	}
	return record, nil
}

func (r *alertsRepo) GetByID(ctx context.Context, id int64) (*Alert, error) {
	record := &Alert{}
	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "alert not found")
	}
	return record, nil
}

func (r *alertsRepo) List(ctx context.Context) ([]*Alert, error) {
	var records []*Alert
	if err := r.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list alerts")
	}
	return records, nil
}

// Update persists the full record; partial-update semantics live at the
// controller, which loads the row and applies only the provided fields.
func (r *alertsRepo) Update(ctx context.Context, record *Alert) (*Alert, error) {
	res, err := r.db.NewUpdate().Model(record).
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update alert")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, newNotFound("alert not found")
	}
	return record, nil
}

func (r *alertsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().Model((*Alert)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete alert")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return newNotFound("alert not found")
	}
	return nil
}
