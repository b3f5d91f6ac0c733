package alerts

import (
	"context"
	"database/sql"
	"log"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Alerts() Alerts
	Messages() Messages
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db       *bun.DB
	users    Users
	alerts   Alerts
	messages Messages
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		alerts:   NewAlertsRepository(db),
		messages: NewMessagesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized", errors.CategoryInternal)
	}

	if m.alerts == nil {
		return errors.New("repository alerts should be initialized", errors.CategoryInternal)
	}

	if m.messages == nil {
		return errors.New("repository messages should be initialized", errors.CategoryInternal)
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Alerts() Alerts {
	return m.alerts
}

func (m mngr) Messages() Messages {
	return m.messages
}
