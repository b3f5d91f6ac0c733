package alerts

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Messages is the message store, covering read receipts and reactions too:
// both are single-row satellites of a message and share its lifecycle.
type Messages interface {
	Create(ctx context.Context, record *Message) (*Message, error)
	GetByID(ctx context.Context, alertID, id int64) (*Message, error)
	ListByAlert(ctx context.Context, alertID int64) ([]*Message, error)
	Delete(ctx context.Context, record *Message) error

	MarkRead(ctx context.Context, messageID, userID int64) (*MessageRead, error)
	AddReaction(ctx context.Context, messageID, userID int64, emoji string) (*MessageReaction, error)
	RemoveReaction(ctx context.Context, messageID, userID int64, emoji string) error
}

type messages struct {
	db *bun.DB
}

var _ Messages = (*messages)(nil)

func NewMessagesRepository(db *bun.DB) Messages {
	return &messages{db: db}
}

func (r *messages) Create(ctx context.Context, record *Message) (*Message, error) {
	if _, err := r.db.NewInsert().Model(record).Returning("*").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create message")
	}
	return record, nil
}

func (r *messages) GetByID(ctx context.Context, alertID, id int64) (*Message, error) {
	record := &Message{}
	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.alert_id = ?", alertID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "message not found")
	}
	return record, nil
}

func (r *messages) ListByAlert(ctx context.Context, alertID int64) ([]*Message, error) {
	var records []*Message
	err := r.db.NewSelect().Model(&records).
		Relation("Sender").
		Relation("Reactions").
		Relation("ReadReceipts").
		Where("?TableAlias.alert_id = ?", alertID).
		Order("msg.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list messages")
	}
	return records, nil
}

func (r *messages) Delete(ctx context.Context, record *Message) error {
	if _, err := r.db.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete message")
	}
	return nil
}

// MarkRead records a read receipt. Marking a message read twice is a no-op
// that returns the existing receipt.
func (r *messages) MarkRead(ctx context.Context, messageID, userID int64) (*MessageRead, error) {
	existing := &MessageRead{}
	err := r.db.NewSelect().Model(existing).
		Where("?TableAlias.message_id = ?", messageID).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up read receipt")
	}

	receipt := &MessageRead{MessageID: messageID, UserID: userID}
	if _, err := r.db.NewInsert().Model(receipt).Returning("*").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create read receipt")
	}
	return receipt, nil
}

// AddReaction inserts a reaction; the same (user, emoji) pair on a message
// is a conflict.
func (r *messages) AddReaction(ctx context.Context, messageID, userID int64, emoji string) (*MessageReaction, error) {
	exists, err := r.db.NewSelect().Model((*MessageReaction)(nil)).
		Where("?TableAlias.message_id = ?", messageID).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.emoji = ?", emoji).
		Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up reaction")
	}
	if exists {
		return nil, errors.New("reaction already added", errors.CategoryConflict).
			WithCode(errors.CodeConflict)
	}

	reaction := &MessageReaction{MessageID: messageID, UserID: userID, Emoji: emoji}
	if _, err := r.db.NewInsert().Model(reaction).Returning("*").Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New("reaction already added", errors.CategoryConflict).
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create reaction")
	}
	return reaction, nil
}

func (r *messages) RemoveReaction(ctx context.Context, messageID, userID int64, emoji string) error {
	res, err := r.db.NewDelete().Model((*MessageReaction)(nil)).
		Where("?TableAlias.message_id = ?", messageID).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.emoji = ?", emoji).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to remove reaction")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return newNotFound("reaction not found")
	}
	return nil
}
