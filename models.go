package alerts

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a registered principal. The password hash never serializes.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username,notnull,unique" json:"username"`
	Email         string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	FirstName     string    `bun:"first_name" json:"first_name,omitempty"`
	LastName      string    `bun:"last_name" json:"last_name,omitempty"`
	IsActive      bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`

	Alerts   []*Alert   `bun:"rel:has-many,join:id=user_id" json:"alerts,omitempty"`
	Messages []*Message `bun:"rel:has-many,join:id=sender_id" json:"messages,omitempty"`
}

// Alert is a location-tagged community alert owned by a user.
type Alert struct {
	bun.BaseModel `bun:"table:alerts,alias:alr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Title         string     `bun:"alert_title,notnull" json:"alert_title"`
	Description   string     `bun:"description,notnull" json:"description"`
	AlertType     int        `bun:"alert_type,notnull" json:"alert_type"`
	ClosingDate   *time.Time `bun:"closing_date,nullzero" json:"closing_date,omitempty"`
	PostalCode    string     `bun:"postal_code" json:"postal_code,omitempty"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	User     *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Messages []*Message `bun:"rel:has-many,join:id=alert_id" json:"messages,omitempty"`
}

// Message is a threaded message posted on an alert.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:msg"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	AlertID       int64     `bun:"alert_id,notnull" json:"alert_id"`
	SenderID      int64     `bun:"sender_id,notnull" json:"sender_id"`
	Content       string    `bun:"content,notnull" json:"content"`
	MediaURL      string    `bun:"media_url" json:"media_url,omitempty"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Alert        *Alert             `bun:"rel:belongs-to,join:alert_id=id" json:"alert,omitempty"`
	Sender       *User              `bun:"rel:belongs-to,join:sender_id=id" json:"sender,omitempty"`
	Reactions    []*MessageReaction `bun:"rel:has-many,join:id=message_id" json:"reactions,omitempty"`
	ReadReceipts []*MessageRead     `bun:"rel:has-many,join:id=message_id" json:"read_receipts,omitempty"`
}

// MessageRead is a per-user read receipt; at most one per (message, user).
type MessageRead struct {
	bun.BaseModel `bun:"table:message_reads,alias:mrd"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	MessageID     int64     `bun:"message_id,notnull" json:"message_id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	ReadAt        time.Time `bun:"read_at,nullzero,notnull,default:current_timestamp" json:"read_at"`

	Message *Message `bun:"rel:belongs-to,join:message_id=id" json:"message,omitempty"`
	User    *User    `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

// MessageReaction is an emoji reaction; unique per (message, user, emoji).
type MessageReaction struct {
	bun.BaseModel `bun:"table:message_reactions,alias:mrx"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	MessageID     int64     `bun:"message_id,notnull" json:"message_id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	Emoji         string    `bun:"emoji,notnull" json:"emoji"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	Message *Message `bun:"rel:belongs-to,join:message_id=id" json:"message,omitempty"`
}
