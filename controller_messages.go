package alerts

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// MessagesController owns the message thread under an alert: posting,
// listing, deleting, read receipts, and emoji reactions. Every route here
// sits behind the session guard.
type MessagesController struct {
	Logger Logger
	repo   RepositoryManager
}

func NewMessagesController(repo RepositoryManager, logger Logger) *MessagesController {
	if logger == nil {
		logger = defLogger{}
	}
	return &MessagesController{Logger: logger, repo: repo}
}

// CreateMessageRequest payload
type CreateMessageRequest struct {
	Content  string `json:"content" form:"content"`
	MediaURL string `json:"media_url" form:"media_url"`
}

// Validate will run validation rules
func (r CreateMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.MediaURL, validation.Length(0, 255)),
	)
}

// ReactionRequest payload
type ReactionRequest struct {
	Emoji string `json:"emoji" form:"emoji"`
}

// Validate will run validation rules
func (r ReactionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Emoji,
			validation.Required,
			validation.Length(1, 10),
		),
	)
}

// Create posts a message on an alert as the current user.
func (m *MessagesController) Create(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	alertID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	payload := new(CreateMessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid message payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return wrapValidationError(err)
	}

	if _, err := m.repo.Alerts().GetByID(c.Context(), alertID); err != nil {
		return err
	}

	record, err := m.repo.Messages().Create(c.Context(), &Message{
		AlertID:  alertID,
		SenderID: user.ID,
		Content:  payload.Content,
		MediaURL: payload.MediaURL,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List returns the alert's thread with senders, reactions, and receipts.
func (m *MessagesController) List(c *fiber.Ctx) error {
	alertID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if _, err := m.repo.Alerts().GetByID(c.Context(), alertID); err != nil {
		return err
	}

	records, err := m.repo.Messages().ListByAlert(c.Context(), alertID)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

// Delete removes a message; only the sender may delete their own.
func (m *MessagesController) Delete(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	alertID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	messageID, err := paramID(c, "mid")
	if err != nil {
		return err
	}

	record, err := m.repo.Messages().GetByID(c.Context(), alertID, messageID)
	if err != nil {
		return err
	}

	if record.SenderID != user.ID {
		return errors.New("not authorized to delete this message", errors.CategoryAuthz).
			WithCode(errors.CodeForbidden)
	}

	if err := m.repo.Messages().Delete(c.Context(), record); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// MarkRead records a read receipt for the current user; repeated calls
// return the existing receipt.
func (m *MessagesController) MarkRead(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	alertID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	messageID, err := paramID(c, "mid")
	if err != nil {
		return err
	}

	if _, err := m.repo.Messages().GetByID(c.Context(), alertID, messageID); err != nil {
		return err
	}

	receipt, err := m.repo.Messages().MarkRead(c.Context(), messageID, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(receipt)
}

// AddReaction attaches an emoji reaction from the current user.
func (m *MessagesController) AddReaction(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	alertID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	messageID, err := paramID(c, "mid")
	if err != nil {
		return err
	}

	payload := new(ReactionRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid reaction payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return wrapValidationError(err)
	}

	if _, err := m.repo.Messages().GetByID(c.Context(), alertID, messageID); err != nil {
		return err
	}

	reaction, err := m.repo.Messages().AddReaction(c.Context(), messageID, user.ID, payload.Emoji)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(reaction)
}

// RemoveReaction deletes the current user's reaction; the emoji to remove
// comes as a query parameter.
func (m *MessagesController) RemoveReaction(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	alertID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	messageID, err := paramID(c, "mid")
	if err != nil {
		return err
	}

	emoji := c.Query("emoji")
	if emoji == "" {
		return errors.New("emoji query parameter required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	if _, err := m.repo.Messages().GetByID(c.Context(), alertID, messageID); err != nil {
		return err
	}

	if err := m.repo.Messages().RemoveReaction(c.Context(), messageID, user.ID, emoji); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
