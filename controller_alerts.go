package alerts

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// AlertsController owns alert CRUD.
type AlertsController struct {
	Logger Logger
	repo   RepositoryManager
}

func NewAlertsController(repo RepositoryManager, logger Logger) *AlertsController {
	if logger == nil {
		logger = defLogger{}
	}
	return &AlertsController{Logger: logger, repo: repo}
}

// CreateAlertRequest payload
type CreateAlertRequest struct {
	Title       string     `json:"alert_title" form:"alert_title"`
	Description string     `json:"description" form:"description"`
	AlertType   int        `json:"alert_type" form:"alert_type"`
	ClosingDate *time.Time `json:"closing_date" form:"closing_date"`
	PostalCode  string     `json:"postal_code" form:"postal_code"`
	UserID      int64      `json:"user_id" form:"user_id"`
}

// Validate will run validation rules
func (r CreateAlertRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Title,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.AlertType, validation.Required),
		validation.Field(&r.PostalCode, validation.Length(0, 10)),
		validation.Field(&r.UserID, validation.Required),
	)
}

// UpdateAlertRequest carries optional fields; only non-nil ones apply.
type UpdateAlertRequest struct {
	Title       *string    `json:"alert_title" form:"alert_title"`
	Description *string    `json:"description" form:"description"`
	AlertType   *int       `json:"alert_type" form:"alert_type"`
	ClosingDate *time.Time `json:"closing_date" form:"closing_date"`
	PostalCode  *string    `json:"postal_code" form:"postal_code"`
	UserID      *int64     `json:"user_id" form:"user_id"`
}

func (a *AlertsController) List(c *fiber.Ctx) error {
	records, err := a.repo.Alerts().List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (a *AlertsController) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := a.repo.Alerts().GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (a *AlertsController) Create(c *fiber.Ctx) error {
	payload := new(CreateAlertRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid alert payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return wrapValidationError(err)
	}

	record, err := a.repo.Alerts().Create(c.Context(), &Alert{
		Title:       payload.Title,
		Description: payload.Description,
		AlertType:   payload.AlertType,
		ClosingDate: payload.ClosingDate,
		PostalCode:  payload.PostalCode,
		UserID:      payload.UserID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// Update applies only the fields present in the payload.
func (a *AlertsController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	payload := new(UpdateAlertRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid alert payload").
			WithCode(errors.CodeBadRequest)
	}

	record, err := a.repo.Alerts().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if payload.Title != nil {
		record.Title = *payload.Title
	}
	if payload.Description != nil {
		record.Description = *payload.Description
	}
	if payload.AlertType != nil {
		record.AlertType = *payload.AlertType
	}
	if payload.ClosingDate != nil {
		record.ClosingDate = payload.ClosingDate
	}
	if payload.PostalCode != nil {
		record.PostalCode = *payload.PostalCode
	}
	if payload.UserID != nil {
		record.UserID = *payload.UserID
	}

	record, err = a.repo.Alerts().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (a *AlertsController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := a.repo.Alerts().Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
