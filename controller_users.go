package alerts

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// UsersController owns user CRUD.
type UsersController struct {
	Logger   Logger
	repo     RepositoryManager
	register *RegisterUserHandler
}

func NewUsersController(repo RepositoryManager, logger Logger) *UsersController {
	if logger == nil {
		logger = defLogger{}
	}
	return &UsersController{
		Logger:   logger,
		repo:     repo,
		register: NewRegisterUserHandler(repo),
	}
}

// CreateUserRequest payload
type CreateUserRequest struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

// Validate will run validation rules
func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(3, 50),
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
		validation.Field(&r.FirstName, validation.Length(0, 50)),
		validation.Field(&r.LastName, validation.Length(0, 50)),
	)
}

// Create registers a new user through the registration command.
func (u *UsersController) Create(c *fiber.Ctx) error {
	payload := new(CreateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid user payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return wrapValidationError(err)
	}

	var created *User
	err := u.register.Execute(c.Context(), RegisterUserMessage{
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		OnResponse: func(user *User) {
			created = user
		},
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateUserRequest carries optional profile fields; only non-nil ones apply.
type UpdateUserRequest struct {
	Username  *string `json:"username" form:"username"`
	Email     *string `json:"email" form:"email"`
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
}

// Update applies only the fields present in the payload.
func (u *UsersController) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	payload := new(UpdateUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid user payload").
			WithCode(errors.CodeBadRequest)
	}

	record, err := u.repo.Users().GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if payload.Username != nil {
		record.Username = *payload.Username
	}
	if payload.Email != nil {
		record.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.FirstName != nil {
		record.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		record.LastName = *payload.LastName
	}

	record, err = u.repo.Users().Update(c.Context(), record)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (u *UsersController) List(c *fiber.Ctx) error {
	records, err := u.repo.Users().List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

func (u *UsersController) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	record, err := u.repo.Users().GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (u *UsersController) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := u.repo.Users().Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid "+name+" parameter", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return int64(id), nil
}
