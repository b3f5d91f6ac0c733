package alerts

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	OnResponse func(user *User)
}

func (e RegisterUserMessage) Type() string { return "user.register" }

type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		user.PasswordHash = hash
		// Stored lowercase so login lookups are case insensitive.
		user.Email = strings.ToLower(strings.TrimSpace(event.Email))
		user.FirstName = event.FirstName
		user.LastName = event.LastName
		user.Username = getUsername(event.Username, event.Email)
		user.IsActive = true

		if user, err = h.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	if event.OnResponse != nil {
		event.OnResponse(user)
	}

	return nil
}

func getUsername(username, email string) string {
	if username != "" {
		return username
	}

	if strings.Contains(email, "@") {
		username = strings.Split(email, "@")[0]
	}

	return username
}
