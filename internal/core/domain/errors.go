package domain

import "errors"

var (
	// ErrValidation marks missing or malformed input. Wrap it with a
	// field-specific message: fmt.Errorf("%w: title is required", ErrValidation).
	ErrValidation = errors.New("invalid input")

	// ErrForbidden marks an actor that lacks rights over the target entity.
	ErrForbidden = errors.New("access forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrProjectNotFound       = errors.New("project not found")
	ErrResponseNotFound      = errors.New("response not found")
	ErrChatNotFound          = errors.New("chat not found")
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")

	// ErrResponseState marks an operation that is not valid for the
	// response's current status, e.g. cancelling a non-pending response or
	// approving a second response on a project that already has one.
	ErrResponseState = errors.New("invalid response state")
)
