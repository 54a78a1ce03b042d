package domain

import "errors"

var (
	// ErrEmptyQuestionSet is returned when a controller is asked to load zero questions.
	ErrEmptyQuestionSet = errors.New("empty question set")
	// ErrNoQuestionSet is returned when an operation needs a loaded question set.
	ErrNoQuestionSet = errors.New("no question set loaded")
	// ErrQuestionOutOfRange indicates a question number outside [1, len].
	ErrQuestionOutOfRange = errors.New("question number out of range")
	// ErrNotSubmitted is returned when answers are reviewed before submission.
	ErrNotSubmitted = errors.New("quiz has not been submitted")
	// ErrStaleLoad is returned when a newer category load superseded this one.
	ErrStaleLoad = errors.New("question load superseded by a newer request")
	// ErrSessionNotFound is returned when a practice session does not exist.
	ErrSessionNotFound = errors.New("practice session not found")

	// ErrNetworkFailure wraps transport failures and non-success statuses from the upstream API.
	ErrNetworkFailure = errors.New("network failure")
	// ErrEmptyResult indicates the upstream answered with zero questions.
	ErrEmptyResult = errors.New("no questions found for this category")
	// ErrMalformedResponse indicates a body that is neither a question array nor {"data": [...]}.
	ErrMalformedResponse = errors.New("malformed question response")
	// ErrMalformedJSON is returned for authoring JSON that fails to parse.
	ErrMalformedJSON = errors.New("invalid JSON")

	// ErrCategoryRequired is returned when an authoring payload has no category.
	ErrCategoryRequired = errors.New("category is required")
	// ErrInvalidQuestion wraps question validation failures.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrEmailTaken is returned on registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned by user stores for an unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
