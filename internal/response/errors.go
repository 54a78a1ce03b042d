package response

import (
	"errors"
	"net/http"

	"mcq-practice-service/internal/authoring"
	"mcq-practice-service/internal/domain"
)

// ErrCode is a typed error code for API clients.
type ErrCode string

const (
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidJSON    ErrCode = "INVALID_JSON"
	ErrFileRequired   ErrCode = "FILE_REQUIRED"
	ErrFileTooLarge   ErrCode = "FILE_TOO_LARGE"

	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"
	ErrNoQuestionSet   ErrCode = "NO_QUESTION_SET"
	ErrOutOfRange      ErrCode = "QUESTION_OUT_OF_RANGE"
	ErrNotSubmitted    ErrCode = "NOT_SUBMITTED"
	ErrStaleLoad       ErrCode = "STALE_LOAD"
	ErrNoQuestions     ErrCode = "NO_QUESTIONS"

	ErrUpstream          ErrCode = "UPSTREAM_UNAVAILABLE"
	ErrUpstreamMalformed ErrCode = "UPSTREAM_MALFORMED"

	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrConflict           ErrCode = "CONFLICT"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	ErrNotFound ErrCode = "NOT_FOUND"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the default message for a code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidJSON:
		return "Invalid JSON."
	case ErrFileRequired:
		return "A JSON file upload is required."
	case ErrFileTooLarge:
		return "File exceeds the size limit."
	case ErrSessionNotFound:
		return "Practice session not found."
	case ErrNoQuestionSet:
		return "Select a category first."
	case ErrOutOfRange:
		return "Question number out of range."
	case ErrNotSubmitted:
		return "Submit the quiz to see the answers."
	case ErrStaleLoad:
		return "A newer category was selected."
	case ErrNoQuestions:
		return "No questions found for this category."
	case ErrUpstream:
		return "Failed to fetch questions. Please try again."
	case ErrUpstreamMalformed:
		return "The question service returned an unexpected response."
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrConflict:
		return "Email already registered."
	case ErrTokenRequired:
		return "Authorization token is required."
	case ErrTokenInvalid:
		return "Invalid or expired token."
	case ErrNotFound:
		return "Resource not found."
	case ErrInternal:
		return "Internal server error."
	default:
		return "Unexpected error."
	}
}

// upstreamMessenger is implemented by upstream errors carrying a user-facing message.
type upstreamMessenger interface {
	UpstreamMessage() string
}

// Classify maps a service error to an HTTP status, code and message.
func Classify(err error) (int, ErrCode, string) {
	var um upstreamMessenger
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return withDefault(http.StatusNotFound, ErrSessionNotFound)
	case errors.Is(err, domain.ErrMalformedResponse):
		return withDefault(http.StatusBadGateway, ErrUpstreamMalformed)
	case errors.Is(err, domain.ErrCategoryRequired),
		errors.Is(err, domain.ErrInvalidQuestion),
		errors.Is(err, authoring.ErrQuestionRequired),
		errors.Is(err, authoring.ErrOptionsIncomplete),
		errors.Is(err, authoring.ErrCorrectAnswerRequired):
		return http.StatusBadRequest, ErrValidation, err.Error()
	case errors.Is(err, domain.ErrMalformedJSON):
		return withDefault(http.StatusBadRequest, ErrInvalidJSON)
	case errors.Is(err, domain.ErrQuestionOutOfRange):
		return withDefault(http.StatusBadRequest, ErrOutOfRange)
	case errors.Is(err, domain.ErrNoQuestionSet):
		return withDefault(http.StatusConflict, ErrNoQuestionSet)
	case errors.Is(err, domain.ErrNotSubmitted):
		return withDefault(http.StatusConflict, ErrNotSubmitted)
	case errors.Is(err, domain.ErrStaleLoad):
		return withDefault(http.StatusConflict, ErrStaleLoad)
	case errors.Is(err, domain.ErrEmptyResult), errors.Is(err, domain.ErrEmptyQuestionSet):
		return withDefault(http.StatusNotFound, ErrNoQuestions)
	case errors.As(err, &um):
		return http.StatusBadGateway, ErrUpstream, um.UpstreamMessage()
	case errors.Is(err, domain.ErrNetworkFailure):
		return withDefault(http.StatusBadGateway, ErrUpstream)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return withDefault(http.StatusUnauthorized, ErrInvalidCredentials)
	case errors.Is(err, domain.ErrEmailTaken):
		return withDefault(http.StatusConflict, ErrConflict)
	default:
		return withDefault(http.StatusInternalServerError, ErrInternal)
	}
}

func withDefault(status int, code ErrCode) (int, ErrCode, string) {
	return status, code, GetMessage(code)
}
