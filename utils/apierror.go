package utils

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApiError is a domain failure with a fixed HTTP status. The session
// workflow returns these; everything else that reaches the boundary is
// treated as internal.
type ApiError struct {
	StatusCode int
	Message    string
	Errs       []string
}

func (e *ApiError) Error() string { return e.Message }

func NewApiError(status int, message string, errs ...string) *ApiError {
	if errs == nil {
		errs = []string{}
	}
	return &ApiError{StatusCode: status, Message: message, Errs: errs}
}

type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Detail  string   `json:"detail,omitempty"`
}

// WriteApiError is the single translation point from errors to HTTP
// responses: ApiError keeps its declared status, duplicate-key storage
// errors become 409, token verification errors become 401, anything else
// becomes a generic 500. The raw error detail is exposed only outside
// production.
func WriteApiError(w http.ResponseWriter, err error, production bool) {
	var apiErr *ApiError
	switch {
	case errors.As(err, &apiErr):
	case mongo.IsDuplicateKeyError(err):
		apiErr = NewApiError(http.StatusConflict, "User already exists")
	case isTokenError(err):
		apiErr = NewApiError(http.StatusUnauthorized, "Invalid or expired token")
	default:
		apiErr = NewApiError(http.StatusInternalServerError, "Internal Server Error")
	}

	resp := errorResponse{Success: false, Message: apiErr.Message, Errors: apiErr.Errs}
	if !production {
		resp.Detail = err.Error()
	}
	WriteJSON(w, apiErr.StatusCode, resp)
}

func isTokenError(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenNotValidYet)
}
