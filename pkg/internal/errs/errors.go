// Package errs defines the machine-readable error kinds the API surfaces.
// Every failure aborts the single operation it belongs to; nothing here is
// retried. The codes travel to the client as graphql error extensions.
package errs

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeSetupCompleted  = "SETUP_ALREADY_COMPLETED"
)

type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Extensions satisfies gqlerrors.ExtendedError so the code survives the
// trip through graphql error formatting.
func (e *RequestError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func Unauthenticated(message string) *RequestError {
	return &RequestError{Code: CodeUnauthenticated, Message: message}
}

func Forbidden(message string) *RequestError {
	return &RequestError{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *RequestError {
	return &RequestError{Code: CodeNotFound, Message: message}
}

func BadRequest(message string) *RequestError {
	return &RequestError{Code: CodeBadRequest, Message: message}
}

func BadUserInput(message string) *RequestError {
	return &RequestError{Code: CodeBadUserInput, Message: message}
}

func SetupCompleted() *RequestError {
	return &RequestError{Code: CodeSetupCompleted, Message: "Setup already completed"}
}
