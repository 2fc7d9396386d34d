package errors

// ErrorWithStatusCode carries the HTTP status a handler should respond with.
// Errors without one default to internal server error at the handler level.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
