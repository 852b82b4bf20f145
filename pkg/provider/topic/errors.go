package topic

import (
	"strconv"
	"strings"
)

// TransportError is a connection level failure:
// dns, tcp, tls, timeout or a cancelled context
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "topic request: " + e.Cause.Error()
}

func (e *TransportError) Err() error {
	return e.Cause
}

// ServerError is a non-2xx answer of the server.
// The raw body is kept for diagnostics
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {

	b := strings.Builder{}
	b.WriteString("topic server: ")
	b.WriteString(strconv.Itoa(e.StatusCode))
	b.WriteByte(' ')
	b.WriteString(e.Body)

	return b.String()
}

// DecodeError is an answer body with an unexpected shape
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return "topic response: " + e.Cause.Error()
}

func (e *DecodeError) Err() error {
	return e.Cause
}
