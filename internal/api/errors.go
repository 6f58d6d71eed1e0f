package api

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Detail carries the server's "detail" or
// "message" field when the body had one.
type ServerError struct {
	Op     string
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: http %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: http %d", e.Op, e.Status)
}

// DecodeError means a response body was not the JSON we expected.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Message returns the text to show a user for err. Server details win over
// the generic fallback; anything else is reduced to its category.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Detail != "" {
			return se.Detail
		}
		if fallback != "" {
			return fallback
		}
		return fmt.Sprintf("server returned %d", se.Status)
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return "backend unreachable: " + ne.Err.Error()
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return "unexpected response from backend"
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
