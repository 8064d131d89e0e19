package reader

import (
	"encoding/json"
	"fmt"
)

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// TransportError means no usable response came back from the node:
// connection, DNS or socket failures, or an HTTP error status whose body
// is not a JSON-RPC response. StatusCode is 0 when no response was received;
// otherwise Err is the rpc.HTTPError.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calling %s: %s", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means the node answered but the body could not be understood.
// Body holds at most the first bytes of the result when it was read.
type ParseError struct {
	Endpoint string
	Body     string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid response from %s: %s", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
