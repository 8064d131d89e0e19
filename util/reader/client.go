package reader

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// Client sends JSON-RPC 2.0 requests over HTTP through go-ethereum's rpc
// client. One rpc.Client is dialed lazily per endpoint and reused.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.Mutex
	clients map[string]*rpc.Client
}

func NewClient(httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		clients:    map[string]*rpc.Client{},
	}
}

func (c *Client) dial(ctx context.Context, endpoint string) (*rpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cl, ok := c.clients[endpoint]; ok {
		return cl, nil
	}
	cl, err := rpc.DialOptions(ctx, endpoint, rpc.WithHTTPClient(c.httpClient))
	if err != nil {
		return nil, err
	}
	c.clients[endpoint] = cl
	return cl, nil
}

// Call invokes method on endpoint and returns the raw "result" member.
// Failures are one of *RPCError, *TransportError or *ParseError.
func (c *Client) Call(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		// a non-nil slice makes the request carry "params": []
		params = []any{}
	}
	cl, err := c.dial(ctx, endpoint)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	start := time.Now()
	var result json.RawMessage
	err = cl.CallContext(ctx, &result, method, params...)
	c.logger.Debug("rpc call",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("bytes", len(result)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return nil, classify(endpoint, err)
	}
	return result, nil
}

// Close releases every dialed endpoint.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for endpoint, cl := range c.clients {
		cl.Close()
		delete(c.clients, endpoint)
	}
}

// classify maps errors from the rpc package onto the reader's three
// failure kinds. Order matters: an HTTP error status is checked first so a
// JSON-RPC error carried in its body is still reported as an RPCError.
func classify(endpoint string, err error) error {
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		if rpcErr := errorFromBody(httpErr.Body); rpcErr != nil {
			return rpcErr
		}
		return &TransportError{Endpoint: endpoint, StatusCode: httpErr.StatusCode, Err: httpErr}
	}

	var callErr rpc.Error
	if errors.As(err, &callErr) {
		rpcErr := &RPCError{Code: callErr.ErrorCode(), Message: callErr.Error()}
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
			if data, mErr := json.Marshal(dataErr.ErrorData()); mErr == nil {
				rpcErr.Data = data
			}
		}
		return rpcErr
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, rpc.ErrNoResult):
		return &ParseError{Endpoint: endpoint, Err: errors.New("response has neither result nor error")}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &ParseError{Endpoint: endpoint, Err: err}
	}

	// *url.Error, net.Error and context errors: nothing usable came back.
	return &TransportError{Endpoint: endpoint, Err: err}
}

func errorFromBody(body []byte) *RPCError {
	var envelope struct {
		Error *RPCError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Error
}
