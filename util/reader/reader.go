package reader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/networks"
)

const latestBlock = "latest"

// Caller issues one JSON-RPC call. *Client implements it.
type Caller interface {
	Call(ctx context.Context, endpoint, method string, params ...any) (json.RawMessage, error)
}

type callMsg struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

// TokenReader reads the monitored token balance of an address on any chain
// of its registry.
type TokenReader struct {
	caller Caller
	chains *networks.Registry
	logger *zap.Logger
}

func NewTokenReader(caller Caller, chains *networks.Registry, logger *zap.Logger) *TokenReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenReader{
		caller: caller,
		chains: chains,
		logger: logger,
	}
}

// RawBalance returns the balance in the token's smallest unit, together with
// the chain it was read from.
func (tr *TokenReader) RawBalance(ctx context.Context, address, chain string) (*big.Int, networks.Chain, error) {
	c, err := tr.chains.GetChain(chain)
	if err != nil {
		return nil, networks.Chain{}, err
	}
	data, err := common.EncodeBalanceOf(address)
	if err != nil {
		return nil, c, err
	}

	result, err := tr.caller.Call(ctx, c.RPCEndpoint, "eth_call",
		callMsg{To: c.TokenContract, Data: data},
		latestBlock,
	)
	if err != nil {
		return nil, c, fmt.Errorf("balanceOf %s on %s: %w", address, c.Name, err)
	}

	var hex *string
	if err := json.Unmarshal(result, &hex); err != nil {
		return nil, c, &ParseError{Endpoint: c.RPCEndpoint, Body: snippet(result), Err: err}
	}
	if hex == nil {
		return nil, c, &ParseError{Endpoint: c.RPCEndpoint, Body: snippet(result), Err: errors.New("null result")}
	}
	raw, err := common.HexToBig(*hex)
	if err != nil {
		return nil, c, &ParseError{Endpoint: c.RPCEndpoint, Body: snippet(result), Err: err}
	}
	tr.logger.Debug("read token balance",
		zap.String("chain", c.Name),
		zap.String("address", address),
		zap.String("raw", raw.String()),
	)
	return raw, c, nil
}

// ResolveBalance returns the balance in human units, e.g. 1000000 raw units
// of a 6-decimal token is 1.
func (tr *TokenReader) ResolveBalance(ctx context.Context, address, chain string) (decimal.Decimal, error) {
	raw, c, err := tr.RawBalance(ctx, address, chain)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return common.BigToDecimal(raw, c.TokenDecimals), nil
}
