package networks

// Chain describes a supported network and the token monitored on it. It is
// a value type: overriding an endpoint produces a new Chain.
type Chain struct {
	Name             string   `json:"name" yaml:"name"`
	AlternativeNames []string `json:"alternative_names" yaml:"alternative_names"`
	ChainID          uint64   `json:"chain_id" yaml:"chain_id"`
	RPCEndpoint      string   `json:"rpc_endpoint" yaml:"rpc_endpoint"`
	TokenContract    string   `json:"token_contract" yaml:"token_contract"`
	TokenSymbol      string   `json:"token_symbol" yaml:"token_symbol"`
	TokenDecimals    int32    `json:"token_decimals" yaml:"token_decimals"`

	// NodeVariableName is the env var that, when set, replaces RPCEndpoint.
	NodeVariableName string `json:"node_variable_name" yaml:"node_variable_name"`
}

