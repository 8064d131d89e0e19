package networks

var EthereumSepolia = Chain{
	Name:             "ethereum",
	AlternativeNames: []string{"sepolia", "ethereum-sepolia"},
	ChainID:          11155111,
	RPCEndpoint:      "https://sepolia.drpc.org",
	TokenContract:    "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
	TokenSymbol:      "USDC",
	TokenDecimals:    6,
	NodeVariableName: "ETHEREUM_SEPOLIA_NODE",
}
