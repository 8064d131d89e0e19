package networks

var BaseSepolia = Chain{
	Name:             "base",
	AlternativeNames: []string{"base-sepolia"},
	ChainID:          84532,
	RPCEndpoint:      "https://sepolia.base.org",
	TokenContract:    "0x036CbD5d42Ac945dE1e26898767295A641fD0479",
	TokenSymbol:      "USDC",
	TokenDecimals:    6,
	NodeVariableName: "BASE_SEPOLIA_NODE",
}
