package networks

var PolygonAmoy = Chain{
	Name:             "polygon",
	AlternativeNames: []string{"amoy", "polygon-amoy"},
	ChainID:          80002,
	RPCEndpoint:      "https://rpc-amoy.polygon.technology",
	TokenContract:    "0x41E94Eb019C0762f367d466C86A7c4F4A80Ab8eb",
	TokenSymbol:      "USDC",
	TokenDecimals:    6,
	NodeVariableName: "POLYGON_AMOY_NODE",
}
