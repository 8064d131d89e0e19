package util

import "github.com/tranvictor/balancewatch/ui"

// ResultDisplay is the view-model for one tracked address in a check or a
// summary. StyledText fields serialize to JSON as plain strings.
type ResultDisplay struct {
	Name      string        `json:"name"`
	Address   string        `json:"address"`
	Chain     string        `json:"chain"`
	Balance   ui.StyledText `json:"balance"`
	Change    ui.StyledText `json:"change"`
	Threshold string        `json:"threshold,omitempty"`
	Status    ui.StyledText `json:"status"`
	Error     string        `json:"error,omitempty"`
}

// CheckDisplay is the view-model of one check pass.
type CheckDisplay struct {
	CheckID   string          `json:"checkId"`
	Timestamp string          `json:"timestamp"`
	Results   []ResultDisplay `json:"results"`
	Alerts    int             `json:"alerts"`
	Errors    int             `json:"errors"`
}

type RecordDisplay struct {
	Timestamp string        `json:"timestamp"`
	Balance   string        `json:"balance"`
	Change    ui.StyledText `json:"change"`
	CheckID   string        `json:"checkId,omitempty"`
}

// HistoryDisplay lists the records of one pair, newest first.
type HistoryDisplay struct {
	Name    string          `json:"name,omitempty"`
	Address string          `json:"address"`
	Chain   string          `json:"chain"`
	Symbol  string          `json:"symbol"`
	Records []RecordDisplay `json:"records"`
}

type ChainTotalDisplay struct {
	Chain     string `json:"chain"`
	Addresses int    `json:"addresses"`
	Total     string `json:"total"`
}

type SummaryDisplay struct {
	Tracked      int                 `json:"tracked"`
	TotalRecords int                 `json:"totalRecords"`
	Total        string              `json:"total"`
	ByChain      []ChainTotalDisplay `json:"byChain"`
	Balances     []ResultDisplay     `json:"balances"`
	Failed       []ResultDisplay     `json:"failed,omitempty"`
}

type ChainDisplay struct {
	Name             string   `json:"name"`
	AlternativeNames []string `json:"alternativeNames"`
	ChainID          uint64   `json:"chainId"`
	RPCEndpoint      string   `json:"rpcEndpoint"`
	NodeVariableName string   `json:"nodeVariableName"`
	TokenContract    string   `json:"tokenContract"`
	TokenSymbol      string   `json:"tokenSymbol"`
	TokenDecimals    int32    `json:"tokenDecimals"`
}

type BalanceDisplay struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
	Balance string `json:"balance"`
	Symbol  string `json:"symbol"`
}
