package util

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util/monitor"
)

const timeLayout = "2006-01-02 15:04:05 UTC"

// ── Severity helpers ─────────────────────────────────────────────────────────

// styledChange colours a delta: green when it went up, red when it went down.
func styledChange(change decimal.Decimal) ui.StyledText {
	text := common.FormatChange(change)
	switch {
	case change.IsPositive():
		return ui.StyledText{Text: text, Severity: ui.SeveritySuccess}
	case change.IsNegative():
		return ui.StyledText{Text: text, Severity: ui.SeverityError}
	}
	return ui.StyledText{Text: text, Severity: ui.SeverityInfo}
}

func styledStatus(st monitor.Status) ui.StyledText {
	switch st {
	case monitor.StatusOK:
		return ui.StyledText{Text: "OK", Severity: ui.SeveritySuccess}
	case monitor.StatusAlert:
		return ui.StyledText{Text: "ALERT", Severity: ui.SeverityError}
	}
	return ui.StyledText{Text: "ERROR", Severity: ui.SeverityWarn}
}

func tokenSymbol(chains *networks.Registry, chain string) string {
	c, err := chains.GetChain(chain)
	if err != nil {
		return ""
	}
	return c.TokenSymbol
}

func withSymbol(amount, symbol string) string {
	if symbol == "" {
		return amount
	}
	return amount + " " + symbol
}

// ── Build phase (pure: no UI side-effects) ──────────────────────────────────

func buildResultDisplay(res monitor.Result, symbol string) ResultDisplay {
	t := res.Tracked
	d := ResultDisplay{
		Name:    t.Label(),
		Address: t.Address,
		Chain:   t.Chain,
		Status:  styledStatus(res.Status),
	}
	if t.HasThreshold() {
		d.Threshold = withSymbol(common.FormatAmount(t.Threshold), symbol)
	}
	if res.Status == monitor.StatusError {
		d.Balance = ui.StyledText{Text: "-"}
		d.Change = ui.StyledText{Text: "-"}
		if res.Err != nil {
			d.Error = res.Err.Error()
		}
		return d
	}

	d.Balance = ui.StyledText{Text: withSymbol(common.FormatAmount(res.Balance), symbol)}
	if res.Status == monitor.StatusAlert {
		d.Balance.Severity = ui.SeverityError
	}
	if res.FirstCheck() {
		d.Change = ui.StyledText{Text: "first check"}
	} else {
		d.Change = styledChange(res.Delta)
	}
	return d
}

func BuildCheckDisplay(report *monitor.CheckReport, chains *networks.Registry) *CheckDisplay {
	d := &CheckDisplay{
		CheckID:   report.CheckID,
		Timestamp: report.Timestamp.UTC().Format(time.RFC3339),
		Results:   make([]ResultDisplay, 0, len(report.Results)),
		Alerts:    report.Alerts(),
		Errors:    report.Errors(),
	}
	for _, res := range report.Results {
		d.Results = append(d.Results, buildResultDisplay(res, tokenSymbol(chains, res.Tracked.Chain)))
	}
	return d
}

func BuildHistoryDisplay(tracked common.TrackedAddress, records []common.BalanceRecord, chains *networks.Registry) *HistoryDisplay {
	d := &HistoryDisplay{
		Name:    tracked.Name,
		Address: tracked.Address,
		Chain:   tracked.Chain,
		Symbol:  tokenSymbol(chains, tracked.Chain),
		Records: make([]RecordDisplay, 0, len(records)),
	}
	for _, r := range records {
		d.Records = append(d.Records, RecordDisplay{
			Timestamp: r.Timestamp.UTC().Format(timeLayout),
			Balance:   common.FormatAmount(r.Balance),
			Change:    styledChange(r.Change),
			CheckID:   r.CheckID,
		})
	}
	return d
}

func BuildSummaryDisplay(s *monitor.Summary, chains *networks.Registry) *SummaryDisplay {
	d := &SummaryDisplay{
		Tracked:      len(s.Tracked),
		TotalRecords: s.TotalRecords,
		Total:        common.FormatAmount(s.Total),
		ByChain:      make([]ChainTotalDisplay, 0, len(s.ByChain)),
		Balances:     make([]ResultDisplay, 0, len(s.Balances)),
	}
	for _, ct := range s.ByChain {
		d.ByChain = append(d.ByChain, ChainTotalDisplay{
			Chain:     ct.Chain,
			Addresses: ct.Addresses,
			Total:     withSymbol(common.FormatAmount(ct.Total), tokenSymbol(chains, ct.Chain)),
		})
	}
	for _, res := range s.Balances {
		rd := buildResultDisplay(res, tokenSymbol(chains, res.Tracked.Chain))
		rd.Change = ui.StyledText{}
		d.Balances = append(d.Balances, rd)
	}
	for _, res := range s.Failed {
		d.Failed = append(d.Failed, buildResultDisplay(res, ""))
	}
	return d
}

func BuildChainDisplays(chains *networks.Registry) []ChainDisplay {
	result := []ChainDisplay{}
	for _, c := range chains.Chains() {
		alt := c.AlternativeNames
		if alt == nil {
			alt = []string{}
		}
		result = append(result, ChainDisplay{
			Name:             c.Name,
			AlternativeNames: alt,
			ChainID:          c.ChainID,
			RPCEndpoint:      c.RPCEndpoint,
			NodeVariableName: c.NodeVariableName,
			TokenContract:    c.TokenContract,
			TokenSymbol:      c.TokenSymbol,
			TokenDecimals:    c.TokenDecimals,
		})
	}
	return result
}

func BuildBalanceDisplay(address, chain string, balance decimal.Decimal, chains *networks.Registry) BalanceDisplay {
	return BalanceDisplay{
		Address: address,
		Chain:   chain,
		Balance: common.FormatAmount(balance),
		Symbol:  tokenSymbol(chains, chain),
	}
}

// ── Print phase ─────────────────────────────────────────────────────────────

func PrintCheckDisplay(u ui.UI, d *CheckDisplay) {
	if len(d.Results) == 0 {
		u.Warn("No addresses configured. Add one with: balancewatch add <name> <address> <chain> [threshold]")
		return
	}
	u.Section("Balance check")
	rows := make([][]string, 0, len(d.Results))
	for _, r := range d.Results {
		rows = append(rows, []string{
			r.Name,
			common.ShortAddress(r.Address),
			r.Chain,
			u.Style(r.Balance),
			u.Style(r.Change),
			u.Style(r.Status),
		})
	}
	u.Table([]string{"Name", "Address", "Chain", "Balance", "Change", "Status"}, rows)

	for _, r := range d.Results {
		switch {
		case r.Error != "":
			u.Error("Couldn't check %s on %s: %s", r.Name, r.Chain, r.Error)
		case r.Status.Text == "ALERT":
			u.Critical("ALERT: %s on %s is below threshold: %s < %s", r.Name, r.Chain, r.Balance.Text, r.Threshold)
		}
	}
	summary := fmt.Sprintf("Checked %d address(es): %d alert(s), %d error(s).", len(d.Results), d.Alerts, d.Errors)
	if d.Alerts == 0 && d.Errors == 0 {
		u.Success("%s", summary)
	} else {
		u.Warn("%s", summary)
	}
}

func PrintHistoryDisplay(u ui.UI, d *HistoryDisplay) {
	title := common.ShortAddress(d.Address)
	if d.Name != "" {
		title = d.Name + " (" + title + ")"
	}
	u.Section(fmt.Sprintf("History of %s on %s", title, d.Chain))
	rows := make([][]string, 0, len(d.Records))
	for _, r := range d.Records {
		rows = append(rows, []string{r.Timestamp, withSymbol(r.Balance, d.Symbol), u.Style(r.Change)})
	}
	u.Table([]string{"Time", "Balance", "Change"}, rows)
}

func PrintSummaryDisplay(u ui.UI, d *SummaryDisplay) {
	u.Section("Summary")
	u.KeyValue([][2]string{
		{"Tracked addresses", fmt.Sprintf("%d", d.Tracked)},
		{"History records", fmt.Sprintf("%d", d.TotalRecords)},
		{"Total balance", d.Total},
	})
	if d.Tracked == 0 {
		return
	}
	if len(d.ByChain) > 0 {
		rows := make([][]string, 0, len(d.ByChain))
		for _, ct := range d.ByChain {
			rows = append(rows, []string{ct.Chain, fmt.Sprintf("%d", ct.Addresses), ct.Total})
		}
		u.Table([]string{"Chain", "Addresses", "Total"}, rows)
	}
	if len(d.Balances) > 0 {
		rows := make([][]string, 0, len(d.Balances))
		for _, r := range d.Balances {
			threshold := r.Threshold
			if threshold == "" {
				threshold = "-"
			}
			rows = append(rows, []string{r.Name, common.ShortAddress(r.Address), r.Chain, u.Style(r.Balance), threshold})
		}
		u.Table([]string{"Name", "Address", "Chain", "Balance", "Threshold"}, rows)
	}
	for _, r := range d.Failed {
		u.Error("Couldn't resolve %s on %s: %s", r.Name, r.Chain, r.Error)
	}
}

func PrintChainDisplays(u ui.UI, chains []ChainDisplay) {
	rows := make([][]string, 0, len(chains))
	for _, c := range chains {
		aliases := strings.Join(c.AlternativeNames, ", ")
		if aliases == "" {
			aliases = "-"
		}
		rows = append(rows, []string{
			c.Name,
			aliases,
			fmt.Sprintf("%d", c.ChainID),
			fmt.Sprintf("%s (%d decimals)", c.TokenSymbol, c.TokenDecimals),
			c.RPCEndpoint,
			c.NodeVariableName,
		})
	}
	u.Table([]string{"Chain", "Aliases", "Chain ID", "Token", "RPC endpoint", "Override env"}, rows)
}

func PrintBalanceDisplay(u ui.UI, d BalanceDisplay) {
	u.KeyValue([][2]string{
		{"Address", d.Address},
		{"Chain", d.Chain},
		{"Balance", withSymbol(d.Balance, d.Symbol)},
	})
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ── Public API ───────────────────────────────────────────────────────────────

// DisplayCheckReport builds the view-model of a check pass and writes it to u.
func DisplayCheckReport(u ui.UI, report *monitor.CheckReport, chains *networks.Registry) *CheckDisplay {
	d := BuildCheckDisplay(report, chains)
	PrintCheckDisplay(u, d)
	return d
}

func DisplayHistory(u ui.UI, tracked common.TrackedAddress, records []common.BalanceRecord, chains *networks.Registry) *HistoryDisplay {
	d := BuildHistoryDisplay(tracked, records, chains)
	PrintHistoryDisplay(u, d)
	return d
}

func DisplaySummary(u ui.UI, s *monitor.Summary, chains *networks.Registry) *SummaryDisplay {
	d := BuildSummaryDisplay(s, chains)
	PrintSummaryDisplay(u, d)
	return d
}

func DisplayChains(u ui.UI, chains *networks.Registry) []ChainDisplay {
	d := BuildChainDisplays(chains)
	PrintChainDisplays(u, d)
	return d
}

func DisplayBalance(u ui.UI, address, chain string, balance decimal.Decimal, chains *networks.Registry) BalanceDisplay {
	d := BuildBalanceDisplay(address, chain, balance, chains)
	PrintBalanceDisplay(u, d)
	return d
}
