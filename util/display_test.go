package util_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tranvictor/balancewatch/common"
	"github.com/tranvictor/balancewatch/networks"
	"github.com/tranvictor/balancewatch/ui"
	"github.com/tranvictor/balancewatch/util"
	"github.com/tranvictor/balancewatch/util/monitor"
)

const (
	alice = "0x9642b23Ed1E01Df1092B92641051881a322F5D4E"
	bob   = "0x000000000000000000000000000000000000dEaD"
	carol = "0x1111111111111111111111111111111111111111"
)

// checkFixture is a pass with one first check, one alert with a previous
// record and one failed resolution.
func checkFixture() *monitor.CheckReport {
	return &monitor.CheckReport{
		CheckID:   "3f2a0c9e-0000-4000-8000-000000000001",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Results: []monitor.Result{
			{
				Tracked: common.TrackedAddress{Name: "treasury", Address: alice, Chain: "ethereum"},
				Balance: decimal.RequireFromString("12.5"),
				Status:  monitor.StatusOK,
			},
			{
				Tracked:  common.TrackedAddress{Name: "ops", Address: bob, Chain: "base", Threshold: decimal.NewFromInt(5)},
				Balance:  decimal.NewFromInt(3),
				Previous: &common.BalanceRecord{Balance: decimal.NewFromInt(4)},
				Delta:    decimal.NewFromInt(-1),
				Status:   monitor.StatusAlert,
			},
			{
				Tracked: common.TrackedAddress{Name: "broken", Address: carol, Chain: "polygon"},
				Status:  monitor.StatusError,
				Err:     errors.New("node down"),
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Check report
// ---------------------------------------------------------------------------

func TestCheckReportUIRepresentation(t *testing.T) {
	rec := ui.NewRecordingUI()
	d := util.DisplayCheckReport(rec, checkFixture(), networks.Default())

	if d.Alerts != 1 || d.Errors != 1 {
		t.Fatalf("alerts=%d errors=%d", d.Alerts, d.Errors)
	}

	expected := []string{
		"Name | Address | Chain | Balance | Change | Status",
		"treasury | 0x9642...5D4E | ethereum | 12.50 USDC | first check | OK",
		"ops | 0x0000...dEaD | base | 3.00 USDC | -1.00 | ALERT",
		"broken | 0x1111...1111 | polygon | - | - | ERROR",
	}
	assertRows(t, rec.TableRows(), expected)

	critical := rec.CriticalMessages()
	if len(critical) != 1 || critical[0] != "ALERT: ops on base is below threshold: 3.00 USDC < 5.00 USDC" {
		t.Errorf("unexpected critical messages: %q", critical)
	}
	errs := rec.ErrorMessages()
	if len(errs) != 1 || errs[0] != "Couldn't check broken on polygon: node down" {
		t.Errorf("unexpected error messages: %q", errs)
	}
	if !rec.HasMessage("Checked 3 address(es): 1 alert(s), 1 error(s).") {
		t.Errorf("missing pass summary")
	}
}

func TestCheckReportStyles(t *testing.T) {
	d := util.BuildCheckDisplay(checkFixture(), networks.Default())
	if d.Results[1].Balance.Severity != ui.SeverityError {
		t.Errorf("alerting balance should be red")
	}
	if d.Results[1].Change.Severity != ui.SeverityError {
		t.Errorf("negative change should be red")
	}
	if d.Results[0].Status.Severity != ui.SeveritySuccess {
		t.Errorf("ok status should be green")
	}
}

func TestCheckReportJSON(t *testing.T) {
	d := util.BuildCheckDisplay(checkFixture(), networks.Default())
	var buf bytes.Buffer
	if err := util.PrintJSON(&buf, d); err != nil {
		t.Fatalf("PrintJSON: %s", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"checkId": "3f2a0c9e-0000-4000-8000-000000000001"`,
		`"timestamp": "2024-01-01T00:00:00Z"`,
		`"balance": "12.50 USDC"`,
		`"status": "ALERT"`,
		`"error": "node down"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}
}

func TestEmptyCheckReport(t *testing.T) {
	rec := ui.NewRecordingUI()
	util.DisplayCheckReport(rec, &monitor.CheckReport{}, networks.Default())
	if len(rec.WarnMessages()) != 1 || !rec.HasMessage("No addresses configured") {
		t.Fatalf("expected a single warning, got %+v", rec.Entries())
	}
	if len(rec.TableRows()) != 0 {
		t.Fatalf("no table expected")
	}
}

// ---------------------------------------------------------------------------
// History, summary, chains
// ---------------------------------------------------------------------------

func TestHistoryUIRepresentation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []common.BalanceRecord{
		{Timestamp: start.Add(2 * time.Hour), Balance: decimal.NewFromInt(6), Change: decimal.NewFromInt(3)},
		{Timestamp: start.Add(time.Hour), Balance: decimal.NewFromInt(3), Change: decimal.Zero},
	}
	rec := ui.NewRecordingUI()
	tracked := common.TrackedAddress{Name: "treasury", Address: alice, Chain: "ethereum"}
	util.DisplayHistory(rec, tracked, records, networks.Default())

	if !rec.HasMessage("History of treasury (0x9642...5D4E) on ethereum") {
		t.Errorf("missing section title: %+v", rec.Entries())
	}
	assertRows(t, rec.TableRows(), []string{
		"Time | Balance | Change",
		"2024-01-01 02:00:00 UTC | 6.00 USDC | +3.00",
		"2024-01-01 01:00:00 UTC | 3.00 USDC | 0.00",
	})
}

func TestSummaryUIRepresentation(t *testing.T) {
	s := &monitor.Summary{
		Tracked: []common.TrackedAddress{
			{Name: "a", Address: alice, Chain: "ethereum"},
			{Name: "b", Address: bob, Chain: "base", Threshold: decimal.NewFromInt(1)},
			{Name: "c", Address: carol, Chain: "ethereum"},
		},
		TotalRecords: 7,
		Total:        decimal.RequireFromString("3.5"),
		ByChain: []monitor.ChainTotal{
			{Chain: "ethereum", Addresses: 1, Total: decimal.RequireFromString("1.5")},
			{Chain: "base", Addresses: 1, Total: decimal.NewFromInt(2)},
		},
		Balances: []monitor.Result{
			{Tracked: common.TrackedAddress{Name: "a", Address: alice, Chain: "ethereum"}, Balance: decimal.RequireFromString("1.5"), Status: monitor.StatusOK},
			{Tracked: common.TrackedAddress{Name: "b", Address: bob, Chain: "base", Threshold: decimal.NewFromInt(1)}, Balance: decimal.NewFromInt(2), Status: monitor.StatusOK},
		},
		Failed: []monitor.Result{
			{Tracked: common.TrackedAddress{Name: "c", Address: carol, Chain: "ethereum"}, Status: monitor.StatusError, Err: errors.New("timeout")},
		},
	}
	rec := ui.NewRecordingUI()
	util.DisplaySummary(rec, s, networks.Default())

	for _, want := range []string{
		"Tracked addresses: 3",
		"History records: 7",
		"Total balance: 3.50",
		"Couldn't resolve c on ethereum: timeout",
	} {
		if !rec.HasMessage(want) {
			t.Errorf("missing %q", want)
		}
	}
	assertRows(t, rec.TableRows(), []string{
		"Chain | Addresses | Total",
		"ethereum | 1 | 1.50 USDC",
		"base | 1 | 2.00 USDC",
		"Name | Address | Chain | Balance | Threshold",
		"a | 0x9642...5D4E | ethereum | 1.50 USDC | -",
		"b | 0x0000...dEaD | base | 2.00 USDC | 1.00 USDC",
	})
}

func TestChainsUIRepresentation(t *testing.T) {
	rec := ui.NewRecordingUI()
	d := util.DisplayChains(rec, networks.Default())
	if len(d) != 3 {
		t.Fatalf("want 3 chains, got %d", len(d))
	}
	rows := rec.TableRows()
	want := "ethereum | sepolia, ethereum-sepolia | 11155111 | USDC (6 decimals) | https://sepolia.drpc.org | ETHEREUM_SEPOLIA_NODE"
	if len(rows) < 2 || rows[1] != want {
		t.Fatalf("first chain row:\n  want: %q\n   got: %q", want, rows)
	}
}

func TestBalanceUIRepresentation(t *testing.T) {
	rec := ui.NewRecordingUI()
	util.DisplayBalance(rec, alice, "base", decimal.RequireFromString("0.5"), networks.Default())
	if !rec.HasMessage("Balance: 0.50 USDC") {
		t.Fatalf("unexpected entries: %+v", rec.Entries())
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func assertRows(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Errorf("expected %d table entries, got %d", len(expected), len(got))
		for i, row := range got {
			t.Logf("  [%d] %q", i, row)
		}
		t.FailNow()
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("row %d:\n  want: %q\n   got: %q", i, want, got[i])
		}
	}
}
