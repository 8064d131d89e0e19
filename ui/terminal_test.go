package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestTerminalTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	u := newTerminalUI(&buf, false)
	u.TableWithGroups([]string{"Name", "Balance"}, [][][]string{
		{{"treasury", "12.00"}},
		{{"ops", "1,000.50"}},
	})

	lines := strings.Split(strings.TrimRight(ansi.Strip(buf.String()), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), buf.String())
	}
	width := len([]rune(lines[0]))
	for i, l := range lines {
		if got := len([]rune(l)); got != width {
			t.Errorf("line %d has width %d, want %d: %q", i, got, width, l)
		}
	}
	if !strings.HasPrefix(lines[4], "├") {
		t.Errorf("groups should be separated by a divider, got %q", lines[4])
	}
}

func TestTerminalIndentAndPlainStyle(t *testing.T) {
	var buf bytes.Buffer
	u := newTerminalUI(&buf, false)
	u.Indent().Info("hello %s", u.Style(StyledText{Text: "world", Severity: SeverityError}))
	if buf.String() != "  hello world\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTerminalSpinnerWithoutTTY(t *testing.T) {
	var buf bytes.Buffer
	u := newTerminalUI(&buf, false)
	stop := u.Spinner("Checking balances...")
	stop()
	if buf.String() != "Checking balances...\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRecordingTableRows(t *testing.T) {
	r := NewRecordingUI()
	r.TableWithGroups([]string{"a", "b"}, [][][]string{{{"1", "2"}}, {{"3", "4"}}})
	want := []string{"a | b", "1 | 2", "---", "3 | 4"}
	got := r.TableRows()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("want %q, got %q", want, got)
	}
}
