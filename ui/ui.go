package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text. The print
// layer maps each value to a terminal style; data consumers (JSON, tests)
// see plain text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, balance went up or is healthy
	SeverityWarn                     // yellow, needs attention
	SeverityError                    // red, alert or failure
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity annotation.
//
// It marshals to JSON as just the plain Text. On the terminal pass it to
// [UI.Style] to get the coloured string:
//
//	u.Info("Balance: %s", u.Style(d.Balance))
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI provides all terminal output for balancewatch commands.
//
// Production code uses TerminalUI, tests use RecordingUI which captures every
// call. Use [UI.Indent] to get a child UI one level deeper; the child shares
// the parent's writer.
type UI interface {
	// Style returns the text from t coloured according to its Severity.
	// When colours are disabled the plain text is returned unchanged.
	Style(t StyledText) string

	// Info writes a neutral status line.
	Info(format string, args ...any)

	// Success writes a positive outcome in green.
	Success(format string, args ...any)

	// Warn writes a non-fatal warning in yellow.
	Warn(format string, args ...any)

	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)

	// Critical writes a line the user must not miss, such as a low balance
	// alert. Rendered bold.
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table with an optional header row.
	Table(headers []string, rows [][]string)

	// TableWithGroups renders a bordered table with a divider between each
	// group of rows.
	TableWithGroups(headers []string, groups [][][]string)

	// Spinner starts an animated spinner and returns its stop function.
	//
	//	stop := u.Spinner("Checking balances...")
	//	defer stop()
	Spinner(msg string) func()

	Indent() UI

	// Writer returns an io.Writer that prepends the current indentation to
	// every line.
	Writer() io.Writer
}
