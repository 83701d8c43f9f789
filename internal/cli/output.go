package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/five82/bookfinder/internal/book"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Runtime failure (catalog unreachable, store not saved)
	ExitCommandError = 2 // Command error (bad flags, empty query)
)

// ListFormats are the output formats of search and favorites list.
var ListFormats = []string{"text", "json"}

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope for list output.
type CLIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// RecordList is the JSON payload for search and favorites list.
type RecordList struct {
	Query   string        `json:"query,omitempty"`
	Sort    string        `json:"sort"`
	Count   int           `json:"count"`
	Records []book.Record `json:"records"`
}

// Records writes list in the configured format. Text output prints empty
// instead of a table when there is nothing to show.
func (f *OutputFormatter) Records(list RecordList, empty string) error {
	if list.Records == nil {
		list.Records = []book.Record{}
	}
	list.Count = len(list.Records)

	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: list})
	}

	if len(list.Records) == 0 {
		_, err := fmt.Fprintln(f.Writer, empty)
		return err
	}
	return writeTable(f.Writer, list.Records)
}

// Message prints a one-line human message. JSON output wraps it.
func (f *OutputFormatter) Message(msg string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: map[string]string{"message": msg}})
	}
	_, err := fmt.Fprintln(f.Writer, msg)
	return err
}

const tableTitleWidth = 48

// writeTable prints records as aligned plain-text columns.
func writeTable(w io.Writer, records []book.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tAUTHOR\tYEAR\tKEY")
	for _, r := range records {
		author := r.AuthorLine()
		if author == "" {
			author = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", clip(r.DisplayTitle(), tableTitleWidth), author, r.YearLabel(), r.Key)
	}
	return tw.Flush()
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
