package chat

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// PreviewRows is how many table rows are kept in the transcript.
const PreviewRows = 5

// ResponseKind tags the shape of a language model reply.
type ResponseKind string

const (
	KindText  ResponseKind = "text"
	KindTable ResponseKind = "table"
)

// ErrUnrecognizedResponse marks a reply that is neither text nor a table.
var ErrUnrecognizedResponse = errors.New("unrecognized response shape")

// Table is a column-labeled dataset returned instead of prose.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Response is the model reply, classified once where it is received.
type Response struct {
	Kind  ResponseKind `json:"kind"`
	Text  string       `json:"text,omitempty"`
	Table *Table       `json:"table,omitempty"`
}

// TextResponse wraps a plain reply.
func TextResponse(text string) Response {
	return Response{Kind: KindText, Text: text}
}

// TableResponse wraps a tabular reply.
func TableResponse(t Table) Response {
	return Response{Kind: KindTable, Table: &t}
}

// Preview renders at most n leading rows as aligned text, prefixed by a row index column.
func (t Table) Preview(n int) string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}

	headers := append([]string{""}, t.Columns...)
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(i))
		row = append(row, normalizeRow(t.Rows[i], len(t.Columns))...)
		rows = append(rows, row)
	}

	rendered := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		Headers(headers...).
		Rows(rows...).
		String()

	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// normalizeRow pads or truncates a row so it lines up with the header.
func normalizeRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
