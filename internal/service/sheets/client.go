package sheets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

var (
	ErrInvalidSpreadsheetURL = errors.New("invalid spreadsheet url")
	ErrWorksheetNotFound     = errors.New("worksheet not found")
)

// Scopes grants spreadsheet read/write and drive access to the service account.
var Scopes = []string{sheetsapi.SpreadsheetsScope, sheetsapi.DriveScope}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Worksheet is an opened tab of a spreadsheet.
type Worksheet interface {
	AppendRow(ctx context.Context, values []string) error
	Rows(ctx context.Context) ([][]string, error)
}

// Client opens worksheets on behalf of a service account. Every Open builds a
// fresh API service, so credentials are resolved per call.
type Client struct {
	newService func(ctx context.Context) (*sheetsapi.Service, error)
}

// NewClient returns a client authorizing with the service account key that credentials yields.
func NewClient(credentials func() ([]byte, error)) *Client {
	return &Client{
		newService: func(ctx context.Context) (*sheetsapi.Service, error) {
			key, err := credentials()
			if err != nil {
				return nil, err
			}
			return sheetsapi.NewService(ctx, option.WithCredentialsJSON(key), option.WithScopes(Scopes...))
		},
	}
}

// NewClientWithOptions builds a client from raw API options, e.g. a custom endpoint.
func NewClientWithOptions(opts ...option.ClientOption) *Client {
	return &Client{
		newService: func(ctx context.Context) (*sheetsapi.Service, error) {
			return sheetsapi.NewService(ctx, opts...)
		},
	}
}

// Open authorizes and resolves the named worksheet of the spreadsheet at url.
func (c *Client) Open(ctx context.Context, url, worksheet string) (Worksheet, error) {
	id, err := SpreadsheetID(url)
	if err != nil {
		return nil, err
	}

	svc, err := c.newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorize sheets client: %w", err)
	}

	spreadsheet, err := svc.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", id, err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == worksheet {
			return &worksheetHandle{svc: svc, spreadsheetID: id, title: worksheet}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
}

// SpreadsheetID extracts the document key from a Google Sheets URL.
func SpreadsheetID(url string) (string, error) {
	match := spreadsheetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSpreadsheetURL, url)
	}
	return match[1], nil
}

type worksheetHandle struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	title         string
}

// AppendRow writes values as one new row after the last filled row, in a single request.
func (w *worksheetHandle) AppendRow(ctx context.Context, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	_, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, quoteRange(w.title), &sheetsapi.ValueRange{
		Values: [][]interface{}{cells},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", w.title, err)
	}
	return nil
}

// Rows reads every filled row of the worksheet.
func (w *worksheetHandle) Rows(ctx context.Context) ([][]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, quoteRange(w.title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", w.title, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func quoteRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
