package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finance/internal/core"
	"finance/internal/ports"
)

const DefaultSheetName = "Transactions"

var _ ports.TransactionMirror = (*Client)(nil)

// Client mirrors transactions into one sheet, one row per transaction keyed
// by the ID in column A.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheet         string

	// Row lookup and write are two calls; serialize them so concurrent
	// upserts never pick the same empty row.
	mu sync.Mutex
}

func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheet:         sheetName,
	}, nil
}

// NewFromEnv reads GOOGLE_SPREADSHEET_ID and GOOGLE_SHEET_NAME.
func NewFromEnv(ctx context.Context) (*Client, error) {
	return New(ctx, os.Getenv("GOOGLE_SPREADSHEET_ID"), os.Getenv("GOOGLE_SHEET_NAME"))
}

// newSheetsService uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS, in that order.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	credentialsJSON, err := serviceAccountCredentials()
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func serviceAccountCredentials() ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")); inline != "" {
		return []byte(inline), nil
	}
	path := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if path == "" {
		path = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if path == "" {
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return data, nil
}

// Upsert overwrites the row carrying t.ID or writes the first free row.
func (c *Client) Upsert(ctx context.Context, t core.Transaction) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.readIDs(ctx)
	if err != nil {
		return err
	}
	row := findRow(ids, t.ID)
	if row == 0 {
		row = len(ids) + 1
	}

	rng := rowRange(c.sheet, row)
	vr := &gsheet.ValueRange{Values: [][]any{transactionRow(t)}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption(valueInputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Transaction mirrored to sheet", "id", t.ID, "range", rng)
	return nil
}

// Remove clears the row carrying id. A missing row is not an error.
func (c *Client) Remove(ctx context.Context, id int64) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.readIDs(ctx)
	if err != nil {
		return err
	}
	row := findRow(ids, id)
	if row == 0 {
		slog.InfoContext(ctx, "Transaction not present in sheet, nothing to remove", "id", id)
		return nil
	}

	rng := rowRange(c.sheet, row)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Transaction removed from sheet", "id", id, "range", rng)
	return nil
}

func (c *Client) readIDs(ctx context.Context) ([][]any, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}
