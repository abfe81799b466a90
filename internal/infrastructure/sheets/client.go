package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	sheetsapi "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// RangeClient is the sole boundary issuing range reads/writes against the
// backing spreadsheet. Row indexes are 1-based, matching A1 notation.
type RangeClient interface {
	// FetchRange returns the whole rectangular range of a tab; trailing
	// empty cells may be omitted per row.
	FetchRange(ctx context.Context, table, colSpan string) ([][]string, error)

	// UpdateRow overwrites one full row.
	UpdateRow(ctx context.Context, table string, rowIndex int, colSpan string, row []string) error

	// AppendRow lets the backing API pick the next empty row.
	AppendRow(ctx context.Context, table, colSpan string, row []string) error

	// DeleteRow removes the row dimension itself, shifting later rows up.
	DeleteRow(ctx context.Context, table string, rowIndex int) error
}

// Client talks to the Google Sheets v4 API with a service account.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	log           *logger.Logger

	mu     sync.Mutex
	tabIDs map[string]int64
}

// NewClient fails fast on missing credentials, before any network call.
func NewClient(ctx context.Context, spreadsheetID, email, privateKey string, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, fmt.Errorf("GOOGLE_SHEET_ID not set")
	}
	if strings.TrimSpace(email) == "" || strings.TrimSpace(privateKey) == "" {
		return nil, fmt.Errorf("google service account env not set")
	}

	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{spreadsheetScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service init: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		log:           log,
		tabIDs:        make(map[string]int64),
	}, nil
}

func (c *Client) FetchRange(ctx context.Context, table, colSpan string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, table+"!"+colSpan).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", table, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			if cell == nil {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%v", cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) UpdateRow(ctx context.Context, table string, rowIndex int, colSpan string, row []string) error {
	rangeA1 := rowRange(table, rowIndex, colSpan)
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, rangeA1, singleRow(row)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rangeA1, err)
	}
	return nil
}

func (c *Client) AppendRow(ctx context.Context, table, colSpan string, row []string) error {
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, table+"!"+colSpan, singleRow(row)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	return nil
}

func (c *Client) DeleteRow(ctx context.Context, table string, rowIndex int) error {
	tabID, err := c.tabID(ctx, table)
	if err != nil {
		return err
	}
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    tabID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex - 1),
					EndIndex:   int64(rowIndex),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d of %s: %w", rowIndex, table, err)
	}
	c.log.Info("row deleted", "table", table, "row", rowIndex)
	return nil
}

// tabID resolves a tab title to its numeric sheet id, cached after the
// first spreadsheet metadata fetch.
func (c *Client) tabID(ctx context.Context, table string) (int64, error) {
	c.mu.Lock()
	if id, ok := c.tabIDs[table]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	meta, err := c.svc.Spreadsheets.
		Get(c.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("spreadsheet metadata: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			c.tabIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	id, ok := c.tabIDs[table]
	if !ok {
		return 0, fmt.Errorf("tab %q not found", table)
	}
	return id, nil
}

// rowRange turns ("jobs_raw", 5, "A:R") into "jobs_raw!A5:R5".
func rowRange(table string, rowIndex int, colSpan string) string {
	parts := strings.SplitN(colSpan, ":", 2)
	end := parts[0]
	if len(parts) == 2 {
		end = parts[1]
	}
	return fmt.Sprintf("%s!%s%d:%s%d", table, parts[0], rowIndex, end, rowIndex)
}

func singleRow(row []string) *sheetsapi.ValueRange {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &sheetsapi.ValueRange{Values: [][]interface{}{cells}}
}
