// Package google exports the derived period series to a Google Sheets
// spreadsheet. Authentication uses an OAuth client plus a stored token;
// run cmd/oauth-init once to mint the token.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"caixa/internal/config"
	"caixa/internal/core"
	applog "caixa/internal/log"
	ports "caixa/internal/sheets"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.SeriesWriter = (*Client)(nil)

var exportHeader = []any{
	"period", "net_revenue", "cost_of_goods_or_services", "operating_expenses",
	"net_result", "cash_inflows", "cash_outflows",
	"budgeted_revenue", "budgeted_expenses",
	"net_cash_delta", "cumulative_balance", "net_margin_pct",
}

// New builds a Sheets client from the service configuration. Callers
// should gate on cfg.SheetsConfigured() first.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if cfg.GoogleSheetName == "" {
		return nil, errors.New("missing GOOGLE_SHEET_NAME")
	}

	oauthCfg, err := oauthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := oauthToken(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauthCfg.Client(ctx, token)
	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

func oauthConfig(cfg *config.Config) (*oauth2.Config, error) {
	var raw []byte
	switch {
	case cfg.GoogleOAuthClientJSON != "":
		raw = []byte(cfg.GoogleOAuthClientJSON)
	case cfg.GoogleOAuthClientFile != "":
		b, err := os.ReadFile(cfg.GoogleOAuthClientFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth client file: %w", err)
		}
		raw = b
	default:
		return nil, errors.New("missing OAuth client (set GOOGLE_OAUTH_CLIENT_JSON or GOOGLE_OAUTH_CLIENT_FILE)")
	}

	oauthCfg, err := googleoauth.ConfigFromJSON(raw, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	return oauthCfg, nil
}

func oauthToken(cfg *config.Config) (*oauth2.Token, error) {
	var raw []byte
	switch {
	case cfg.GoogleOAuthTokenJSON != "":
		raw = []byte(cfg.GoogleOAuthTokenJSON)
	case cfg.GoogleOAuthTokenFile != "":
		b, err := os.ReadFile(cfg.GoogleOAuthTokenFile)
		if err != nil {
			return nil, fmt.Errorf("read oauth token file: %w", err)
		}
		raw = b
	default:
		return nil, errors.New("missing OAuth token (set GOOGLE_OAUTH_TOKEN_JSON or GOOGLE_OAUTH_TOKEN_FILE, or run oauth-init)")
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}
	return &token, nil
}

// WriteSeries replaces the sheet content with the full derived series,
// one header row plus one row per period.
func (c *Client) WriteSeries(ctx context.Context, series []core.PeriodRecord) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:L", c.sheetName)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	values := make([][]any, 0, len(series)+1)
	values = append(values, exportHeader)
	for _, rec := range series {
		values = append(values, []any{
			rec.Period.String(),
			cell(rec.NetRevenue), cell(rec.COGS), cell(rec.OperatingExpenses),
			cell(rec.NetResult), cell(rec.Inflows), cell(rec.Outflows),
			cell(rec.BudgetRevenue), cell(rec.BudgetExpenses),
			cell(rec.NetCashDelta), cell(rec.CumulativeBalance), cell(rec.NetMarginPct),
		})
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write series to sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Series exported to Google Sheets",
		applog.FieldSpreadsheet, c.spreadsheetID, "sheet", c.sheetName, applog.FieldRows, len(series))
	return nil
}

func cell(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
