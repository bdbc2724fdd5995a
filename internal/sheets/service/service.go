// Package service talks to the Google Sheets API: tab and header
// provisioning plus row appends for qualified leads.
package service

import (
	"context"
	"fmt"

	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/platform/logger"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// SheetName is the tab that holds the collected leads.
const SheetName = "Leads Coletados"

// headers is the 17-column public contract; consumers read by position.
var headers = []interface{}{
	"Lead ID",
	"Created At",
	"Last Contact At",
	"Name",
	"Company",
	"Email",
	"Phone",
	"Need",
	"Urgency",
	"Job Title",
	"Sales Team Size",
	"Monthly Leads",
	"Score",
	"Status",
	"Follow-up At",
	"Notes",
	"Temperature",
}

// Service wraps the spreadsheet the leads are exported to.
type Service struct {
	api           *gsheets.Service
	spreadsheetID string
	log           *logger.Logger
}

// New authenticates with a service-account credential and binds to the
// configured spreadsheet.
func New(ctx context.Context, credentialsJSON []byte, spreadsheetID string, log *logger.Logger) (*Service, error) {
	jwtCfg, err := google.JWTConfigFromJSON(credentialsJSON, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse credentials: %w", err)
	}

	api, err := gsheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: create client: %w", err)
	}

	return &Service{api: api, spreadsheetID: spreadsheetID, log: log}, nil
}

// Probe verifies connectivity and returns the spreadsheet title.
func (s *Service) Probe(ctx context.Context) (string, error) {
	spreadsheet, err := s.api.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		s.log.SheetsError("probe", err)
		return "", fmt.Errorf("sheets: get spreadsheet: %w", err)
	}

	title := ""
	if spreadsheet.Properties != nil {
		title = spreadsheet.Properties.Title
	}
	return title, nil
}

// SpreadsheetID returns the bound spreadsheet id.
func (s *Service) SpreadsheetID() string {
	return s.spreadsheetID
}

// EnsureSheet creates the leads tab and its header row on first use.
func (s *Service) EnsureSheet(ctx context.Context) error {
	spreadsheet, err := s.api.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		s.log.SheetsError("get spreadsheet", err)
		return fmt.Errorf("sheets: get spreadsheet: %w", err)
	}

	tabExists := false
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == SheetName {
			tabExists = true
			break
		}
	}

	if !tabExists {
		_, err = s.api.Spreadsheets.BatchUpdate(s.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheets.Request{{
				AddSheet: &gsheets.AddSheetRequest{
					Properties: &gsheets.SheetProperties{Title: SheetName},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			s.log.SheetsError("add sheet", err)
			return fmt.Errorf("sheets: add sheet: %w", err)
		}
		s.log.Info("created export sheet tab", "sheet", SheetName)
	}

	headerRange := fmt.Sprintf("%s!A1:Q1", SheetName)
	existing, err := s.api.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		s.log.SheetsError("read headers", err)
		return fmt.Errorf("sheets: read headers: %w", err)
	}

	if len(existing.Values) == 0 {
		_, err = s.api.Spreadsheets.Values.Update(s.spreadsheetID, headerRange, &gsheets.ValueRange{
			Values: [][]interface{}{headers},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			s.log.SheetsError("write headers", err)
			return fmt.Errorf("sheets: write headers: %w", err)
		}
		s.log.Info("wrote export sheet headers", "sheet", SheetName)
	}

	return nil
}

// Append writes one record into the next empty row and returns the 1-based
// row number. The next-row lookup is read-then-write: concurrent appends
// can race and the deployment runs a single writer at a time.
func (s *Service) Append(ctx context.Context, record domain.ExportRecord) (int, error) {
	dataRange := fmt.Sprintf("%s!A:Q", SheetName)
	existing, err := s.api.Spreadsheets.Values.Get(s.spreadsheetID, dataRange).Context(ctx).Do()
	if err != nil {
		s.log.SheetsError("read rows", err)
		return 0, fmt.Errorf("sheets: read rows: %w", err)
	}

	nextRow := len(existing.Values) + 1
	insertRange := fmt.Sprintf("%s!A%d:Q%d", SheetName, nextRow, nextRow)

	_, err = s.api.Spreadsheets.Values.Update(s.spreadsheetID, insertRange, &gsheets.ValueRange{
		Values: [][]interface{}{record.Row()},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		s.log.SheetsError("append row", err)
		return 0, fmt.Errorf("sheets: append row: %w", err)
	}

	s.log.Info("exported lead to spreadsheet", "leadId", record.LeadID, "row", nextRow)
	return nextRow, nil
}
