package gsheet

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"workoutlog/internal/record"
)

// DefaultWorksheet is the first tab of a spreadsheet created in the Korean UI.
const DefaultWorksheet = "시트1"

// api is the slice of the Sheets service the store needs.
type api interface {
	appendRow(ctx context.Context, rng string, row []any) error
	values(ctx context.Context, rng string) ([][]any, error)
	deleteRow(ctx context.Context, worksheet string, row int64) error
}

// Store keeps records in a Google spreadsheet whose first row is the
// header. Record IDs are 1-based sheet row numbers, so the first data row
// is "2".
type Store struct {
	api       api
	worksheet string
}

// NewStore authenticates with a service-account credentials file.
func NewStore(ctx context.Context, spreadsheetID, worksheet, credentialsFile string) (*Store, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required for the sheets store")
	}
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	return newStore(&serviceAPI{svc: svc, spreadsheetID: spreadsheetID}, worksheet), nil
}

func newStore(a api, worksheet string) *Store {
	if worksheet == "" {
		worksheet = DefaultWorksheet
	}
	return &Store{api: a, worksheet: worksheet}
}

func (s *Store) dataRange() string {
	return fmt.Sprintf("'%s'!A:H", s.worksheet)
}

func (s *Store) Append(ctx context.Context, r record.Record) error {
	cells := record.ToRow(r)
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	if err := s.api.appendRow(ctx, s.dataRange(), row); err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

func (s *Store) LoadAll(ctx context.Context) ([]record.Record, error) {
	rows, err := s.api.values(ctx, s.dataRange())
	if err != nil {
		return nil, fmt.Errorf("sheets load: %w", err)
	}

	out := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		out = append(out, record.FromRow(strconv.Itoa(i+1), cells))
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 2 {
		return fmt.Errorf("sheets delete %q: %w", id, record.ErrNotFound)
	}
	// DeleteDimension also removes blank grid rows past the data, so the
	// bound is checked against the values first.
	rows, err := s.api.values(ctx, s.dataRange())
	if err != nil {
		return fmt.Errorf("sheets delete row %d: %w", n, err)
	}
	if n > int64(len(rows)) {
		return fmt.Errorf("sheets delete row %d: %w", n, record.ErrNotFound)
	}
	if err := s.api.deleteRow(ctx, s.worksheet, n); err != nil {
		return fmt.Errorf("sheets delete row %d: %w", n, err)
	}
	return nil
}

type serviceAPI struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (a *serviceAPI) appendRow(ctx context.Context, rng string, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := a.svc.Spreadsheets.Values.Append(a.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (a *serviceAPI) values(ctx context.Context, rng string) ([][]any, error) {
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (a *serviceAPI) deleteRow(ctx context.Context, worksheet string, row int64) error {
	ss, err := a.svc.Spreadsheets.Get(a.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return err
	}

	var (
		sheetID int64
		found   bool
	)
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == worksheet {
			sheetID, found = sh.Properties.SheetId, true
			break
		}
	}
	if !found {
		return fmt.Errorf("worksheet %q not found", worksheet)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: row - 1,
					EndIndex:   row,
					// sheet 0 and row index 0 must still be sent
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}
	_, err = a.svc.Spreadsheets.BatchUpdate(a.spreadsheetID, req).Context(ctx).Do()
	return err
}
