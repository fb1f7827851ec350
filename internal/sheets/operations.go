package sheets

import (
	"context"
	"errors"
	"fmt"

	"sheet_poster/internal/retry"
	"sheet_poster/internal/schedule"

	"github.com/rs/zerolog/log"
)

// ColumnReader is the part of Client the job depends on.
type ColumnReader interface {
	ReadColumn(ctx context.Context, spreadsheetID, sheetName, column string) ([][]interface{}, error)
}

var errNoRows = errors.New("column is empty")

// ReadColumnData fetches the column at loc and converts it to strings.
// It returns false when the read fails or yields no rows; the reason is logged, not returned.
func ReadColumnData(ctx context.Context, reader ColumnReader, spreadsheetID string, loc schedule.Location, config retry.Config) ([][]string, bool) {
	log.Debug().
		Str("sheet", loc.Sheet).
		Str("column", loc.Column).
		Msg("Reading column")

	rows, err := retry.WithRetry(ctx, config, "sheet read", func(ctx context.Context) ([][]interface{}, error) {
		values, err := reader.ReadColumn(ctx, spreadsheetID, loc.Sheet, loc.Column)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, errNoRows
		}
		return values, nil
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("range", loc.Range()).
			Msg("Failed to read column data")
		return nil, false
	}

	data := StringifyRows(rows)
	log.Debug().
		Str("range", loc.Range()).
		Int("rows", len(data)).
		Msg("Retrieved column data")
	return data, true
}

// StringifyRows converts raw API values to strings, keeping row and cell order.
func StringifyRows(rows [][]interface{}) [][]string {
	result := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j := range row {
			cells[j] = extractStringField(row, j)
		}
		result[i] = cells
	}
	return result
}

// extractStringField safely extracts a string field from a row at the given index
func extractStringField(row []interface{}, index int) string {
	if len(row) > index && row[index] != nil {
		return fmt.Sprintf("%v", row[index])
	}
	return ""
}
