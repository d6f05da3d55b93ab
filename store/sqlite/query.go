package sqlite

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// AD-HOC QUERY EXPORT - Query text or query file, resolved once
// =============================================================================

// Source yields the SQL text of an export query. The two implementations
// form the full set of accepted inputs: inline text or a file path. The
// union is resolved here at the boundary; nothing downstream dispatches
// on the source kind again.
type Source interface {
	SQL() (string, error)
}

// InlineQuery is SQL text passed directly.
type InlineQuery string

func (q InlineQuery) SQL() (string, error) {
	text := strings.TrimSpace(string(q))
	if text == "" {
		return "", fmt.Errorf("empty query")
	}
	return text, nil
}

// QueryFile is a path to a file containing the SQL text.
type QueryFile string

func (q QueryFile) SQL() (string, error) {
	data, err := os.ReadFile(string(q))
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	return InlineQuery(data).SQL()
}

// ExportCSV executes the query and writes the result set as CSV to w,
// header row first. Returns the number of data rows written.
func (s *Store) ExportCSV(ctx context.Context, src Source, w io.Writer) (int, error) {
	query, err := src.SQL()
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("failed to read result columns: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return count, fmt.Errorf("failed to scan result row: %w", err)
		}
		for i, v := range values {
			record[i] = formatValue(v)
		}
		if err := writer.Write(record); err != nil {
			return count, fmt.Errorf("failed to write row: %w", err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	writer.Flush()
	return count, writer.Error()
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(value)
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}
