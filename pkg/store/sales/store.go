// Package sales fetches raw transaction rows from the ERP extract table.
// It is the engine's data-access collaborator: rows come back as loosely
// typed records and all interpretation happens downstream in the
// normalizer. The store never owns the connection it is given.
package sales

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/rs/zerolog"
)

const defaultTable = "banco_datos"

type Store struct {
	db    *sql.DB
	table string
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, table: defaultTable}
}

// Query bounds one extract fetch. Excluded document codes are filtered in
// SQL to keep the transfer small; the normalizer remains the authoritative
// exclusion gate.
type Query struct {
	Start                 time.Time
	End                   time.Time
	Limit                 int
	ExcludedDocumentCodes []string
}

func (s *Store) FetchRecords(ctx context.Context, q Query) ([]domain.RawRecord, error) {
	logger := zerolog.Ctx(ctx)

	var (
		sb   strings.Builder
		args []any
	)
	fmt.Fprintf(&sb, `SELECT * FROM %s`, s.table)

	conditions := make([]string, 0, 3)
	if len(q.ExcludedDocumentCodes) > 0 {
		placeholders := make([]string, 0, len(q.ExcludedDocumentCodes))
		for _, code := range q.ExcludedDocumentCodes {
			args = append(args, code)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions,
			fmt.Sprintf(`"DocumentosCodigo" NOT IN (%s)`, strings.Join(placeholders, ", ")))
	}
	if !q.Start.IsZero() {
		args = append(args, q.Start)
		conditions = append(conditions, fmt.Sprintf(`"Fecha" >= $%d`, len(args)))
	}
	if !q.End.IsZero() {
		args = append(args, q.End)
		conditions = append(conditions, fmt.Sprintf(`"Fecha" <= $%d`, len(args)))
	}
	if len(conditions) > 0 {
		fmt.Fprintf(&sb, " WHERE %s", strings.Join(conditions, " AND "))
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("sales extract query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close sales extract rows")
		}
	}(rows)

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read extract columns: %w", err)
	}

	var records []domain.RawRecord
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan extract row: %w", err)
		}

		record := make(domain.RawRecord, len(columns))
		for i, col := range columns {
			if values[i] != nil {
				record[col] = values[i]
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales extract iteration failed: %w", err)
	}

	logger.Info().Int("rows", len(records)).Msg("fetched sales extract")
	return records, nil
}
