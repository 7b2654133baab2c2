package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ParsingErrorStatDTO is one week-by-store row from the parsing_error_stats
// materialized view.
type ParsingErrorStatDTO struct {
	WeekStart time.Time `json:"weekStart"`
	StoreID   string    `json:"storeId"`
	ErrorRate float64   `json:"errorRate"`
	Total     int       `json:"total"`
}

type StatsStore struct {
	db *pgxpool.Pool
}

// ParsingErrors returns weekly extraction error rates per store, most recent
// week first.
func (s *StatsStore) ParsingErrors(ctx context.Context) ([]ParsingErrorStatDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT week_start, store_id, error_rate_percentage, total_extractions
		FROM parsing_error_stats
		ORDER BY week_start DESC, store_id ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parsing error stats: %w", err)
	}
	defer rows.Close()

	stats := []ParsingErrorStatDTO{}
	for rows.Next() {
		var st ParsingErrorStatDTO
		if err := rows.Scan(&st.WeekStart, &st.StoreID, &st.ErrorRate, &st.Total); err != nil {
			return nil, fmt.Errorf("scan parsing error stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return stats, nil
}
