package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlyerDTO is the externally exposed projection of a flyers row.
type FlyerDTO struct {
	ID                    string     `json:"id"`
	IssueDate             time.Time  `json:"issueDate"`
	ValidFrom             time.Time  `json:"validFrom"`
	ValidTo               time.Time  `json:"validTo"`
	SourceURL             string     `json:"sourceUrl"`
	StoreID               string     `json:"storeId"`
	ExtractionStatus      string     `json:"extractionStatus"`
	ErrorCount            int        `json:"errorCount"`
	ExtractionCompletedAt *time.Time `json:"extractionCompletedAt"`
}

// FlyerListQuery carries the validated parameters for a flyer listing.
// Valid restricts the result to flyers whose validity window covers today.
type FlyerListQuery struct {
	StoreID *string
	Valid   bool
	Limit   int
	Offset  int
}

type FlyersStore struct {
	db *pgxpool.Pool
}

const flyerColumns = `id, issue_date, valid_from, valid_to, source_url, store_id,
	extraction_status, error_count, extraction_completed_at`

// List returns a page of flyers, newest issue first, and the true total of
// matching rows.
func (s *FlyersStore) List(ctx context.Context, q FlyerListQuery) ([]FlyerDTO, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if q.StoreID != nil {
		args = append(args, *q.StoreID)
		conds = append(conds, fmt.Sprintf("store_id = $%d", len(args)))
	}
	if q.Valid {
		conds = append(conds, "valid_from <= CURRENT_DATE", "valid_to >= CURRENT_DATE")
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM flyers
		%s
		ORDER BY issue_date DESC
		LIMIT $%d OFFSET $%d;
	`, flyerColumns, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list flyers: %w", err)
	}
	defer rows.Close()

	items := []FlyerDTO{}
	var total int
	for rows.Next() {
		var f FlyerDTO
		if err := rows.Scan(&f.ID, &f.IssueDate, &f.ValidFrom, &f.ValidTo, &f.SourceURL,
			&f.StoreID, &f.ExtractionStatus, &f.ErrorCount, &f.ExtractionCompletedAt,
			&total); err != nil {
			return nil, 0, fmt.Errorf("scan flyer: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	if len(items) == 0 && q.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM flyers %s;`, where)
		if err := s.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count flyers: %w", err)
		}
	}

	return items, total, nil
}

// GetByID fetches a single flyer; (nil, nil) when it does not exist.
func (s *FlyersStore) GetByID(ctx context.Context, id string) (*FlyerDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM flyers WHERE id = $1;`, flyerColumns)

	f := &FlyerDTO{}
	err := s.db.QueryRow(ctx, query, id).Scan(&f.ID, &f.IssueDate, &f.ValidFrom, &f.ValidTo,
		&f.SourceURL, &f.StoreID, &f.ExtractionStatus, &f.ErrorCount, &f.ExtractionCompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flyer: %w", err)
	}

	return f, nil
}
