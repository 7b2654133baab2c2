package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceHistoryDTO is the externally exposed projection of a price_history row.
type PriceHistoryDTO struct {
	ID            string    `json:"id"`
	Price         float64   `json:"price"`
	PriceType     string    `json:"priceType"`
	ProductID     string    `json:"productId"`
	SourceOfferID *string   `json:"sourceOfferId"`
	StoreID       string    `json:"storeId"`
	ValidFrom     time.Time `json:"validFrom"`
	ValidTo       time.Time `json:"validTo"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HistoryListQuery carries the validated parameters for a price history listing.
type HistoryListQuery struct {
	ProductID *string
	StoreID   *string
	Limit     int
	Offset    int
}

type HistoryStore struct {
	db *pgxpool.Pool
}

const historyColumns = `id, price, price_type, product_id, source_offer_id, store_id,
	valid_from, valid_to, created_at`

// List returns a page of price history entries, most recent validity first,
// and the true total of matching rows.
func (s *HistoryStore) List(ctx context.Context, q HistoryListQuery) ([]PriceHistoryDTO, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if q.ProductID != nil {
		args = append(args, *q.ProductID)
		conds = append(conds, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if q.StoreID != nil {
		args = append(args, *q.StoreID)
		conds = append(conds, fmt.Sprintf("store_id = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM price_history
		%s
		ORDER BY valid_from DESC
		LIMIT $%d OFFSET $%d;
	`, historyColumns, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()

	items := []PriceHistoryDTO{}
	var total int
	for rows.Next() {
		var h PriceHistoryDTO
		if err := rows.Scan(&h.ID, &h.Price, &h.PriceType, &h.ProductID, &h.SourceOfferID,
			&h.StoreID, &h.ValidFrom, &h.ValidTo, &h.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan price history: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	if len(items) == 0 && q.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM price_history %s;`, where)
		if err := s.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count price history: %w", err)
		}
	}

	return items, total, nil
}
