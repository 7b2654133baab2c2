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

// OfferDTO is the externally exposed projection of a product_offers row.
type OfferDTO struct {
	ID                   string    `json:"id"`
	FlyerID              string    `json:"flyerId"`
	ProductID            string    `json:"productId"`
	PromoPrice           float64   `json:"promoPrice"`
	RegularPrice         *float64  `json:"regularPrice"`
	DiscountPercentage   *float64  `json:"discountPercentage"`
	ExtractionConfidence *float64  `json:"extractionConfidence"`
	ManuallyVerified     bool      `json:"manuallyVerified"`
	PageNumber           *int      `json:"pageNumber"`
	Conditions           *string   `json:"conditions"`
	ValidFrom            time.Time `json:"validFrom"`
	ValidTo              time.Time `json:"validTo"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// DefaultOfferSort is applied when the caller does not ask for an order.
const DefaultOfferSort = "promoPrice_desc"

// OfferListQuery carries the validated parameters for an offer listing.
// StoreID and CategoryID are resolved to flyer/product id lists before the
// main query runs.
type OfferListQuery struct {
	StoreID    *string
	CategoryID *string
	Sort       string
	Limit      int
	Offset     int
}

type OffersStore struct {
	db *pgxpool.Pool
}

const offerColumns = `id, flyer_id, product_id, promo_price, regular_price, discount_percentage,
	extraction_confidence, manually_verified, page_number, conditions, valid_from, valid_to,
	created_at, updated_at`

// offerSortColumns maps API sort fields to their storage columns.
var offerSortColumns = map[string]string{
	"promoPrice":         "promo_price",
	"discountPercentage": "discount_percentage",
	"validFrom":          "valid_from",
	"createdAt":          "created_at",
}

// ParseOfferSort splits a field_direction token at its first underscore.
// Unknown fields fall back to promo_price; the order is ascending only when
// the direction suffix is exactly "asc".
func ParseOfferSort(sort string) (column string, ascending bool) {
	field, direction, _ := strings.Cut(sort, "_")
	column, ok := offerSortColumns[field]
	if !ok {
		column = "promo_price"
	}
	return column, direction == "asc"
}

// List returns a page of offers and the true total of matching rows.
// Filtering by store or category is a two-step lookup: resolve the flyer ids
// (resp. product ids) first, then constrain the offers query with them. An
// empty lookup short-circuits to an empty page without touching product_offers.
func (s *OffersStore) List(ctx context.Context, q OfferListQuery) ([]OfferDTO, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var flyerIDs, productIDs []string

	if q.StoreID != nil {
		ids, err := s.flyerIDsByStore(ctx, *q.StoreID)
		if err != nil {
			return nil, 0, fmt.Errorf("filter by store: %w", err)
		}
		if len(ids) == 0 {
			return []OfferDTO{}, 0, nil
		}
		flyerIDs = ids
	}

	if q.CategoryID != nil {
		ids, err := s.productIDsByCategory(ctx, *q.CategoryID)
		if err != nil {
			return nil, 0, fmt.Errorf("filter by category: %w", err)
		}
		if len(ids) == 0 {
			return []OfferDTO{}, 0, nil
		}
		productIDs = ids
	}

	var (
		conds []string
		args  []any
	)
	if flyerIDs != nil {
		args = append(args, flyerIDs)
		conds = append(conds, fmt.Sprintf("flyer_id = ANY($%d)", len(args)))
	}
	if productIDs != nil {
		args = append(args, productIDs)
		conds = append(conds, fmt.Sprintf("product_id = ANY($%d)", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	column, ascending := ParseOfferSort(q.Sort)
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM product_offers
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d;
	`, offerColumns, where, column, direction, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	items := []OfferDTO{}
	var total int
	for rows.Next() {
		var o OfferDTO
		if err := scanOffer(rows.Scan, &o, &total); err != nil {
			return nil, 0, fmt.Errorf("scan offer: %w", err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	if len(items) == 0 && q.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM product_offers %s;`, where)
		if err := s.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count offers: %w", err)
		}
	}

	return items, total, nil
}

// GetByID fetches a single offer; (nil, nil) when it does not exist.
func (s *OffersStore) GetByID(ctx context.Context, id string) (*OfferDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM product_offers WHERE id = $1;`, offerColumns)

	o := &OfferDTO{}
	err := scanOffer(func(dest ...any) error {
		return s.db.QueryRow(ctx, query, id).Scan(dest[:len(dest)-1]...)
	}, o, new(int))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}

	return o, nil
}

func (s *OffersStore) flyerIDsByStore(ctx context.Context, storeID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM flyers WHERE store_id = $1`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *OffersStore) productIDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanOffer(scan func(dest ...any) error, o *OfferDTO, total *int) error {
	return scan(&o.ID, &o.FlyerID, &o.ProductID, &o.PromoPrice, &o.RegularPrice,
		&o.DiscountPercentage, &o.ExtractionConfidence, &o.ManuallyVerified, &o.PageNumber,
		&o.Conditions, &o.ValidFrom, &o.ValidTo, &o.CreatedAt, &o.UpdatedAt, total)
}
