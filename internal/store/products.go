package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductDTO is the externally exposed projection of a products row.
type ProductDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	ImageURL       *string `json:"imageUrl"`
	Brand          *string `json:"brand"`
	Unit           *string `json:"unit"`
	CategoryID     *string `json:"categoryId"`
	NormalizedName string  `json:"normalizedName"`
}

// ProductSearchQuery carries the validated parameters for a product listing.
// Q is matched against the precomputed search vector with websearch semantics;
// when it is set, ranking replaces the default alphabetical ordering.
type ProductSearchQuery struct {
	Q          *string
	CategoryID *string
	Limit      int
	Offset     int
}

type ProductsStore struct {
	db *pgxpool.Pool
}

const productColumns = `id, name, description, image_url, brand, unit, category_id, normalized_name`

// Search returns a page of products and the true total of matching rows.
func (s *ProductsStore) Search(ctx context.Context, q ProductSearchQuery) ([]ProductDTO, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		where string
		args  []any
	)

	orderBy := `ORDER BY name ASC`
	if q.Q != nil {
		args = append(args, *q.Q)
		where = fmt.Sprintf(`WHERE search_vector @@ websearch_to_tsquery('english', $%d)`, len(args))
		orderBy = fmt.Sprintf(`ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', $%d)) DESC, name ASC`, len(args))
	}
	if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		if where == "" {
			where = fmt.Sprintf(`WHERE category_id = $%d`, len(args))
		} else {
			where += fmt.Sprintf(` AND category_id = $%d`, len(args))
		}
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM products
		%s
		%s
		LIMIT $%d OFFSET $%d;
	`, productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	items := []ProductDTO{}
	var total int
	for rows.Next() {
		var p ProductDTO
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Brand, &p.Unit,
			&p.CategoryID, &p.NormalizedName, &total); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	// Past-the-end page: no rows carry the window total, so count separately.
	if len(items) == 0 && q.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products %s;`, where)
		if err := s.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count products: %w", err)
		}
	}

	return items, total, nil
}

// GetByID fetches a single product; (nil, nil) when it does not exist.
func (s *ProductsStore) GetByID(ctx context.Context, id string) (*ProductDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1;`, productColumns)

	p := &ProductDTO{}
	err := s.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL,
		&p.Brand, &p.Unit, &p.CategoryID, &p.NormalizedName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}
