package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StoreDTO is the externally exposed projection of a stores row.
type StoreDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logoUrl"`
}

type StoresStore struct {
	db *pgxpool.Pool
}

// List returns every store ordered by name.
func (s *StoresStore) List(ctx context.Context) ([]StoreDTO, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, slug, logo_url
		FROM stores
		ORDER BY name ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	items := []StoreDTO{}
	for rows.Next() {
		var st StoreDTO
		if err := rows.Scan(&st.ID, &st.Name, &st.Slug, &st.LogoURL); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		items = append(items, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return items, nil
}
