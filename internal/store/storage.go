package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

// Storage aggregates the per-resource stores. Every list call returns the page
// of DTOs plus the exact total of matching rows; every GetByID returns
// (nil, nil) when the row does not exist so callers can map it to 404.
type Storage struct {
	Stores interface {
		List(ctx context.Context) ([]StoreDTO, error)
	}
	Categories interface {
		List(ctx context.Context) ([]CategoryDTO, error)
	}
	Products interface {
		Search(ctx context.Context, q ProductSearchQuery) ([]ProductDTO, int, error)
		GetByID(ctx context.Context, id string) (*ProductDTO, error)
	}
	Offers interface {
		List(ctx context.Context, q OfferListQuery) ([]OfferDTO, int, error)
		GetByID(ctx context.Context, id string) (*OfferDTO, error)
	}
	Flyers interface {
		List(ctx context.Context, q FlyerListQuery) ([]FlyerDTO, int, error)
		GetByID(ctx context.Context, id string) (*FlyerDTO, error)
	}
	History interface {
		List(ctx context.Context, q HistoryListQuery) ([]PriceHistoryDTO, int, error)
	}
	Logs interface {
		Extraction(ctx context.Context, q ExtractionLogQuery) ([]ExtractionLogDTO, int, error)
		LLM(ctx context.Context, q LLMLogQuery) ([]LLMLogDTO, int, error)
	}
	Stats interface {
		ParsingErrors(ctx context.Context) ([]ParsingErrorStatDTO, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Stores:     &StoresStore{db},
		Categories: &CategoriesStore{db},
		Products:   &ProductsStore{db},
		Offers:     &OffersStore{db},
		Flyers:     &FlyersStore{db},
		History:    &HistoryStore{db},
		Logs:       &LogsStore{db},
		Stats:      &StatsStore{db},
	}
}
