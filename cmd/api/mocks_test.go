package main

import (
	"context"
	"net/http"
	"net/http/httptest"

	"flyerprice/internal/auth"
	"flyerprice/internal/jobs"
	"flyerprice/internal/store"

	"go.uber.org/zap"
)

// mockStoresStore is a configurable mock for handler tests.
type mockStoresStore struct {
	stores []store.StoreDTO
	err    error
}

func (m *mockStoresStore) List(ctx context.Context) ([]store.StoreDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stores != nil {
		return m.stores, nil
	}
	return []store.StoreDTO{}, nil
}

type mockCategoriesStore struct {
	categories []store.CategoryDTO
	err        error
}

func (m *mockCategoriesStore) List(ctx context.Context) ([]store.CategoryDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.categories != nil {
		return m.categories, nil
	}
	return []store.CategoryDTO{}, nil
}

type mockProductsStore struct {
	products  []store.ProductDTO
	product   *store.ProductDTO
	total     int
	err       error
	lastQuery store.ProductSearchQuery
}

func (m *mockProductsStore) Search(ctx context.Context, q store.ProductSearchQuery) ([]store.ProductDTO, int, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.products != nil {
		return m.products, m.total, nil
	}
	return []store.ProductDTO{}, m.total, nil
}

func (m *mockProductsStore) GetByID(ctx context.Context, id string) (*store.ProductDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.product, nil
}

type mockOffersStore struct {
	offers    []store.OfferDTO
	offer     *store.OfferDTO
	total     int
	err       error
	listCalls int
	lastQuery store.OfferListQuery
}

func (m *mockOffersStore) List(ctx context.Context, q store.OfferListQuery) ([]store.OfferDTO, int, error) {
	m.listCalls++
	m.lastQuery = q
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.offers != nil {
		return m.offers, m.total, nil
	}
	return []store.OfferDTO{}, m.total, nil
}

func (m *mockOffersStore) GetByID(ctx context.Context, id string) (*store.OfferDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.offer, nil
}

type mockFlyersStore struct {
	flyers    []store.FlyerDTO
	flyer     *store.FlyerDTO
	total     int
	err       error
	getCalls  int
	lastQuery store.FlyerListQuery
}

func (m *mockFlyersStore) List(ctx context.Context, q store.FlyerListQuery) ([]store.FlyerDTO, int, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.flyers != nil {
		return m.flyers, m.total, nil
	}
	return []store.FlyerDTO{}, m.total, nil
}

func (m *mockFlyersStore) GetByID(ctx context.Context, id string) (*store.FlyerDTO, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.flyer, nil
}

type mockHistoryStore struct {
	entries   []store.PriceHistoryDTO
	total     int
	err       error
	listCalls int
	lastQuery store.HistoryListQuery
}

func (m *mockHistoryStore) List(ctx context.Context, q store.HistoryListQuery) ([]store.PriceHistoryDTO, int, error) {
	m.listCalls++
	m.lastQuery = q
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.entries != nil {
		return m.entries, m.total, nil
	}
	return []store.PriceHistoryDTO{}, m.total, nil
}

type mockLogsStore struct {
	extraction []store.ExtractionLogDTO
	llm        []store.LLMLogDTO
	total      int
	err        error
}

func (m *mockLogsStore) Extraction(ctx context.Context, q store.ExtractionLogQuery) ([]store.ExtractionLogDTO, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.extraction != nil {
		return m.extraction, m.total, nil
	}
	return []store.ExtractionLogDTO{}, m.total, nil
}

func (m *mockLogsStore) LLM(ctx context.Context, q store.LLMLogQuery) ([]store.LLMLogDTO, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.llm != nil {
		return m.llm, m.total, nil
	}
	return []store.LLMLogDTO{}, m.total, nil
}

type mockStatsStore struct {
	stats []store.ParsingErrorStatDTO
	err   error
}

func (m *mockStatsStore) ParsingErrors(ctx context.Context) ([]store.ParsingErrorStatDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return []store.ParsingErrorStatDTO{}, nil
}

const testJWTSecret = "test-secret"

func newTestApplication() *application {
	return &application{
		config: config{
			env: "test",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "admin"},
				token: tokenConfig{secret: testJWTSecret, iss: "flyerprice"},
			},
		},
		store: store.Storage{
			Stores:     &mockStoresStore{},
			Categories: &mockCategoriesStore{},
			Products:   &mockProductsStore{},
			Offers:     &mockOffersStore{},
			Flyers:     &mockFlyersStore{},
			History:    &mockHistoryStore{},
			Logs:       &mockLogsStore{},
			Stats:      &mockStatsStore{},
		},
		logger:        zap.NewNop().Sugar(),
		authenticator: auth.NewJWTAuthenticator(testJWTSecret, "flyerprice", "flyerprice"),
		jobs:          jobs.NewQueue(),
	}
}

func executeRequest(app *application, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

func bearerToken(app *application, role string) string {
	token, _ := app.authenticator.GenerateToken("7b0c8c5a-9f6f-4f5c-9b63-0a1f6f1d2e3f", role)
	return "Bearer " + token
}
