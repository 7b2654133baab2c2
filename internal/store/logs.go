package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ExtractionLogDTO is the externally exposed projection of an extraction_logs row.
type ExtractionLogDTO struct {
	ID             string          `json:"id"`
	FlyerID        *string         `json:"flyerId"`
	ProductOfferID *string         `json:"productOfferId"`
	ExtractionType string          `json:"extractionType"`
	Status         string          `json:"status"`
	ErrorMessage   *string         `json:"errorMessage"`
	Metadata       json.RawMessage `json:"metadata"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// LLMLogDTO is the externally exposed projection of an llm_logs row.
type LLMLogDTO struct {
	ID             string          `json:"id"`
	FlyerID        *string         `json:"flyerId"`
	ProductOfferID *string         `json:"productOfferId"`
	Model          string          `json:"model"`
	Request        json.RawMessage `json:"request"`
	Response       json.RawMessage `json:"response"`
	Status         string          `json:"status"`
	ErrorMessage   *string         `json:"errorMessage"`
	CostUSD        *float64        `json:"costUsd"`
	DurationMs     *int            `json:"durationMs"`
	TokensInput    *int            `json:"tokensInput"`
	TokensOutput   *int            `json:"tokensOutput"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ExtractionLogQuery carries the validated parameters for an extraction log listing.
type ExtractionLogQuery struct {
	FlyerID *string
	Status  *string
	Limit   int
	Offset  int
}

// LLMLogQuery carries the validated parameters for an LLM call log listing.
type LLMLogQuery struct {
	Model  *string
	Status *string
	Limit  int
	Offset int
}

type LogsStore struct {
	db *pgxpool.Pool
}

// Extraction returns a page of extraction logs, most recent first, and the
// true total of matching rows.
func (s *LogsStore) Extraction(ctx context.Context, q ExtractionLogQuery) ([]ExtractionLogDTO, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if q.FlyerID != nil {
		args = append(args, *q.FlyerID)
		conds = append(conds, fmt.Sprintf("flyer_id = $%d", len(args)))
	}
	if q.Status != nil {
		args = append(args, *q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT id, flyer_id, product_offer_id, extraction_type, status, error_message,
			metadata, created_at, COUNT(*) OVER() AS total_count
		FROM extraction_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;
	`, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list extraction logs: %w", err)
	}
	defer rows.Close()

	items := []ExtractionLogDTO{}
	var total int
	for rows.Next() {
		var l ExtractionLogDTO
		if err := rows.Scan(&l.ID, &l.FlyerID, &l.ProductOfferID, &l.ExtractionType,
			&l.Status, &l.ErrorMessage, &l.Metadata, &l.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan extraction log: %w", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	if len(items) == 0 && q.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM extraction_logs %s;`, where)
		if err := s.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count extraction logs: %w", err)
		}
	}

	return items, total, nil
}

// LLM returns a page of LLM call logs, most recent first, and the true total
// of matching rows.
func (s *LogsStore) LLM(ctx context.Context, q LLMLogQuery) ([]LLMLogDTO, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if q.Model != nil {
		args = append(args, *q.Model)
		conds = append(conds, fmt.Sprintf("model = $%d", len(args)))
	}
	if q.Status != nil {
		args = append(args, *q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, q.Limit, q.Offset)
	query := fmt.Sprintf(`
		SELECT id, flyer_id, product_offer_id, model, request, response, status,
			error_message, cost_usd, duration_ms, tokens_input, tokens_output, created_at,
			COUNT(*) OVER() AS total_count
		FROM llm_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;
	`, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list llm logs: %w", err)
	}
	defer rows.Close()

	items := []LLMLogDTO{}
	var total int
	for rows.Next() {
		var l LLMLogDTO
		if err := rows.Scan(&l.ID, &l.FlyerID, &l.ProductOfferID, &l.Model, &l.Request,
			&l.Response, &l.Status, &l.ErrorMessage, &l.CostUSD, &l.DurationMs,
			&l.TokensInput, &l.TokensOutput, &l.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan llm log: %w", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	if len(items) == 0 && q.Offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM llm_logs %s;`, where)
		if err := s.db.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count llm logs: %w", err)
		}
	}

	return items, total, nil
}
