package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var worksheetColumns = []string{
	"id", "sequence", "created_at", "params", "problems", "problem_count", "model",
}

// worksheetRepo implements WorksheetRepo.
type worksheetRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *worksheetRepo) SaveWorksheet(ctx context.Context, ws *Worksheet) error {
	if ws.ID == "" {
		return fmt.Errorf("save worksheet: missing ID")
	}

	params, err := json.Marshal(ws.Params)
	if err != nil {
		return fmt.Errorf("marshal worksheet params: %w", err)
	}
	problems, err := json.Marshal(ws.Problems)
	if err != nil {
		return fmt.Errorf("marshal worksheet problems: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	createdAt := ws.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args := builder().Insert(tableWorksheets).
		Columns(worksheetColumns...).
		Values(ws.ID, seqNum, createdAt.UnixMilli(), string(params), string(problems), len(ws.Problems), ws.Model).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save worksheet: %w", err)
	}

	ws.Sequence = seqNum
	ws.CreatedAt = time.UnixMilli(createdAt.UnixMilli()).UTC()
	return nil
}

func (r *worksheetRepo) GetWorksheet(ctx context.Context, id string) (*Worksheet, error) {
	b := builder()
	query, args := b.Select(worksheetColumns...).
		From(b.Table(tableWorksheets)).
		Where(entsql.EQ("id", id)).
		Query()

	ws, err := scanWorksheet(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("worksheet %s: %w", id, ErrNotFound)
	}
	return ws, err
}

func (r *worksheetRepo) ListWorksheets(ctx context.Context, opts QueryOpts) ([]Worksheet, error) {
	b := builder()
	sel := b.Select(worksheetColumns...).
		From(b.Table(tableWorksheets)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts, "created_at")

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query worksheets: %w", err)
	}
	defer rows.Close()

	var out []Worksheet
	for rows.Next() {
		ws, err := scanWorksheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ws)
	}
	return out, rows.Err()
}

func (r *worksheetRepo) PruneWorksheets(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	// The first worksheet past the keep window marks the cutoff.
	b := builder()
	query, args := b.Select("sequence").
		From(b.Table(tableWorksheets)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var cutoff int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil // fewer than keep worksheets exist
	}
	if err != nil {
		return 0, fmt.Errorf("query worksheets for prune: %w", err)
	}

	query, args = b.Delete(tableWorksheets).
		Where(entsql.LTE("sequence", cutoff)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune worksheets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune worksheets: %w", err)
	}
	return int(n), nil
}

func scanWorksheet(row rowScanner) (*Worksheet, error) {
	var (
		ws       Worksheet
		ts       int64
		params   string
		problems string
		count    int
	)
	if err := row.Scan(&ws.ID, &ws.Sequence, &ts, &params, &problems, &count, &ws.Model); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan worksheet: %w", err)
	}
	if err := json.Unmarshal([]byte(params), &ws.Params); err != nil {
		return nil, fmt.Errorf("decode worksheet %s params: %w", ws.ID, err)
	}
	if err := json.Unmarshal([]byte(problems), &ws.Problems); err != nil {
		return nil, fmt.Errorf("decode worksheet %s problems: %w", ws.ID, err)
	}
	ws.CreatedAt = time.UnixMilli(ts).UTC()
	return &ws, nil
}
