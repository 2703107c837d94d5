package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shape-canvas/geom"
	"shape-canvas/typeid"
)

const schema = `
CREATE TABLE IF NOT EXISTS shapes (
	seq    BIGSERIAL,
	id     TEXT PRIMARY KEY,
	kind   TEXT NOT NULL,
	name   TEXT NOT NULL,
	color  JSONB NOT NULL,
	rect   JSONB,
	points JSONB NOT NULL DEFAULT '[]'::jsonb
)`

const columns = `id, kind, name, color, rect, points`

// DefaultTimeout bounds each statement issued by a Postgres store.
const DefaultTimeout = 5 * time.Second

// Postgres stores records in a PostgreSQL table. Subscribers are notified by
// this process after its own writes; changes made by other processes are
// not observed.
type Postgres struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	hub     hub
}

// OpenPostgres connects to databaseURL and creates the shapes table if needed.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Postgres{pool: pool, timeout: DefaultTimeout}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// ctx returns a statement context. Store calls come from the UI thread,
// which has no request context of its own.
func (p *Postgres) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		r    Record
		kind string
	)
	if err := row.Scan(&r.ID, &kind, &r.Name, &r.Color, &r.Rect, &r.Points); err != nil {
		return Record{}, err
	}
	r.Kind = Kind(kind)
	return r, nil
}

func (p *Postgres) Insert(r Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	if r.ID == "" {
		r.ID = typeid.New(string(r.Kind))
	}
	if r.Points == nil {
		r.Points = []geom.Point{}
	}

	ctx, cancel := p.ctx()
	defer cancel()

	_, err := p.pool.Exec(ctx,
		`INSERT INTO shapes (`+columns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, string(r.Kind), r.Name, r.Color, r.Rect, r.Points)
	if err != nil {
		return "", fmt.Errorf("insert shape: %w", err)
	}

	p.hub.added(r)
	return r.ID, nil
}

func (p *Postgres) Update(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Points == nil {
		r.Points = []geom.Point{}
	}

	ctx, cancel := p.ctx()
	defer cancel()

	tag, err := p.pool.Exec(ctx,
		`UPDATE shapes SET kind = $2, name = $3, color = $4, rect = $5, points = $6 WHERE id = $1`,
		r.ID, string(r.Kind), r.Name, r.Color, r.Rect, r.Points)
	if err != nil {
		return fmt.Errorf("update shape: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %q: %w", r.ID, ErrNotFound)
	}

	p.hub.changed(r)
	return nil
}

func (p *Postgres) AppendPoint(id string, pt geom.Point) error {
	ctx, cancel := p.ctx()
	defer cancel()

	row := p.pool.QueryRow(ctx,
		`UPDATE shapes SET points = points || $2::jsonb WHERE id = $1 AND kind = 'poly' RETURNING `+columns,
		id, []geom.Point{pt})
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("append point to %q: %w", id, ErrNotFound)
		}
		return fmt.Errorf("append point: %w", err)
	}

	p.hub.changed(r)
	return nil
}

func (p *Postgres) Remove(id string) error {
	ctx, cancel := p.ctx()
	defer cancel()

	tag, err := p.pool.Exec(ctx, `DELETE FROM shapes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove shape: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}

	p.hub.removed(id)
	return nil
}

func (p *Postgres) Count(kind Kind) (int, error) {
	ctx, cancel := p.ctx()
	defer cancel()

	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM shapes WHERE kind = $1`, string(kind)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shapes: %w", err)
	}
	return n, nil
}

func (p *Postgres) List() ([]Record, error) {
	ctx, cancel := p.ctx()
	defer cancel()

	rows, err := p.pool.Query(ctx, `SELECT `+columns+` FROM shapes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list shapes: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shape: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shapes: %w", err)
	}
	return out, nil
}

func (p *Postgres) Subscribe(l Listener) func() {
	return p.hub.subscribe(l)
}

// Truncate deletes every shape without notifying subscribers.
func (p *Postgres) Truncate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `TRUNCATE shapes`); err != nil {
		return fmt.Errorf("truncate shapes: %w", err)
	}
	return nil
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
	_ Store = (*Postgres)(nil)
)
