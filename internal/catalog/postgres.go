package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

// Postgres reads the athlete pool from an external reference table, for
// deployments that maintain their own player/price data.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pgx pool against the given DSN and verifies it with
// a short ping.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("catalog db ping error: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Lots loads the full pool ordered by base price, most expensive first, the
// order auctioneers expect marquee sets in.
func (p *Postgres) Lots(ctx context.Context) ([]models.Lot, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT name, role, overseas, base_price, bid_step, batting, bowling, luck
		FROM athletes
		ORDER BY base_price DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query athletes: %w", err)
	}
	defer rows.Close()

	var lots []models.Lot
	for rows.Next() {
		var l models.Lot
		var role string
		if err := rows.Scan(&l.Name, &role, &l.Overseas, &l.BasePrice, &l.Step,
			&l.Skill.Batting, &l.Skill.Bowling, &l.Skill.Luck); err != nil {
			return nil, fmt.Errorf("failed to scan athlete row: %w", err)
		}
		l.Role = models.Role(role)
		l.Status = models.LotPending
		lots = append(lots, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("athlete rows: %w", err)
	}
	return lots, nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
