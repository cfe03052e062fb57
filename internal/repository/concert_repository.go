// Package repository contains data access logic separated from HTTP handlers.
// This file defines the MySQL backed concert catalog.  The catalog is read
// only: the storefront never writes concerts or tiers and never decrements
// availability.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used for sql.ErrNoRows comparisons

	"github.com/iliyamo/concert-ticketing/internal/model"
)

// ConcertRepo encapsulates all database queries related to concerts and
// their ticket tiers.  It depends on a sql.DB connection which should be
// configured elsewhere.
type ConcertRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewConcertRepo constructs a ConcertRepo with the provided DB handle.
func NewConcertRepo(db *sql.DB) *ConcertRepo {
	return &ConcertRepo{db: db}
}

const concertColumns = "id, title, artist, DATE_FORMAT(date, '%Y-%m-%d'), TIME_FORMAT(start_time, '%H:%i'), venue, city, image_url, description"

func scanConcert(row interface{ Scan(...any) error }, c *model.Concert) error {
	return row.Scan(&c.ID, &c.Title, &c.Artist, &c.Date, &c.Time, &c.Venue, &c.City, &c.Image, &c.Description)
}

// ListAll returns every concert ordered by its catalog position, tiers
// included.
func (r *ConcertRepo) ListAll(ctx context.Context) ([]model.Concert, error) {
	q := "SELECT " + concertColumns + " FROM concerts ORDER BY position, id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Concert
	index := make(map[string]int)
	for rows.Next() {
		var c model.Concert
		if err := scanConcert(rows, &c); err != nil {
			return nil, err
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load all tiers in one query and attach them to their concerts.
	const qt = "SELECT concert_id, id, name, price, description, available FROM ticket_tiers ORDER BY concert_id, position, id"
	trows, err := r.db.QueryContext(ctx, qt)
	if err != nil {
		return nil, err
	}
	defer trows.Close()
	for trows.Next() {
		var concertID string
		var t model.TicketTier
		if err := trows.Scan(&concertID, &t.ID, &t.Name, &t.Price, &t.Description, &t.Available); err != nil {
			return nil, err
		}
		if i, ok := index[concertID]; ok {
			out[i].Tiers = append(out[i].Tiers, t)
		}
	}
	return out, trows.Err()
}

// GetByID fetches a concert and its tiers.  It returns ErrConcertNotFound
// if no row is found.
func (r *ConcertRepo) GetByID(ctx context.Context, id string) (*model.Concert, error) {
	q := "SELECT " + concertColumns + " FROM concerts WHERE id = ?"
	var c model.Concert
	if err := scanConcert(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConcertNotFound
		}
		return nil, err
	}
	tiers, err := r.listTiers(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Tiers = tiers
	return &c, nil
}

func (r *ConcertRepo) listTiers(ctx context.Context, concertID string) ([]model.TicketTier, error) {
	const q = "SELECT id, name, price, description, available FROM ticket_tiers WHERE concert_id = ? ORDER BY position, id"
	rows, err := r.db.QueryContext(ctx, q, concertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tiers []model.TicketTier
	for rows.Next() {
		var t model.TicketTier
		if err := rows.Scan(&t.ID, &t.Name, &t.Price, &t.Description, &t.Available); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}
