package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberwise/memberful-go/webhooks"
)

const membersSchema = `
CREATE TABLE IF NOT EXISTS members (
	id BIGINT PRIMARY KEY,
	email TEXT NOT NULL,
	full_name TEXT,
	username TEXT,
	unrestricted_access BOOLEAN NOT NULL DEFAULT FALSE,
	created_at BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// MemberStore mirrors member state from webhook events into Postgres.
type MemberStore struct {
	pool *pgxpool.Pool
}

func NewMemberStore(ctx context.Context, pool *pgxpool.Pool) (*MemberStore, error) {
	if _, err := pool.Exec(ctx, membersSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure members schema: %w", err)
	}
	return &MemberStore{pool: pool}, nil
}

func (s *MemberStore) Upsert(ctx context.Context, m *webhooks.Member) error {
	const query = `
INSERT INTO members (id, email, full_name, username, unrestricted_access, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (id) DO UPDATE SET
	email = EXCLUDED.email,
	full_name = EXCLUDED.full_name,
	username = EXCLUDED.username,
	unrestricted_access = EXCLUDED.unrestricted_access,
	updated_at = now()`

	_, err := s.pool.Exec(ctx, query,
		m.ID, m.Email, m.FullName, m.Username, m.UnrestrictedAccess, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

func (s *MemberStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

// StoredMember is the subset of member state kept in Postgres.
type StoredMember struct {
	ID                 int64
	Email              string
	FullName           *string
	Username           *string
	UnrestrictedAccess bool
	CreatedAt          int64
}

func (s *MemberStore) Get(ctx context.Context, id int64) (*StoredMember, error) {
	const query = `
SELECT id, email, full_name, username, unrestricted_access, created_at
FROM members WHERE id = $1`

	var m StoredMember
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Email, &m.FullName, &m.Username, &m.UnrestrictedAccess, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}
