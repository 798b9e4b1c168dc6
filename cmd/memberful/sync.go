package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/memberwise/memberful-go/webhooks"
)

const syncSchema = `
CREATE TABLE IF NOT EXISTS members (
	id INTEGER PRIMARY KEY,
	email TEXT NOT NULL,
	full_name TEXT,
	username TEXT,
	unrestricted_access INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS subscriptions (
	id INTEGER PRIMARY KEY,
	member_id INTEGER NOT NULL,
	plan_id INTEGER NOT NULL,
	plan_name TEXT NOT NULL,
	active INTEGER NOT NULL,
	autorenew INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	expires_at TEXT NOT NULL
);`

func syncCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror members and subscriptions into a local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient()
			if err != nil {
				return err
			}

			db, err := sql.Open("sqlite3", dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			if _, err := db.ExecContext(ctx, syncSchema); err != nil {
				return fmt.Errorf("failed to ensure schema: %w", err)
			}

			var (
				members       []webhooks.Member
				subscriptions []webhooks.Subscription
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				members, err = client.Members.ListAll(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				subscriptions, err = client.Subscriptions.ListAll(gctx, nil)
				return err
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("failed to fetch data: %w", err)
			}

			if err := storeMembers(ctx, db, members); err != nil {
				return err
			}
			if err := storeSubscriptions(ctx, db, subscriptions); err != nil {
				return err
			}

			fmt.Printf("synced %d members and %d subscriptions to %s\n",
				len(members), len(subscriptions), dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "memberful.db", "path to the local database")
	return cmd
}

func storeMembers(ctx context.Context, db *sql.DB, members []webhooks.Member) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT OR REPLACE INTO members (id, email, full_name, username, unrestricted_access, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

	for i := range members {
		m := &members[i]
		if _, err := tx.ExecContext(ctx, query,
			m.ID, m.Email, m.FullName, m.Username, m.UnrestrictedAccess, m.CreatedAt); err != nil {
			return fmt.Errorf("failed to store member %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit members: %w", err)
	}
	return nil
}

func storeSubscriptions(ctx context.Context, db *sql.DB, subscriptions []webhooks.Subscription) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT OR REPLACE INTO subscriptions (id, member_id, plan_id, plan_name, active, autorenew, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range subscriptions {
		s := &subscriptions[i]
		if _, err := tx.ExecContext(ctx, query,
			s.ID, s.Member.ID, s.Plan.ID, s.Plan.Name, s.Active, s.Autorenew, s.CreatedAt, s.ExpiresAt); err != nil {
			return fmt.Errorf("failed to store subscription %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit subscriptions: %w", err)
	}
	return nil
}
