// Package report writes an optional compilation report into a sqlite
// database: the rewrites applied, the constants interned, the code names
// registered. The report is a debugging artifact; nothing emission-facing
// reads it back, so the session id may be random.
package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pynative/pynative/internal/constpool"
	"github.com/pynative/pynative/internal/context"
	"github.com/pynative/pynative/internal/pipeline"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS rewrites (
	session TEXT NOT NULL,
	node_kind TEXT NOT NULL,
	tag TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS constants (
	session TEXT NOT NULL,
	name TEXT NOT NULL,
	value_type TEXT NOT NULL,
	repr TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS codes (
	session TEXT NOT NULL,
	flavor TEXT NOT NULL,
	name TEXT NOT NULL
);
`

// Store is one open report database with one active session.
type Store struct {
	db      *sql.DB
	session string
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open report database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize report schema: %w", err)
	}

	session := uuid.NewString()
	_, err = db.Exec(
		"INSERT INTO sessions (id, started_at) VALUES (?, ?)",
		session, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot record report session: %w", err)
	}

	return &Store{db: db, session: session}, nil
}

func (s *Store) SessionID() string { return s.session }

func (s *Store) AddRewrite(nodeKind, tag, desc string) error {
	_, err := s.db.Exec(
		"INSERT INTO rewrites (session, node_kind, tag, description) VALUES (?, ?, ?, ?)",
		s.session, nodeKind, tag, desc,
	)
	return err
}

func (s *Store) AddConstant(entry constpool.Entry) error {
	_, err := s.db.Exec(
		"INSERT INTO constants (session, name, value_type, repr) VALUES (?, ?, ?, ?)",
		s.session, entry.Name, string(entry.Type), entry.Value.Repr(),
	)
	return err
}

func (s *Store) AddCode(flavor string, entry context.CodeEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO codes (session, flavor, name) VALUES (?, ?, ?)",
		s.session, flavor, entry.Name,
	)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Write dumps one finished pipeline context into the store.
func (s *Store) Write(ctx *pipeline.Context) error {
	for _, rewrite := range ctx.Applied {
		if err := s.AddRewrite(rewrite.NodeKind, rewrite.Tag, rewrite.Desc); err != nil {
			return err
		}
	}

	if ctx.Global != nil {
		for _, entry := range ctx.Global.Pool().Constants() {
			if err := s.AddConstant(entry); err != nil {
				return err
			}
		}
	}

	if ctx.Module != nil {
		for _, entry := range ctx.Module.FunctionCodes() {
			if err := s.AddCode("function", entry); err != nil {
				return err
			}
		}
		for _, entry := range ctx.Module.ComprehensionCodes() {
			if err := s.AddCode("comprehension", entry); err != nil {
				return err
			}
		}
		for _, entry := range ctx.Module.ClassCodes() {
			if err := s.AddCode("class", entry); err != nil {
				return err
			}
		}
	}

	return nil
}
