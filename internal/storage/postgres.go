package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultDocumentID names the document row/item when none is configured.
const DefaultDocumentID = "contacts"

const (
	createDocumentTable = `CREATE TABLE IF NOT EXISTS contact_documents (
	id         TEXT PRIMARY KEY,
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	selectDocument = `SELECT body FROM contact_documents WHERE id = $1`

	upsertDocument = `INSERT INTO contact_documents (id, body, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
)

// PgxConn is the subset of *pgxpool.Pool used by Postgres.
type PgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres keeps the contact document in one JSONB row.
type Postgres struct {
	db    PgxConn
	docID string
}

// NewPostgres returns a backend storing the document under docID.
func NewPostgres(db PgxConn, docID string) *Postgres {
	if docID == "" {
		docID = DefaultDocumentID
	}
	return &Postgres{db: db, docID: docID}
}

// Load creates the table if needed and returns the document, inserting an
// empty one when the row does not exist.
func (p *Postgres) Load(ctx context.Context) (map[string]core.Contact, error) {
	if _, err := p.db.Exec(ctx, createDocumentTable); err != nil {
		return nil, fmt.Errorf("create contact_documents: %w", err)
	}

	var body []byte
	err := p.db.QueryRow(ctx, selectDocument, p.docID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		doc := make(map[string]core.Contact)
		if err := p.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select document %q: %w", p.docID, err)
	}

	doc := make(map[string]core.Contact)
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document %q: %w", p.docID, err)
	}
	return doc, nil
}

// Save upserts the whole document.
func (p *Postgres) Save(ctx context.Context, doc map[string]core.Contact) error {
	if doc == nil {
		doc = map[string]core.Contact{}
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode contacts: %w", err)
	}
	if _, err := p.db.Exec(ctx, upsertDocument, p.docID, string(body)); err != nil {
		return fmt.Errorf("upsert document %q: %w", p.docID, err)
	}
	return nil
}
