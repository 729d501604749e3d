package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brandgate/internal/payments/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/sentinel"
	platformtx "brandgate/pkg/platform/tx"
)

// Postgres persists transactions in PostgreSQL. SettlePaid takes a row lock
// on the session so concurrent polls serialize; the settlement callback runs
// while the lock is held and the paid transition commits only after it
// succeeds.
type Postgres struct {
	db *sql.DB
}

var _ TransactionStore = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the payments schema if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS payment_transactions (
			id            UUID PRIMARY KEY,
			brand_id      UUID NOT NULL,
			session_id    TEXT NOT NULL UNIQUE,
			member_id     UUID,
			foundation_id UUID,
			category      TEXT NOT NULL DEFAULT '',
			donor_name    TEXT NOT NULL DEFAULT '',
			donor_email   TEXT NOT NULL DEFAULT '',
			amount        BIGINT NOT NULL,
			message       TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL,
			settled       BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMPTZ NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transactions_brand ON payment_transactions (brand_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_transactions_pending ON payment_transactions (created_at) WHERE status = 'pending';
	`)
	if err != nil {
		return fmt.Errorf("migrate payments schema: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, t *models.Transaction) error {
	var memberID, foundationID any
	if t.MemberID != nil {
		memberID = uuid.UUID(*t.MemberID)
	}
	if t.FoundationID != nil {
		foundationID = uuid.UUID(*t.FoundationID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_transactions (id, brand_id, session_id, member_id, foundation_id,
			category, donor_name, donor_email, amount, message, status, settled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		uuid.UUID(t.ID), uuid.UUID(t.BrandID), t.SessionID, memberID, foundationID,
		t.Category, t.DonorName, t.DonorEmail, t.Amount.Cents(), t.Message, string(t.Status), t.Settled,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

const transactionColumns = `id, brand_id, session_id, member_id, foundation_id,
	category, donor_name, donor_email, amount, message, status, settled, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var (
		t            models.Transaction
		tid          uuid.UUID
		bid          uuid.UUID
		memberID     sql.Null[uuid.UUID]
		foundationID sql.Null[uuid.UUID]
		amount       int64
		status       string
	)
	err := row.Scan(&tid, &bid, &t.SessionID, &memberID, &foundationID,
		&t.Category, &t.DonorName, &t.DonorEmail, &amount, &t.Message, &status, &t.Settled,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.ID = id.TransactionID(tid)
	t.BrandID = id.BrandID(bid)
	t.Amount = money.FromCents(amount)
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	t.Status = parsed
	if memberID.Valid {
		m := id.MemberID(memberID.V)
		t.MemberID = &m
	}
	if foundationID.Valid {
		f := id.FoundationID(foundationID.V)
		t.FoundationID = &f
	}
	return &t, nil
}

func (s *Postgres) FindBySession(ctx context.Context, sessionID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions WHERE session_id = $1`,
		sessionID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return t, nil
}

func (s *Postgres) listQuery(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *Postgres) ListByMember(ctx context.Context, brandID id.BrandID, memberID id.MemberID) ([]*models.Transaction, error) {
	return s.listQuery(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions
		WHERE brand_id = $1 AND member_id = $2 ORDER BY created_at DESC`,
		uuid.UUID(brandID), uuid.UUID(memberID),
	)
}

func (s *Postgres) ListByBrand(ctx context.Context, brandID id.BrandID) ([]*models.Transaction, error) {
	return s.listQuery(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions
		WHERE brand_id = $1 ORDER BY created_at DESC`,
		uuid.UUID(brandID),
	)
}

func (s *Postgres) ListPendingSessions(ctx context.Context, createdBefore time.Time, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id FROM payment_transactions
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2`,
		createdBefore, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending sessions: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var sessionID string
		if err := rows.Scan(&sessionID); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		out = append(out, sessionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending sessions: %w", err)
	}
	return out, nil
}

func (s *Postgres) SettlePaid(ctx context.Context, sessionID string, now time.Time, apply func(context.Context, *models.Transaction) error) (*models.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin settlement: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions WHERE session_id = $1 FOR UPDATE`,
		sessionID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}

	if t.Status == models.StatusPaid {
		return t, nil
	}
	if err := t.CanTransition(models.StatusPaid); err != nil {
		return nil, err
	}

	// apply sees this transaction through the context, so a ledger write it
	// performs commits atomically with the settled marker below.
	if err := apply(platformtx.WithTx(ctx, tx), t.Clone()); err != nil {
		return nil, err
	}

	t.Status = models.StatusPaid
	t.Settled = true
	t.UpdatedAt = now
	_, err = tx.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status = $1, settled = TRUE, updated_at = $2
		WHERE session_id = $3`,
		string(models.StatusPaid), now, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark transaction paid: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}
	return t, nil
}

func (s *Postgres) Transition(ctx context.Context, sessionID string, to models.Status, now time.Time) (*models.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM payment_transactions WHERE session_id = $1 FOR UPDATE`,
		sessionID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}

	if t.Status == to {
		return t, nil
	}
	if err := t.CanTransition(to); err != nil {
		return nil, err
	}

	t.Status = to
	t.UpdatedAt = now
	_, err = tx.ExecContext(ctx, `
		UPDATE payment_transactions SET status = $1, updated_at = $2 WHERE session_id = $3`,
		string(to), now, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return t, nil
}
