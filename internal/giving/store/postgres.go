package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandgate/internal/giving/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/sentinel"
	platformtx "brandgate/pkg/platform/tx"
)

// Postgres persists foundations and donations in PostgreSQL. Settlement runs
// in a single transaction so the ledger append and the raised-amount bump
// commit together.
type Postgres struct {
	db *sql.DB
}

var _ FoundationStore = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the giving schema if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS foundations (
			id             UUID PRIMARY KEY,
			brand_id       UUID NOT NULL,
			title          TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			image_url      TEXT NOT NULL DEFAULT '',
			gallery_images JSONB NOT NULL DEFAULT '[]',
			goal_amount    BIGINT NOT NULL,
			raised_amount  BIGINT NOT NULL DEFAULT 0,
			is_active      BOOLEAN NOT NULL DEFAULT TRUE,
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_foundations_brand ON foundations (brand_id);

		CREATE TABLE IF NOT EXISTS donations (
			id            UUID PRIMARY KEY,
			brand_id      UUID NOT NULL,
			foundation_id UUID REFERENCES foundations (id),
			donor_name    TEXT NOT NULL,
			donor_email   TEXT NOT NULL DEFAULT '',
			amount        BIGINT NOT NULL,
			message       TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_donations_brand ON donations (brand_id, created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("migrate giving schema: %w", err)
	}
	return nil
}

func (s *Postgres) CreateFoundation(ctx context.Context, f *models.Foundation) error {
	gallery, err := json.Marshal(f.GalleryImages)
	if err != nil {
		return fmt.Errorf("encode gallery images: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO foundations (id, brand_id, title, description, image_url, gallery_images,
			goal_amount, raised_amount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.UUID(f.ID), uuid.UUID(f.BrandID), f.Title, f.Description, f.ImageURL, gallery,
		f.GoalAmount.Cents(), f.RaisedAmount.Cents(), f.IsActive, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert foundation: %w", err)
	}
	return nil
}

const foundationColumns = `id, brand_id, title, description, image_url, gallery_images,
	goal_amount, raised_amount, is_active, created_at, updated_at`

func scanFoundation(row interface{ Scan(...any) error }) (*models.Foundation, error) {
	var (
		f       models.Foundation
		fid     uuid.UUID
		bid     uuid.UUID
		gallery []byte
		goal    int64
		raised  int64
	)
	err := row.Scan(&fid, &bid, &f.Title, &f.Description, &f.ImageURL, &gallery,
		&goal, &raised, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.ID = id.FoundationID(fid)
	f.BrandID = id.BrandID(bid)
	f.GoalAmount = money.FromCents(goal)
	f.RaisedAmount = money.FromCents(raised)
	if err := json.Unmarshal(gallery, &f.GalleryImages); err != nil {
		return nil, fmt.Errorf("decode gallery images: %w", err)
	}
	return &f, nil
}

func (s *Postgres) FindFoundation(ctx context.Context, foundationID id.FoundationID) (*models.Foundation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+foundationColumns+` FROM foundations WHERE id = $1`,
		uuid.UUID(foundationID),
	)
	f, err := scanFoundation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find foundation: %w", err)
	}
	return f, nil
}

func (s *Postgres) ListFoundations(ctx context.Context, brandID id.BrandID) ([]*models.Foundation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+foundationColumns+` FROM foundations WHERE brand_id = $1 ORDER BY created_at DESC`,
		uuid.UUID(brandID),
	)
	if err != nil {
		return nil, fmt.Errorf("list foundations: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Foundation, 0)
	for rows.Next() {
		f, err := scanFoundation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan foundation: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list foundations: %w", err)
	}
	return out, nil
}

func (s *Postgres) ExecuteFoundation(ctx context.Context, brandID id.BrandID, foundationID id.FoundationID,
	validate func(*models.Foundation) error, mutate func(*models.Foundation)) (*models.Foundation, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin foundation update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+foundationColumns+` FROM foundations WHERE id = $1 AND brand_id = $2 FOR UPDATE`,
		uuid.UUID(foundationID), uuid.UUID(brandID),
	)
	f, err := scanFoundation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load foundation: %w", err)
	}

	if err := validate(f); err != nil {
		return nil, err
	}
	mutate(f)

	gallery, err := json.Marshal(f.GalleryImages)
	if err != nil {
		return nil, fmt.Errorf("encode gallery images: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE foundations
		SET title = $1, description = $2, image_url = $3, gallery_images = $4,
			goal_amount = $5, is_active = $6, updated_at = $7
		WHERE id = $8`,
		f.Title, f.Description, f.ImageURL, gallery,
		f.GoalAmount.Cents(), f.IsActive, f.UpdatedAt, uuid.UUID(f.ID),
	)
	if err != nil {
		return nil, fmt.Errorf("update foundation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit foundation update: %w", err)
	}
	return f, nil
}

func (s *Postgres) DeleteFoundation(ctx context.Context, brandID id.BrandID, foundationID id.FoundationID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM foundations WHERE id = $1 AND brand_id = $2`,
		uuid.UUID(foundationID), uuid.UUID(brandID),
	)
	if err != nil {
		return fmt.Errorf("delete foundation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete foundation: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// SettleDonation appends the donation and bumps the foundation's raised
// amount in one transaction. When the context already carries an open
// transaction the writes join it and the caller owns the commit, so the
// ledger entry lands atomically with whatever marker the caller writes.
func (s *Postgres) SettleDonation(ctx context.Context, d *models.Donation) error {
	if outer, ok := platformtx.From(ctx); ok {
		return settleDonation(ctx, outer, d)
	}

	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement: %w", err)
	}
	defer txn.Rollback()

	if err := settleDonation(ctx, txn, d); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit settlement: %w", err)
	}
	return nil
}

func settleDonation(ctx context.Context, tx *sql.Tx, d *models.Donation) error {
	if d.FoundationID != nil {
		res, err := tx.ExecContext(ctx, `
			UPDATE foundations
			SET raised_amount = raised_amount + $1, updated_at = $2
			WHERE id = $3 AND brand_id = $4`,
			d.Amount.Cents(), d.CreatedAt, uuid.UUID(*d.FoundationID), uuid.UUID(d.BrandID),
		)
		if err != nil {
			return fmt.Errorf("increment raised amount: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("increment raised amount: %w", err)
		}
		if affected == 0 {
			return sentinel.ErrNotFound
		}
	}

	var foundationID any
	if d.FoundationID != nil {
		foundationID = uuid.UUID(*d.FoundationID)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO donations (id, brand_id, foundation_id, donor_name, donor_email, amount, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.UUID(d.ID), uuid.UUID(d.BrandID), foundationID,
		d.DonorName, d.DonorEmail, d.Amount.Cents(), d.Message, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (s *Postgres) ListDonations(ctx context.Context, brandID id.BrandID, foundationID *id.FoundationID) ([]*models.Donation, error) {
	query := `SELECT id, brand_id, foundation_id, donor_name, donor_email, amount, message, created_at
		FROM donations WHERE brand_id = $1`
	args := []any{uuid.UUID(brandID)}
	if foundationID != nil {
		query += ` AND foundation_id = $2`
		args = append(args, uuid.UUID(*foundationID))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Donation, 0)
	for rows.Next() {
		var (
			d      models.Donation
			did    uuid.UUID
			bid    uuid.UUID
			fid    sql.Null[uuid.UUID]
			amount int64
		)
		err := rows.Scan(&did, &bid, &fid, &d.DonorName, &d.DonorEmail, &amount, &d.Message, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		d.ID = id.DonationID(did)
		d.BrandID = id.BrandID(bid)
		d.Amount = money.FromCents(amount)
		if fid.Valid {
			f := id.FoundationID(fid.V)
			d.FoundationID = &f
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return out, nil
}
