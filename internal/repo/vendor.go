// Package repo contains all database access logic for the LogiRate API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/logirate/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin is included so the bulk operations can run atomically. On a pgx.Tx
// it opens a savepoint, so the tests' rollback isolation still holds.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// VendorRepo defines the persistence operations for Vendors.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the services to be unit-tested with mocks.
type VendorRepo interface {
	// Create inserts a new vendor and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)

	// CreateBulk inserts several vendors in one transaction. All-or-nothing:
	// a failure at any element rolls back the whole batch.
	CreateBulk(ctx context.Context, vendors []domain.Vendor) ([]domain.Vendor, error)

	// GetByID retrieves a single vendor by its UUID primary key.
	// Returns domain.ErrNotFound if no vendor with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vendor, error)

	// List returns all vendors ordered by name.
	List(ctx context.Context) ([]domain.Vendor, error)

	// Update overwrites the mutable fields of an existing vendor and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error)

	// Delete removes a vendor by ID along with its routes (ON DELETE CASCADE).
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// RecalculateRating recomputes the vendor's aggregate rating and rating
	// count from its current vendor reviews in a single statement.
	RecalculateRating(ctx context.Context, id uuid.UUID) error
}

// pgVendorRepo is the Postgres implementation of VendorRepo.
type pgVendorRepo struct {
	db db
}

// NewVendorRepo constructs a VendorRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVendorRepo(db db) VendorRepo {
	return &pgVendorRepo{db: db}
}

const vendorColumns = `id, name, logo, description, services,
		contact_email, contact_phone, contact_website, contact_address,
		rating, rating_count, is_verified, created_at, updated_at`

// Create inserts a new vendor row and returns the full persisted record.
func (r *pgVendorRepo) Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	const q = `
		INSERT INTO vendors (name, logo, description, services,
			contact_email, contact_phone, contact_website, contact_address, is_verified)
		VALUES (@name, @logo, @description, @services,
			@contact_email, @contact_phone, @contact_website, @contact_address, @is_verified)
		RETURNING ` + vendorColumns

	row := r.db.QueryRow(ctx, q, vendorArgs(vendor))
	result, err := scanVendor(row)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Create: %w", err)
	}
	return result, nil
}

// CreateBulk inserts all vendors inside a single transaction, so a failure
// at any element leaves no rows behind. The error names the failing element.
func (r *pgVendorRepo) CreateBulk(ctx context.Context, vendors []domain.Vendor) ([]domain.Vendor, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.CreateBulk: begin: %w", err)
	}
	// No-op once Commit has succeeded.
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := pgVendorRepo{db: tx}
	created := make([]domain.Vendor, 0, len(vendors))
	for i, v := range vendors {
		result, err := txRepo.Create(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("repo.VendorRepo.CreateBulk: vendor %d: %w", i, err)
		}
		created = append(created, result)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.CreateBulk: commit: %w", err)
	}
	return created, nil
}

// GetByID retrieves a vendor by primary key.
func (r *pgVendorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vendor, error) {
	const q = `SELECT ` + vendorColumns + ` FROM vendors WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVendor(row)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all vendors ordered by name for deterministic directory output.
func (r *pgVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	const q = `SELECT ` + vendorColumns + ` FROM vendors ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.List: %w", err)
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VendorRepo.List: scan: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.List: rows: %w", err)
	}

	return vendors, nil
}

// Update overwrites the mutable fields of a vendor and returns the updated record.
// Rating aggregates are not touched here — see RecalculateRating.
func (r *pgVendorRepo) Update(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	const q = `
		UPDATE vendors
		SET name            = @name,
		    logo            = @logo,
		    description     = @description,
		    services        = @services,
		    contact_email   = @contact_email,
		    contact_phone   = @contact_phone,
		    contact_website = @contact_website,
		    contact_address = @contact_address,
		    is_verified     = @is_verified,
		    updated_at      = now()
		WHERE id = @id
		RETURNING ` + vendorColumns

	args := vendorArgs(vendor)
	args["id"] = vendor.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVendor(row)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vendor by primary key.
func (r *pgVendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM vendors WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VendorRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VendorRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// RecalculateRating recomputes rating/rating_count from the reviews table.
// Running it as one statement keeps the aggregate consistent with whatever
// reviews are committed at the time, regardless of concurrent mutations.
func (r *pgVendorRepo) RecalculateRating(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE vendors v
		SET rating = COALESCE(agg.avg_rating, 0),
		    rating_count = COALESCE(agg.n, 0)
		FROM (
			SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS n
			FROM reviews
			WHERE target_kind = 'vendor' AND target_id = @id
		) agg
		WHERE v.id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VendorRepo.RecalculateRating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VendorRepo.RecalculateRating: %w", domain.ErrNotFound)
	}
	return nil
}

// vendorArgs maps the client-writable vendor fields to named SQL arguments.
func vendorArgs(v domain.Vendor) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":            v.Name,
		"logo":            v.Logo,
		"description":     v.Description,
		"services":        v.Services,
		"contact_email":   v.ContactInfo.Email,
		"contact_phone":   v.ContactInfo.Phone,
		"contact_website": v.ContactInfo.Website,
		"contact_address": v.ContactInfo.Address,
		"is_verified":     v.IsVerified,
	}
}

// scanVendor maps a single database row into a domain.Vendor.
func scanVendor(s scanner) (domain.Vendor, error) {
	var (
		v  domain.Vendor
		id pgtype.UUID
	)

	err := s.Scan(&id, &v.Name, &v.Logo, &v.Description, &v.Services,
		&v.ContactInfo.Email, &v.ContactInfo.Phone, &v.ContactInfo.Website, &v.ContactInfo.Address,
		&v.Rating, &v.RatingCount, &v.IsVerified, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Vendor{}, domain.ErrNotFound
		}
		return domain.Vendor{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	return v, nil
}
