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

// RouteRepo defines the persistence operations for Routes.
type RouteRepo interface {
	// Create inserts a new route and returns the persisted record.
	// Returns domain.ErrNotFound if the referenced vendor does not exist
	// (enforced by the foreign key, not a separate read).
	Create(ctx context.Context, route domain.Route) (domain.Route, error)

	// CreateBulk inserts several routes in one transaction. All-or-nothing:
	// a failure at any element rolls back the whole batch.
	CreateBulk(ctx context.Context, routes []domain.Route) ([]domain.Route, error)

	// GetByID retrieves a single route by its UUID primary key.
	// Returns domain.ErrNotFound if no route with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Route, error)

	// List returns every route ordered by vendor_id then origin/destination.
	// The directory aggregation groups them by vendor in memory.
	List(ctx context.Context) ([]domain.Route, error)

	// ListByVendorID returns all routes belonging to one vendor.
	ListByVendorID(ctx context.Context, vendorID uuid.UUID) ([]domain.Route, error)

	// Update overwrites the mutable fields of an existing route and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, route domain.Route) (domain.Route, error)

	// Delete removes a route by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgRouteRepo is the Postgres implementation of RouteRepo.
type pgRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided db connection.
func NewRouteRepo(db db) RouteRepo {
	return &pgRouteRepo{db: db}
}

const routeColumns = `id, vendor_id, origin, destination, departure_minutes, arrival_minutes,
		duration, price, available_seats, vehicle_layout, vehicle_type, vehicle_features,
		vehicle_seats, created_at, updated_at`

// Create inserts a new route row and returns the full persisted record.
func (r *pgRouteRepo) Create(ctx context.Context, route domain.Route) (domain.Route, error) {
	const q = `
		INSERT INTO routes (vendor_id, origin, destination, departure_minutes, arrival_minutes,
			duration, price, available_seats, vehicle_layout, vehicle_type, vehicle_features, vehicle_seats)
		VALUES (@vendor_id, @origin, @destination, @departure_minutes, @arrival_minutes,
			@duration, @price, @available_seats, @vehicle_layout, @vehicle_type, @vehicle_features, @vehicle_seats)
		RETURNING ` + routeColumns

	args := routeArgs(route)
	args["vendor_id"] = route.VendorID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRoute(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Route{}, fmt.Errorf("repo.RouteRepo.Create: vendor: %w", domain.ErrNotFound)
		}
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Create: %w", err)
	}
	return result, nil
}

// CreateBulk inserts all routes inside a single transaction, so a failure
// at any element leaves no rows behind. The error names the failing element.
func (r *pgRouteRepo) CreateBulk(ctx context.Context, routes []domain.Route) ([]domain.Route, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.CreateBulk: begin: %w", err)
	}
	// No-op once Commit has succeeded.
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := pgRouteRepo{db: tx}
	created := make([]domain.Route, 0, len(routes))
	for i, rt := range routes {
		result, err := txRepo.Create(ctx, rt)
		if err != nil {
			return nil, fmt.Errorf("repo.RouteRepo.CreateBulk: route %d: %w", i, err)
		}
		created = append(created, result)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.CreateBulk: commit: %w", err)
	}
	return created, nil
}

// GetByID retrieves a route by primary key.
func (r *pgRouteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Route, error) {
	const q = `SELECT ` + routeColumns + ` FROM routes WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRoute(row)
	if err != nil {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all routes in a stable order.
func (r *pgRouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	const q = `SELECT ` + routeColumns + ` FROM routes ORDER BY vendor_id, origin, destination, id`

	return r.queryRoutes(ctx, "List", q, nil)
}

// ListByVendorID returns all routes belonging to the given vendor.
func (r *pgRouteRepo) ListByVendorID(ctx context.Context, vendorID uuid.UUID) ([]domain.Route, error) {
	const q = `SELECT ` + routeColumns + ` FROM routes
		WHERE vendor_id = @vendor_id
		ORDER BY origin, destination, id`

	return r.queryRoutes(ctx, "ListByVendorID", q, pgx.NamedArgs{"vendor_id": vendorID})
}

// Update overwrites the mutable fields of a route and returns the updated record.
// The owning vendor reference is immutable.
func (r *pgRouteRepo) Update(ctx context.Context, route domain.Route) (domain.Route, error) {
	const q = `
		UPDATE routes
		SET origin            = @origin,
		    destination       = @destination,
		    departure_minutes = @departure_minutes,
		    arrival_minutes   = @arrival_minutes,
		    duration          = @duration,
		    price             = @price,
		    available_seats   = @available_seats,
		    vehicle_layout    = @vehicle_layout,
		    vehicle_type      = @vehicle_type,
		    vehicle_features  = @vehicle_features,
		    vehicle_seats     = @vehicle_seats,
		    updated_at        = now()
		WHERE id = @id
		RETURNING ` + routeColumns

	args := routeArgs(route)
	args["id"] = route.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRoute(row)
	if err != nil {
		return domain.Route{}, fmt.Errorf("repo.RouteRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a route by primary key.
func (r *pgRouteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM routes WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RouteRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RouteRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// queryRoutes runs a multi-row route query and scans the results.
func (r *pgRouteRepo) queryRoutes(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Route, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RouteRepo.%s: scan: %w", op, err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.%s: rows: %w", op, err)
	}

	return routes, nil
}

// routeArgs maps the mutable route fields to named SQL arguments.
func routeArgs(rt domain.Route) pgx.NamedArgs {
	return pgx.NamedArgs{
		"origin":            rt.Origin,
		"destination":       rt.Destination,
		"departure_minutes": minutesArg(rt.DepartureTime),
		"arrival_minutes":   minutesArg(rt.ArrivalTime),
		"duration":          rt.Duration,
		"price":             rt.Price,
		"available_seats":   rt.AvailableSeats,
		"vehicle_layout":    rt.Vehicle.Layout,
		"vehicle_type":      rt.Vehicle.Type,
		"vehicle_features":  rt.Vehicle.Features,
		"vehicle_seats":     rt.Vehicle.Seats,
	}
}

// minutesArg converts an optional TimeOfDay to a nullable integer argument.
func minutesArg(t *domain.TimeOfDay) *int {
	if t == nil {
		return nil
	}
	m := int(*t)
	return &m
}

// scanRoute maps a single database row into a domain.Route.
// Times of day are stored as minutes-since-midnight smallints.
func scanRoute(s scanner) (domain.Route, error) {
	var (
		rt       domain.Route
		id       pgtype.UUID
		vendorID pgtype.UUID
		dep, arr pgtype.Int4
	)

	err := s.Scan(&id, &vendorID, &rt.Origin, &rt.Destination, &dep, &arr,
		&rt.Duration, &rt.Price, &rt.AvailableSeats, &rt.Vehicle.Layout, &rt.Vehicle.Type,
		&rt.Vehicle.Features, &rt.Vehicle.Seats, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Route{}, domain.ErrNotFound
		}
		return domain.Route{}, err
	}

	rt.ID = uuid.UUID(id.Bytes)
	rt.VendorID = uuid.UUID(vendorID.Bytes)
	if dep.Valid {
		t := domain.TimeOfDay(dep.Int32)
		rt.DepartureTime = &t
	}
	if arr.Valid {
		t := domain.TimeOfDay(arr.Int32)
		rt.ArrivalTime = &t
	}

	return rt, nil
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
