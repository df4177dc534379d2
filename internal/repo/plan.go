// Package repo contains all database access logic for the Packmate API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kliang/packmate/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo defines the persistence operations for plan snapshots.
// Every read and write is scoped by userID; a plan is only ever reachable by
// its owner. Save replaces the item and activity collections whole — the
// snapshot is the unit of persistence, there are no per-item writes.
type PlanRepo interface {
	// Create inserts a new plan and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// GetByID retrieves a plan by id, scoped to the given user.
	// Returns domain.ErrNotFound if no plan with that id exists for that user.
	GetByID(ctx context.Context, userID int64, planID uuid.UUID) (domain.Plan, error)

	// ListByUser returns all of a user's plans ordered by start_date descending.
	ListByUser(ctx context.Context, userID int64) ([]domain.Plan, error)

	// Save overwrites the mutable parts of a plan — trip dates plus the whole
	// item/activity snapshot — and returns the updated record.
	// Returns domain.ErrNotFound if the plan does not exist for that user.
	Save(ctx context.Context, plan domain.Plan) (domain.Plan, error)

	// Delete removes a plan by id, scoped to the given user.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID int64, planID uuid.UUID) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, user_id, trip_name, destination_label, destination_value,
	       start_date, end_date, women, men, children, climate,
	       items, activities, created_at, updated_at`

func (r *pgPlanRepo) Create(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		INSERT INTO plans (user_id, trip_name, destination_label, destination_value,
		                   start_date, end_date, women, men, children, climate,
		                   items, activities)
		VALUES (@user_id, @trip_name, @destination_label, @destination_value,
		        @start_date, @end_date, @women, @men, @children, @climate,
		        @items, @activities)
		RETURNING ` + planColumns

	args, err := planArgs(plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlanRepo) GetByID(ctx context.Context, userID int64, planID uuid.UUID) (domain.Plan, error) {
	const q = `
		SELECT ` + planColumns + `
		FROM plans
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": planID, "user_id": userID})
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns the user's plan history, most recent trip first.
func (r *pgPlanRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Plan, error) {
	const q = `
		SELECT ` + planColumns + `
		FROM plans
		WHERE user_id = @user_id
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlanRepo.ListByUser: scan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.ListByUser: rows: %w", err)
	}
	return plans, nil
}

func (r *pgPlanRepo) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	const q = `
		UPDATE plans
		SET start_date = @start_date,
		    end_date   = @end_date,
		    items      = @items,
		    activities = @activities,
		    updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + planColumns

	args, err := planArgs(plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	args["id"] = plan.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Save: %w", err)
	}
	return result, nil
}

func (r *pgPlanRepo) Delete(ctx context.Context, userID int64, planID uuid.UUID) error {
	const q = `DELETE FROM plans WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": planID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// planArgs builds the named arguments shared by Create and Save.
// Items and activities are stored as JSONB documents.
func planArgs(plan domain.Plan) (pgx.NamedArgs, error) {
	items, err := json.Marshal(plan.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	activities, err := json.Marshal(plan.Activities)
	if err != nil {
		return nil, fmt.Errorf("marshal activities: %w", err)
	}

	return pgx.NamedArgs{
		"user_id":           plan.UserID,
		"trip_name":         plan.Trip.TripName,
		"destination_label": plan.Trip.Destination.Label,
		"destination_value": plan.Trip.Destination.Value,
		"start_date":        plan.Trip.StartDate,
		"end_date":          plan.Trip.EndDate,
		"women":             plan.Trip.Travelers.Women,
		"men":               plan.Trip.Travelers.Men,
		"children":          plan.Trip.Travelers.Children,
		"climate":           string(plan.Trip.Climate),
		"items":             items,
		"activities":        activities,
	}, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan maps a single database row into a domain.Plan, decoding the JSONB
// item and activity snapshots.
func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p          domain.Plan
		id         pgtype.UUID
		startDate  pgtype.Date
		endDate    pgtype.Date
		climate    string
		items      []byte
		activities []byte
	)

	err := s.Scan(&id, &p.UserID, &p.Trip.TripName,
		&p.Trip.Destination.Label, &p.Trip.Destination.Value,
		&startDate, &endDate,
		&p.Trip.Travelers.Women, &p.Trip.Travelers.Men, &p.Trip.Travelers.Children,
		&climate, &items, &activities, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plan{}, domain.ErrNotFound
		}
		return domain.Plan{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.Trip.StartDate = startDate.Time
	p.Trip.EndDate = endDate.Time
	p.Trip.Climate = domain.Climate(climate)

	if err := json.Unmarshal(items, &p.Items); err != nil {
		return domain.Plan{}, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(activities, &p.Activities); err != nil {
		return domain.Plan{}, fmt.Errorf("unmarshal activities: %w", err)
	}
	if p.Items == nil {
		p.Items = []domain.Item{}
	}
	if p.Activities == nil {
		p.Activities = []domain.Activity{}
	}

	return p, nil
}
