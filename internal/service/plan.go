// Package service contains the business logic for the Packmate API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/packing"
	"github.com/kliang/packmate/backend/internal/repo"
)

// PlanService implements business logic for plan operations. Every mutation
// follows the same cycle: load the snapshot, rebuild the packing model,
// apply one mutation, write the snapshot back whole. A failed mutation never
// reaches Save, so the stored plan is always in its last-good state.
type PlanService struct {
	plans repo.PlanRepo
}

// NewPlanService constructs a PlanService backed by the provided PlanRepo.
func NewPlanService(plans repo.PlanRepo) *PlanService {
	return &PlanService{plans: plans}
}

// NewActivity carries the fields for an activity creation.
type NewActivity struct {
	Date      time.Time
	Name      string
	StartTime string
	EndTime   string
}

// NewItem carries the fields for an item creation; the attachment target is
// passed separately.
type NewItem struct {
	Name     string
	Category string
	Quantity int
}

// Create validates the trip descriptor and persists a fresh plan with empty
// item and activity collections. Date validity relative to "today" is the
// trip-setup UI's concern; the service only rejects structurally broken
// descriptors.
func (s *PlanService) Create(ctx context.Context, userID int64, trip domain.TripDescriptor) (domain.Plan, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Plan{}, err
	}

	plan := domain.Plan{
		UserID:     userID,
		Trip:       trip,
		Items:      []domain.Item{},
		Activities: []domain.Activity{},
	}
	result, err := s.plans.Create(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single plan by id, scoped to the given user.
func (s *PlanService) GetByID(ctx context.Context, userID int64, planID uuid.UUID) (domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return plan, nil
}

// ListByUser returns the user's plan history, most recent trip first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlanService) ListByUser(ctx context.Context, userID int64) ([]domain.Plan, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.ListByUser: %w", err)
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, nil
}

// Delete removes a plan by id, scoped to the given user.
func (s *PlanService) Delete(ctx context.Context, userID int64, planID uuid.UUID) error {
	if err := s.plans.Delete(ctx, userID, planID); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}

// ChangeDates moves the trip's date range and regenerates the plan's day
// list. Activities and dated items that fall outside the new range are kept
// (addressable, category-visible) but stop rendering in the date view.
func (s *PlanService) ChangeDates(ctx context.Context, userID int64, planID uuid.UUID, start, end time.Time) (domain.Plan, error) {
	if end.Before(start) {
		return domain.Plan{}, fmt.Errorf("service.PlanService.ChangeDates: %w: end_date must not be before start_date", domain.ErrValidation)
	}

	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.ChangeDates: %w", err)
	}

	plan.Trip.StartDate = start
	plan.Trip.EndDate = end
	result, err := s.plans.Save(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service.PlanService.ChangeDates: %w", err)
	}
	return result, nil
}

// AddActivity creates an activity on the given plan day.
func (s *PlanService) AddActivity(ctx context.Context, userID int64, planID uuid.UUID, input NewActivity) (domain.Activity, error) {
	var created domain.Activity
	err := s.mutate(ctx, userID, planID, func(m *packing.Model) error {
		act, err := m.AddActivity(input.Date, input.Name, input.StartTime, input.EndTime)
		if err != nil {
			return err
		}
		created = act
		return nil
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.PlanService.AddActivity: %w", err)
	}
	return created, nil
}

// DeleteActivity removes an activity; its items are demoted to date-only.
// Deleting an unknown activity id is a no-op, matching the model.
func (s *PlanService) DeleteActivity(ctx context.Context, userID int64, planID, activityID uuid.UUID) error {
	err := s.mutate(ctx, userID, planID, func(m *packing.Model) error {
		m.DeleteActivity(activityID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.PlanService.DeleteActivity: %w", err)
	}
	return nil
}

// RescheduleActivity moves an activity to a new day; the denormalized date
// on its items follows.
func (s *PlanService) RescheduleActivity(ctx context.Context, userID int64, planID, activityID uuid.UUID, date time.Time) (domain.Activity, error) {
	var moved domain.Activity
	err := s.mutate(ctx, userID, planID, func(m *packing.Model) error {
		act, err := m.RescheduleActivity(activityID, date)
		if err != nil {
			return err
		}
		moved = act
		return nil
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.PlanService.RescheduleActivity: %w", err)
	}
	return moved, nil
}

// AddItem creates an item attached per target.
func (s *PlanService) AddItem(ctx context.Context, userID int64, planID uuid.UUID, target packing.Target, input NewItem) (domain.Item, error) {
	var created domain.Item
	err := s.mutate(ctx, userID, planID, func(m *packing.Model) error {
		item, err := m.AddItem(target, input.Name, input.Category, input.Quantity)
		if err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.PlanService.AddItem: %w", err)
	}
	return created, nil
}

// UpdateItem merges a partial update into an item.
func (s *PlanService) UpdateItem(ctx context.Context, userID int64, planID, itemID uuid.UUID, patch packing.ItemPatch) (domain.Item, error) {
	var updated domain.Item
	err := s.mutate(ctx, userID, planID, func(m *packing.Model) error {
		item, err := m.UpdateItem(itemID, patch)
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("service.PlanService.UpdateItem: %w", err)
	}
	return updated, nil
}

// DeleteItem removes an item. Unknown ids are a no-op.
func (s *PlanService) DeleteItem(ctx context.Context, userID int64, planID, itemID uuid.UUID) error {
	err := s.mutate(ctx, userID, planID, func(m *packing.Model) error {
		m.DeleteItem(itemID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.PlanService.DeleteItem: %w", err)
	}
	return nil
}

// DateView returns the date-grouped projection of a plan.
func (s *PlanService) DateView(ctx context.Context, userID int64, planID uuid.UUID) (packing.DateView, error) {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return packing.DateView{}, fmt.Errorf("service.PlanService.DateView: %w", err)
	}
	m := modelOf(plan)
	return packing.ProjectDateView(m), nil
}

// CategoryView returns the category-grouped projection of a plan.
func (s *PlanService) CategoryView(ctx context.Context, userID int64, planID uuid.UUID) (packing.CategoryView, error) {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return packing.CategoryView{}, fmt.Errorf("service.PlanService.CategoryView: %w", err)
	}
	m := modelOf(plan)
	return packing.ProjectCategoryView(m), nil
}

// mutate runs the load-mutate-save cycle. When fn fails, the snapshot is not
// written and the stored plan stays in its last-good state.
func (s *PlanService) mutate(ctx context.Context, userID int64, planID uuid.UUID, fn func(*packing.Model) error) error {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return err
	}

	m := modelOf(plan)
	if err := fn(m); err != nil {
		return err
	}

	plan.Items = m.Items()
	plan.Activities = m.Activities()
	if _, err := s.plans.Save(ctx, plan); err != nil {
		return err
	}
	return nil
}

// modelOf rebuilds the packing model from a stored snapshot.
func modelOf(plan domain.Plan) *packing.Model {
	return packing.Restore(plan.Trip.StartDate, plan.Trip.EndDate, plan.Items, plan.Activities)
}

// validateTrip enforces the trip-setup rules the core relies on.
func validateTrip(trip domain.TripDescriptor) error {
	if strings.TrimSpace(trip.TripName) == "" {
		return fmt.Errorf("%w: trip_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Destination.Label) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
