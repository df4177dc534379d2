package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/repo"
)

// ExportService assembles a flat export of all of a user's plans and items.
type ExportService struct {
	plans repo.PlanRepo
}

// NewExportService constructs an ExportService backed by the provided PlanRepo.
func NewExportService(plans repo.PlanRepo) *ExportService {
	return &ExportService{plans: plans}
}

// Export returns one ExportRow per item across all of the user's plans,
// most recent trip first. Plans with no items contribute one row with empty
// item fields, so every plan is visible in the export.
func (s *ExportService) Export(ctx context.Context, userID int64) ([]domain.ExportRow, error) {
	plans, err := s.plans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, plan := range plans {
		base := domain.ExportRow{
			PlanID:        plan.ID.String(),
			TripName:      plan.Trip.TripName,
			Destination:   plan.Trip.Destination.Label,
			TripStartDate: plan.Trip.StartDate.Format("2006-01-02"),
			TripEndDate:   plan.Trip.EndDate.Format("2006-01-02"),
		}

		if len(plan.Items) == 0 {
			rows = append(rows, base)
			continue
		}

		names := activityNames(plan.Activities)
		for _, item := range plan.Items {
			row := base
			row.ItemName = item.Name
			row.Category = item.Category
			row.Quantity = item.Quantity
			row.ItemDate = formatOptionalDate(item.Date)
			if item.ActivityID != nil {
				row.ActivityName = names[*item.ActivityID]
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// activityNames indexes activity names by id for annotation lookups.
func activityNames(activities []domain.Activity) map[uuid.UUID]string {
	names := map[uuid.UUID]string{}
	for _, act := range activities {
		names[act.ID] = act.Name
	}
	return names
}

// formatOptionalDate returns the "2006-01-02" form of d, or "" when nil.
func formatOptionalDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}
