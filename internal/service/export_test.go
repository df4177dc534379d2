package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/service"
)

func TestExportService_OneRowPerItem(t *testing.T) {
	activityID := uuid.New()
	itemDate := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	plan := storedPlan()
	plan.Activities = []domain.Activity{{ID: activityID, Name: "Beach Day", Date: itemDate}}
	plan.Items = []domain.Item{
		{ID: uuid.New(), Name: "Sunscreen", Category: "Toiletries", Quantity: 2, ActivityID: &activityID, Date: &itemDate},
		{ID: uuid.New(), Name: "Passport", Category: "Documents", Quantity: 1},
	}

	plans := &mockPlanRepo{
		listByUser: func(_ context.Context, _ int64) ([]domain.Plan, error) {
			return []domain.Plan{plan}, nil
		},
	}
	svc := service.NewExportService(plans)

	rows, err := svc.Export(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, plan.ID.String(), rows[0].PlanID)
	assert.Equal(t, "Lisbon Getaway", rows[0].TripName)
	assert.Equal(t, "2026-06-01", rows[0].TripStartDate)
	assert.Equal(t, "Sunscreen", rows[0].ItemName)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.Equal(t, "2026-06-02", rows[0].ItemDate)
	assert.Equal(t, "Beach Day", rows[0].ActivityName, "activity name resolved from the snapshot")

	assert.Equal(t, "Passport", rows[1].ItemName)
	assert.Empty(t, rows[1].ItemDate)
	assert.Empty(t, rows[1].ActivityName)
}

func TestExportService_PlanWithoutItems_OneBaseRow(t *testing.T) {
	plan := storedPlan()

	plans := &mockPlanRepo{
		listByUser: func(_ context.Context, _ int64) ([]domain.Plan, error) {
			return []domain.Plan{plan}, nil
		},
	}
	svc := service.NewExportService(plans)

	rows, err := svc.Export(context.Background(), testUserID)

	require.NoError(t, err)
	require.Len(t, rows, 1, "empty plan still appears in the export")
	assert.Equal(t, "Lisbon Getaway", rows[0].TripName)
	assert.Empty(t, rows[0].ItemName)
	assert.Zero(t, rows[0].Quantity)
}

func TestExportService_NoPlans_EmptySlice(t *testing.T) {
	plans := &mockPlanRepo{
		listByUser: func(_ context.Context, _ int64) ([]domain.Plan, error) {
			return []domain.Plan{}, nil
		},
	}
	svc := service.NewExportService(plans)

	rows, err := svc.Export(context.Background(), testUserID)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
