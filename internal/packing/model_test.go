package packing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/packing"
)

// newTripModel returns an empty model for a three-day trip,
// 2024-06-01 through 2024-06-03.
func newTripModel(t *testing.T) *packing.Model {
	t.Helper()
	return packing.NewModel(day(2024, 6, 1), day(2024, 6, 3))
}

// ---- AddActivity -------------------------------------------------------------

func TestModel_AddActivity(t *testing.T) {
	m := newTripModel(t)

	act, err := m.AddActivity(day(2024, 6, 2), "Museum", "09:00", "11:00")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, act.ID)
	assert.Equal(t, "Museum", act.Name)
	assert.Equal(t, day(2024, 6, 2), act.Date)
	assert.Equal(t, "09:00", act.StartTime)
	assert.Equal(t, "11:00", act.EndTime)
	assert.Len(t, m.Activities(), 1)
}

func TestModel_AddActivity_NameRequired(t *testing.T) {
	m := newTripModel(t)

	_, err := m.AddActivity(day(2024, 6, 2), "   ", "", "")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, m.Activities(), "failed mutation must be a no-op")
}

func TestModel_AddActivity_FreshIDs(t *testing.T) {
	m := newTripModel(t)

	a, err := m.AddActivity(day(2024, 6, 1), "Breakfast", "", "")
	require.NoError(t, err)
	b, err := m.AddActivity(day(2024, 6, 1), "Breakfast", "", "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

// ---- AddItem -------------------------------------------------------------

func TestModel_AddItem_Unassigned(t *testing.T) {
	m := newTripModel(t)

	item, err := m.AddItem(packing.Unassigned(), "Passport", "Documents", 1)

	require.NoError(t, err)
	assert.Nil(t, item.Date)
	assert.Nil(t, item.ActivityID)
}

func TestModel_AddItem_NameRequired(t *testing.T) {
	m := newTripModel(t)

	_, err := m.AddItem(packing.Unassigned(), "", "Documents", 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, m.Items(), "item count must be unchanged after a validation failure")
}

func TestModel_AddItem_Defaults(t *testing.T) {
	m := newTripModel(t)

	item, err := m.AddItem(packing.Unassigned(), "Socks", "  ", 0)

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUncategorized, item.Category)
	assert.Equal(t, 1, item.Quantity)
}

func TestModel_AddItem_ForDate(t *testing.T) {
	m := newTripModel(t)

	item, err := m.AddItem(packing.ForDate(day(2024, 6, 2)), "Sunscreen", "Toiletries", 1)

	require.NoError(t, err)
	require.NotNil(t, item.Date)
	assert.Equal(t, day(2024, 6, 2), *item.Date)
	assert.Nil(t, item.ActivityID)
}

func TestModel_AddItem_ForActivity_CopiesDate(t *testing.T) {
	m := newTripModel(t)
	act, err := m.AddActivity(day(2024, 6, 2), "Museum", "09:00", "")
	require.NoError(t, err)

	item, err := m.AddItem(packing.ForActivity(act.ID), "Camera", "Electronics", 1)

	require.NoError(t, err)
	require.NotNil(t, item.ActivityID)
	assert.Equal(t, act.ID, *item.ActivityID)
	require.NotNil(t, item.Date)
	assert.Equal(t, act.Date, *item.Date, "item date is denormalized from the activity")
}

func TestModel_AddItem_ForMissingActivity_NotFound(t *testing.T) {
	m := newTripModel(t)

	_, err := m.AddItem(packing.ForActivity(uuid.New()), "Camera", "", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, m.Items())
}

// ---- DeleteActivity -------------------------------------------------------

// Deleting an activity demotes its items to date-only: the activity
// reference is cleared, the inherited date stays.
func TestModel_DeleteActivity_DemotesItems(t *testing.T) {
	m := newTripModel(t)
	museum, err := m.AddActivity(day(2024, 6, 2), "Museum", "09:00", "")
	require.NoError(t, err)
	_, err = m.AddItem(packing.ForActivity(museum.ID), "Camera", "Electronics", 1)
	require.NoError(t, err)

	m.DeleteActivity(museum.ID)

	assert.Empty(t, m.Activities())
	items := m.Items()
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ActivityID, "no item may still reference the deleted activity")
	require.NotNil(t, items[0].Date)
	assert.Equal(t, day(2024, 6, 2), *items[0].Date, "inherited date is preserved")
}

func TestModel_DeleteActivity_UnknownID_NoOp(t *testing.T) {
	m := newTripModel(t)
	_, err := m.AddActivity(day(2024, 6, 1), "Walk", "", "")
	require.NoError(t, err)

	m.DeleteActivity(uuid.New())

	assert.Len(t, m.Activities(), 1)
}

// ---- RescheduleActivity ----------------------------------------------------

func TestModel_RescheduleActivity_SyncsItemDates(t *testing.T) {
	m := newTripModel(t)
	act, err := m.AddActivity(day(2024, 6, 2), "Museum", "", "")
	require.NoError(t, err)
	attached, err := m.AddItem(packing.ForActivity(act.ID), "Camera", "", 1)
	require.NoError(t, err)
	loose, err := m.AddItem(packing.ForDate(day(2024, 6, 2)), "Map", "", 1)
	require.NoError(t, err)

	moved, err := m.RescheduleActivity(act.ID, day(2024, 6, 3))

	require.NoError(t, err)
	assert.Equal(t, day(2024, 6, 3), moved.Date)
	for _, item := range m.Items() {
		switch item.ID {
		case attached.ID:
			require.NotNil(t, item.Date)
			assert.Equal(t, day(2024, 6, 3), *item.Date, "attached item follows the activity")
		case loose.ID:
			require.NotNil(t, item.Date)
			assert.Equal(t, day(2024, 6, 2), *item.Date, "date-only item stays put")
		}
	}
}

func TestModel_RescheduleActivity_NotFound(t *testing.T) {
	m := newTripModel(t)

	_, err := m.RescheduleActivity(uuid.New(), day(2024, 6, 1))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- UpdateItem / DeleteItem ------------------------------------------------

func TestModel_UpdateItem_PartialMerge(t *testing.T) {
	m := newTripModel(t)
	item, err := m.AddItem(packing.Unassigned(), "Shirt", "Clothing", 2)
	require.NoError(t, err)

	name := "T-Shirt"
	qty := 4
	got, err := m.UpdateItem(item.ID, packing.ItemPatch{Name: &name, Quantity: &qty})

	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", got.Name)
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, "Clothing", got.Category, "untouched fields keep their values")
}

func TestModel_UpdateItem_BlankNameRejected(t *testing.T) {
	m := newTripModel(t)
	item, err := m.AddItem(packing.Unassigned(), "Shirt", "Clothing", 2)
	require.NoError(t, err)

	blank := " "
	_, err = m.UpdateItem(item.ID, packing.ItemPatch{Name: &blank})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Shirt", m.Items()[0].Name)
}

func TestModel_UpdateItem_QuantityNormalized(t *testing.T) {
	m := newTripModel(t)
	item, err := m.AddItem(packing.Unassigned(), "Shirt", "", 2)
	require.NoError(t, err)

	zero := 0
	got, err := m.UpdateItem(item.ID, packing.ItemPatch{Quantity: &zero})

	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

// Changing the date of an activity-attached item does not clear the activity
// reference. Caller discipline is assumed; the model only merges.
func TestModel_UpdateItem_NoCrossFieldValidation(t *testing.T) {
	m := newTripModel(t)
	act, err := m.AddActivity(day(2024, 6, 2), "Museum", "", "")
	require.NoError(t, err)
	item, err := m.AddItem(packing.ForActivity(act.ID), "Camera", "", 1)
	require.NoError(t, err)

	d := day(2024, 6, 3)
	got, err := m.UpdateItem(item.ID, packing.ItemPatch{Date: &d})

	require.NoError(t, err)
	require.NotNil(t, got.ActivityID)
	assert.Equal(t, act.ID, *got.ActivityID)
	assert.Equal(t, d, *got.Date)
}

func TestModel_UpdateItem_NotFound(t *testing.T) {
	m := newTripModel(t)

	_, err := m.UpdateItem(uuid.New(), packing.ItemPatch{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModel_DeleteItem(t *testing.T) {
	m := newTripModel(t)
	item, err := m.AddItem(packing.Unassigned(), "Shirt", "", 1)
	require.NoError(t, err)

	m.DeleteItem(item.ID)
	m.DeleteItem(item.ID) // second delete is a no-op

	assert.Empty(t, m.Items())
}

// ---- queries ----------------------------------------------------------------

// Timed activities come first ordered by start time; untimed ones follow in
// insertion order.
func TestModel_ActivitiesForDate_Ordering(t *testing.T) {
	m := newTripModel(t)
	_, err := m.AddActivity(day(2024, 6, 2), "Walk", "", "")
	require.NoError(t, err)
	_, err = m.AddActivity(day(2024, 6, 2), "Lunch", "12:30", "")
	require.NoError(t, err)
	_, err = m.AddActivity(day(2024, 6, 2), "Museum", "09:00", "")
	require.NoError(t, err)
	_, err = m.AddActivity(day(2024, 6, 1), "Breakfast", "08:00", "")
	require.NoError(t, err)

	acts, _ := m.ItemsAndActivitiesForDate(day(2024, 6, 2))

	require.Len(t, acts, 3)
	assert.Equal(t, "Museum", acts[0].Name)
	assert.Equal(t, "Lunch", acts[1].Name)
	assert.Equal(t, "Walk", acts[2].Name)
}

func TestModel_ActivitiesForDate_TiesKeepInsertionOrder(t *testing.T) {
	m := newTripModel(t)
	_, err := m.AddActivity(day(2024, 6, 2), "First", "09:00", "")
	require.NoError(t, err)
	_, err = m.AddActivity(day(2024, 6, 2), "Second", "09:00", "")
	require.NoError(t, err)

	acts, _ := m.ItemsAndActivitiesForDate(day(2024, 6, 2))

	require.Len(t, acts, 2)
	assert.Equal(t, "First", acts[0].Name)
	assert.Equal(t, "Second", acts[1].Name)
}

func TestModel_ItemsForDate_ExcludesActivityItems(t *testing.T) {
	m := newTripModel(t)
	act, err := m.AddActivity(day(2024, 6, 2), "Museum", "", "")
	require.NoError(t, err)
	_, err = m.AddItem(packing.ForActivity(act.ID), "Camera", "", 1)
	require.NoError(t, err)
	dateOnly, err := m.AddItem(packing.ForDate(day(2024, 6, 2)), "Map", "", 1)
	require.NoError(t, err)

	_, items := m.ItemsAndActivitiesForDate(day(2024, 6, 2))

	require.Len(t, items, 1)
	assert.Equal(t, dateOnly.ID, items[0].ID)
}

// Unassigned items are exactly those with neither date nor activity, and the
// set is disjoint from every per-day item list.
func TestModel_UnassignedItems_DisjointFromDateBuckets(t *testing.T) {
	m := newTripModel(t)
	loose, err := m.AddItem(packing.Unassigned(), "Passport", "", 1)
	require.NoError(t, err)
	_, err = m.AddItem(packing.ForDate(day(2024, 6, 1)), "Map", "", 1)
	require.NoError(t, err)

	unassigned := m.UnassignedItems()

	require.Len(t, unassigned, 1)
	assert.Equal(t, loose.ID, unassigned[0].ID)
	for _, d := range m.Dates() {
		_, items := m.ItemsAndActivitiesForDate(d)
		for _, item := range items {
			assert.NotEqual(t, loose.ID, item.ID)
		}
	}
}

// Category grouping is a partition: every item in exactly one bucket, buckets
// ordered by first encounter.
func TestModel_ItemsByCategory_Partition(t *testing.T) {
	m := newTripModel(t)
	_, err := m.AddItem(packing.Unassigned(), "Shirt", "Clothing", 1)
	require.NoError(t, err)
	_, err = m.AddItem(packing.Unassigned(), "Toothbrush", "Toiletries", 1)
	require.NoError(t, err)
	_, err = m.AddItem(packing.ForDate(day(2024, 6, 1)), "Pants", "Clothing", 1)
	require.NoError(t, err)

	groups := m.ItemsByCategory()

	require.Len(t, groups, 2)
	assert.Equal(t, "Clothing", groups[0].Category)
	assert.Equal(t, "Toiletries", groups[1].Category)

	total := 0
	seen := map[uuid.UUID]bool{}
	for _, g := range groups {
		for _, item := range g.Items {
			assert.False(t, seen[item.ID], "item appears in exactly one bucket")
			seen[item.ID] = true
			total++
		}
	}
	assert.Equal(t, len(m.Items()), total)
}

// ---- trip date change ---------------------------------------------------------

// Shrinking the trip keeps out-of-range entities addressable but drops them
// from the per-day buckets. They are not reclassified as unassigned.
func TestModel_SetTripDates_OrphansStayAddressable(t *testing.T) {
	m := newTripModel(t)
	act, err := m.AddActivity(day(2024, 6, 3), "Departure", "10:00", "")
	require.NoError(t, err)
	item, err := m.AddItem(packing.ForDate(day(2024, 6, 3)), "Snacks", "Food", 1)
	require.NoError(t, err)

	m.SetTripDates(day(2024, 6, 1), day(2024, 6, 2))

	require.Len(t, m.Dates(), 2)
	assert.Len(t, m.Activities(), 1, "orphaned activity is not auto-deleted")
	assert.Len(t, m.Items(), 1, "orphaned item is not auto-deleted")
	assert.Empty(t, m.UnassignedItems(), "orphans are not reclassified as unassigned")

	for _, d := range m.Dates() {
		acts, items := m.ItemsAndActivitiesForDate(d)
		assert.Empty(t, acts)
		assert.Empty(t, items)
	}

	// Still addressable by id: deleting the orphaned activity demotes as usual.
	_, err = m.RescheduleActivity(act.ID, day(2024, 6, 2))
	require.NoError(t, err)
	m.DeleteItem(item.ID)
	assert.Len(t, m.Items(), 0)
}

// ---- snapshot round trip -------------------------------------------------------

func TestModel_Restore_RederivesDates(t *testing.T) {
	m := newTripModel(t)
	_, err := m.AddActivity(day(2024, 6, 2), "Museum", "09:00", "")
	require.NoError(t, err)
	_, err = m.AddItem(packing.ForDate(day(2024, 6, 1)), "Map", "", 1)
	require.NoError(t, err)

	restored := packing.Restore(day(2024, 6, 1), day(2024, 6, 3), m.Items(), m.Activities())

	assert.Equal(t, m.Dates(), restored.Dates())
	assert.Equal(t, m.Items(), restored.Items())
	assert.Equal(t, m.Activities(), restored.Activities())
}
