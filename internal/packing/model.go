package packing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kliang/packmate/backend/internal/domain"
)

// Model is the single source of truth for one trip's activities and items.
// All mutations go through its methods — there is no outside field access —
// and every failed mutation leaves the collections untouched.
//
// Invariants maintained across all mutations:
//   - an item attached to an activity carries that activity's current date
//   - deleting an activity demotes its items to date-only (date kept,
//     activity reference cleared)
//   - ids are assigned once at creation and never reused
//
// A Model is not safe for concurrent use. Mutations arrive one at a time
// from discrete user actions; the service layer serializes them through the
// load-mutate-save cycle.
type Model struct {
	dates      []time.Time
	items      []domain.Item
	activities []domain.Activity
}

// NewModel creates an empty model for the given trip date range.
func NewModel(start, end time.Time) *Model {
	return &Model{dates: DateRange(start, end)}
}

// Restore rehydrates a model from a stored snapshot. The day list is
// re-derived from the trip dates rather than persisted, so it can never
// drift from the descriptor.
func Restore(start, end time.Time, items []domain.Item, activities []domain.Activity) *Model {
	m := NewModel(start, end)
	m.items = append(m.items, items...)
	m.activities = append(m.activities, activities...)
	return m
}

// Dates returns the ordered day list, one entry per calendar day of the trip.
func (m *Model) Dates() []time.Time {
	return append([]time.Time{}, m.dates...)
}

// Items returns all items in insertion order.
func (m *Model) Items() []domain.Item {
	return append([]domain.Item{}, m.items...)
}

// Activities returns all activities in insertion order.
func (m *Model) Activities() []domain.Activity {
	return append([]domain.Activity{}, m.activities...)
}

// AddActivity creates an activity on the given day. Returns ErrValidation if
// name is blank. The date is not checked against the day list — the UI only
// offers valid days, and out-of-range activities are tolerated the same way
// they are after a trip date change (stored, but invisible in the date view).
func (m *Model) AddActivity(date time.Time, name, startTime, endTime string) (domain.Activity, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Activity{}, fmt.Errorf("%w: activity name is required", domain.ErrValidation)
	}

	act := domain.Activity{
		ID:        uuid.New(),
		Name:      name,
		Date:      dayOf(date),
		StartTime: startTime,
		EndTime:   endTime,
	}
	m.activities = append(m.activities, act)
	return act, nil
}

// DeleteActivity removes the activity and demotes every item attached to it:
// the item keeps its inherited date but loses the activity reference,
// becoming date-only rather than fully unassigned. No-op if the id is unknown.
func (m *Model) DeleteActivity(id uuid.UUID) {
	kept := m.activities[:0]
	for _, act := range m.activities {
		if act.ID != id {
			kept = append(kept, act)
		}
	}
	m.activities = kept

	for i := range m.items {
		if m.items[i].ActivityID != nil && *m.items[i].ActivityID == id {
			m.items[i].ActivityID = nil
		}
	}
}

// RescheduleActivity moves an activity to a new day and re-syncs the
// denormalized date on every item attached to it. Returns ErrNotFound if the
// id is unknown.
func (m *Model) RescheduleActivity(id uuid.UUID, date time.Time) (domain.Activity, error) {
	idx := m.findActivity(id)
	if idx < 0 {
		return domain.Activity{}, fmt.Errorf("%w: activity %s", domain.ErrNotFound, id)
	}

	day := dayOf(date)
	m.activities[idx].Date = day
	for i := range m.items {
		if m.items[i].ActivityID != nil && *m.items[i].ActivityID == id {
			d := day
			m.items[i].Date = &d
		}
	}
	return m.activities[idx], nil
}

// AddItem creates an item attached per target. Returns ErrValidation if name
// is blank, and ErrNotFound if the target names an activity that does not
// exist — a missing activity is an error here, not a silent fall-through to
// unassigned. Category defaults to "Uncategorized" and quantity to 1.
func (m *Model) AddItem(target Target, name, category string, quantity int) (domain.Item, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Item{}, fmt.Errorf("%w: item name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(category) == "" {
		category = domain.CategoryUncategorized
	}
	if quantity < 1 {
		quantity = 1
	}

	item := domain.Item{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Quantity: quantity,
	}

	switch target.kind {
	case targetDate:
		d := dayOf(target.date)
		item.Date = &d
	case targetActivity:
		idx := m.findActivity(target.activityID)
		if idx < 0 {
			return domain.Item{}, fmt.Errorf("%w: activity %s", domain.ErrNotFound, target.activityID)
		}
		actID := m.activities[idx].ID
		d := m.activities[idx].Date
		item.ActivityID = &actID
		item.Date = &d
	}

	m.items = append(m.items, item)
	return item, nil
}

// ItemPatch carries a partial item update. Nil fields are left unchanged.
// ClearDate and ClearActivity unset the respective optional field; they win
// over Date/ActivityID when both are given.
type ItemPatch struct {
	Name          *string
	Category      *string
	Quantity      *int
	Date          *time.Time
	ActivityID    *uuid.UUID
	ClearDate     bool
	ClearActivity bool
}

// UpdateItem merges the patch into the item. Cross-field consistency is not
// re-validated: setting Date on an item that has ActivityID does not clear
// the activity reference — callers own that discipline. A blank Name is
// rejected with ErrValidation; a non-positive Quantity is normalized to 1,
// mirroring the AddItem default. Returns ErrNotFound for an unknown id.
func (m *Model) UpdateItem(id uuid.UUID, patch ItemPatch) (domain.Item, error) {
	idx := -1
	for i := range m.items {
		if m.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Item{}, fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return domain.Item{}, fmt.Errorf("%w: item name is required", domain.ErrValidation)
		}
		m.items[idx].Name = *patch.Name
	}
	if patch.Category != nil {
		category := *patch.Category
		if strings.TrimSpace(category) == "" {
			category = domain.CategoryUncategorized
		}
		m.items[idx].Category = category
	}
	if patch.Quantity != nil {
		q := *patch.Quantity
		if q < 1 {
			q = 1
		}
		m.items[idx].Quantity = q
	}
	if patch.ClearDate {
		m.items[idx].Date = nil
	} else if patch.Date != nil {
		d := dayOf(*patch.Date)
		m.items[idx].Date = &d
	}
	if patch.ClearActivity {
		m.items[idx].ActivityID = nil
	} else if patch.ActivityID != nil {
		actID := *patch.ActivityID
		m.items[idx].ActivityID = &actID
	}

	return m.items[idx], nil
}

// DeleteItem removes the item unconditionally. No-op if the id is unknown.
// Item deletion never cascades onto other entities.
func (m *Model) DeleteItem(id uuid.UUID) {
	kept := m.items[:0]
	for _, item := range m.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.items = kept
}

// SetTripDates regenerates the day list for a changed trip date range.
// Activities and date-only items whose date no longer falls within the new
// range are kept — still addressable by id, still visible in the category
// view — but stop rendering in the date view's per-day buckets. They are not
// reclassified as unassigned.
func (m *Model) SetTripDates(start, end time.Time) {
	m.dates = DateRange(start, end)
}

// UnassignedItems returns every item with neither a date nor an activity,
// in insertion order.
func (m *Model) UnassignedItems() []domain.Item {
	out := []domain.Item{}
	for _, item := range m.items {
		if item.Date == nil && item.ActivityID == nil {
			out = append(out, item)
		}
	}
	return out
}

// CategoryGroup is one bucket of the category grouping: a category name and
// its items in insertion order.
type CategoryGroup struct {
	Category string
	Items    []domain.Item
}

// ItemsByCategory partitions all items by category. Groups appear in order
// of first encounter among the items, and every item lands in exactly one
// group.
func (m *Model) ItemsByCategory() []CategoryGroup {
	index := map[string]int{}
	groups := []CategoryGroup{}
	for _, item := range m.items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, CategoryGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// ItemsAndActivitiesForDate returns the day's activities and its date-only
// items (items on this date with no activity).
//
// Activities are ordered: entries with a start time before entries without
// one; among timed entries, by "HH:MM" comparison (lexicographic equals
// chronological for zero-padded 24-hour strings); ties and untimed entries
// keep their insertion order. The sort is stable by construction.
func (m *Model) ItemsAndActivitiesForDate(date time.Time) ([]domain.Activity, []domain.Item) {
	acts := []domain.Activity{}
	for _, act := range m.activities {
		if sameDay(act.Date, date) {
			acts = append(acts, act)
		}
	}
	sort.SliceStable(acts, func(i, j int) bool {
		a, b := acts[i], acts[j]
		if (a.StartTime != "") != (b.StartTime != "") {
			return a.StartTime != ""
		}
		if a.StartTime != "" && b.StartTime != "" {
			return a.StartTime < b.StartTime
		}
		return false
	})

	items := []domain.Item{}
	for _, item := range m.items {
		if item.ActivityID == nil && item.Date != nil && sameDay(*item.Date, date) {
			items = append(items, item)
		}
	}
	return acts, items
}

// ItemsForActivity returns the items attached to the given activity,
// in insertion order.
func (m *Model) ItemsForActivity(id uuid.UUID) []domain.Item {
	out := []domain.Item{}
	for _, item := range m.items {
		if item.ActivityID != nil && *item.ActivityID == id {
			out = append(out, item)
		}
	}
	return out
}

// findActivity returns the index of the activity with the given id, or -1.
func (m *Model) findActivity(id uuid.UUID) int {
	for i := range m.activities {
		if m.activities[i].ID == id {
			return i
		}
	}
	return -1
}
