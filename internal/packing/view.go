package packing

import (
	"time"

	"github.com/kliang/packmate/backend/internal/domain"
)

// The view projector is a stateless read-side transform over a Model. Both
// views are rebuilt in full on every call — plans hold human-entered data for
// a single trip, so there is nothing worth caching incrementally.

// DateView groups the plan by calendar day: an unassigned bucket up front,
// then one section per day of the trip.
type DateView struct {
	Unassigned []domain.Item
	Days       []DaySection
}

// DaySection is one day of the date view: the day's activities (each with its
// own items) and the items attached to the day directly.
type DaySection struct {
	Date       time.Time
	Activities []ActivitySection
	Items      []domain.Item
}

// ActivitySection is an activity with the items attached to it.
type ActivitySection struct {
	Activity domain.Activity
	Items    []domain.Item
}

// CategoryView groups every item by category, in first-encounter order.
type CategoryView struct {
	Categories []CategorySection
}

// CategorySection is one category bucket of the category view.
type CategorySection struct {
	Category string
	Items    []CategoryEntry
}

// CategoryEntry is an item annotated with its resolved activity name.
// The annotation is display-only; ActivityName is "" when the item is not
// attached to an activity.
type CategoryEntry struct {
	Item         domain.Item
	ActivityName string
}

// ProjectDateView derives the date-grouped presentation of the model.
// Activities or date-only items whose date fell out of the trip's range
// (after a date change) appear in no day section.
func ProjectDateView(m *Model) DateView {
	view := DateView{
		Unassigned: m.UnassignedItems(),
		Days:       []DaySection{},
	}

	for _, date := range m.Dates() {
		acts, dateItems := m.ItemsAndActivitiesForDate(date)

		section := DaySection{
			Date:       date,
			Activities: []ActivitySection{},
			Items:      dateItems,
		}
		for _, act := range acts {
			section.Activities = append(section.Activities, ActivitySection{
				Activity: act,
				Items:    m.ItemsForActivity(act.ID),
			})
		}
		view.Days = append(view.Days, section)
	}
	return view
}

// ProjectCategoryView derives the category-grouped presentation of the model.
// Every item appears in exactly one category bucket.
func ProjectCategoryView(m *Model) CategoryView {
	names := map[string]string{}
	for _, act := range m.Activities() {
		names[act.ID.String()] = act.Name
	}

	view := CategoryView{Categories: []CategorySection{}}
	for _, group := range m.ItemsByCategory() {
		section := CategorySection{Category: group.Category}
		for _, item := range group.Items {
			entry := CategoryEntry{Item: item}
			if item.ActivityID != nil {
				entry.ActivityName = names[item.ActivityID.String()]
			}
			section.Items = append(section.Items, entry)
		}
		view.Categories = append(view.Categories, section)
	}
	return view
}
