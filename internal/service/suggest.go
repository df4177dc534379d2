package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/packing"
	"github.com/kliang/packmate/backend/internal/repo"
)

// Generator produces free text from a prompt. The Gemini-backed
// implementation lives in internal/suggest; tests inject a canned fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SuggestService seeds a plan with starter items generated from the trip's
// climate and the user's stated item preferences. Generated items land in
// the unassigned bucket under the "Suggested" category; the user sorts them
// onto days and activities from there.
type SuggestService struct {
	plans repo.PlanRepo
	users repo.UserRepo
	gen   Generator
}

// categorySuggested is the category assigned to generated items.
const categorySuggested = "Suggested"

// NewSuggestService constructs a SuggestService with its dependencies.
func NewSuggestService(plans repo.PlanRepo, users repo.UserRepo, gen Generator) *SuggestService {
	return &SuggestService{plans: plans, users: users, gen: gen}
}

// Seed generates a packing list for the plan and appends each entry as an
// unassigned item. Returns the items added. A generation failure leaves the
// plan untouched.
func (s *SuggestService) Seed(ctx context.Context, userID int64, planID uuid.UUID) ([]domain.Item, error) {
	plan, err := s.plans.GetByID(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("service.SuggestService.Seed: %w", err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.SuggestService.Seed: %w", err)
	}

	text, err := s.gen.Generate(ctx, buildPrompt(plan.Trip, user.ItemLike))
	if err != nil {
		return nil, fmt.Errorf("service.SuggestService.Seed: generate: %w", err)
	}

	names := parseSuggestions(text)
	if len(names) == 0 {
		return []domain.Item{}, nil
	}

	m := modelOf(plan)
	added := make([]domain.Item, 0, len(names))
	for _, name := range names {
		item, err := m.AddItem(packing.Unassigned(), name, categorySuggested, 1)
		if err != nil {
			return nil, fmt.Errorf("service.SuggestService.Seed: %w", err)
		}
		added = append(added, item)
	}

	plan.Items = m.Items()
	plan.Activities = m.Activities()
	if _, err := s.plans.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("service.SuggestService.Seed: %w", err)
	}
	return added, nil
}

// buildPrompt asks for a bare bullet list so parseSuggestions has a stable
// shape to work with.
func buildPrompt(trip domain.TripDescriptor, itemLike string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a travel assistant. A traveler is going to %s from %s to %s. The climate is %s.\n",
		trip.Destination.Label,
		trip.StartDate.Format("2006-01-02"),
		trip.EndDate.Format("2006-01-02"),
		trip.Climate)
	fmt.Fprintf(&b, "The group is %d women, %d men, and %d children.\n",
		trip.Travelers.Women, trip.Travelers.Men, trip.Travelers.Children)
	if itemLike != "" {
		fmt.Fprintf(&b, "The traveler prefers items like: %q.\n", itemLike)
	}
	b.WriteString("Generate a concise bullet-point packing list of essential items, one item per line. No explanations or extra text.")
	return b.String()
}

// parseSuggestions turns bullet-list text into item names: one entry per
// non-empty line, with list markers and numbering stripped. Blank results
// after stripping are dropped.
func parseSuggestions(text string) []string {
	names := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		line = strings.TrimLeft(line, "0123456789.) ")
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}
