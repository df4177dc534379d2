package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/middleware"
	"github.com/kliang/packmate/backend/internal/packing"
	"github.com/kliang/packmate/backend/internal/service"
)

// ---- wire types --------------------------------------------------------------

type destinationDTO struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

type travelersDTO struct {
	Women    int `json:"women"`
	Men      int `json:"men"`
	Children int `json:"children"`
}

// tripRequest is the body of POST /api/plans: the finalized trip descriptor.
type tripRequest struct {
	TripName    string             `json:"trip_name"`
	Destination destinationDTO     `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Travelers   travelersDTO       `json:"travelers"`
	Climate     string             `json:"climate"`
}

// datesRequest is the body of PUT /api/plans/{planID}/dates.
type datesRequest struct {
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

// newActivityRequest is the body of POST .../activities.
type newActivityRequest struct {
	Date      openapi_types.Date `json:"date"`
	Name      string             `json:"name"`
	StartTime string             `json:"start_time,omitempty"`
	EndTime   string             `json:"end_time,omitempty"`
}

// rescheduleRequest is the body of PUT .../activities/{activityID}/date.
type rescheduleRequest struct {
	Date openapi_types.Date `json:"date"`
}

// targetDTO names where a new item attaches: "unassigned", "date", or
// "activity". The matching field must be set for the latter two.
type targetDTO struct {
	Type       string              `json:"type"`
	Date       *openapi_types.Date `json:"date,omitempty"`
	ActivityID *uuid.UUID          `json:"activity_id,omitempty"`
}

// newItemRequest is the body of POST .../items.
type newItemRequest struct {
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Quantity int       `json:"quantity,omitempty"`
	Target   targetDTO `json:"target"`
}

// itemPatchRequest is the body of PATCH .../items/{itemID}. Absent fields are
// left unchanged. clear_date and clear_activity null out the respective field,
// which a JSON pointer cannot express unambiguously.
type itemPatchRequest struct {
	Name          *string             `json:"name"`
	Category      *string             `json:"category"`
	Quantity      *int                `json:"quantity"`
	Date          *openapi_types.Date `json:"date"`
	ActivityID    *uuid.UUID          `json:"activity_id"`
	ClearDate     bool                `json:"clear_date"`
	ClearActivity bool                `json:"clear_activity"`
}

type itemResponse struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	Quantity   int                 `json:"quantity"`
	ActivityID *uuid.UUID          `json:"activity_id,omitempty"`
	Date       *openapi_types.Date `json:"date,omitempty"`
}

type activityResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Date      openapi_types.Date `json:"date"`
	StartTime string             `json:"start_time,omitempty"`
	EndTime   string             `json:"end_time,omitempty"`
}

type planResponse struct {
	ID          uuid.UUID          `json:"id"`
	TripName    string             `json:"trip_name"`
	Destination destinationDTO     `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Travelers   travelersDTO       `json:"travelers"`
	Climate     string             `json:"climate"`
	Items       []itemResponse     `json:"items"`
	Activities  []activityResponse `json:"activities"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type dateViewResponse struct {
	Unassigned []itemResponse  `json:"unassigned"`
	Days       []daySectionDTO `json:"days"`
}

type daySectionDTO struct {
	Date       openapi_types.Date   `json:"date"`
	Activities []activitySectionDTO `json:"activities"`
	Items      []itemResponse       `json:"items"`
}

type activitySectionDTO struct {
	Activity activityResponse `json:"activity"`
	Items    []itemResponse   `json:"items"`
}

type categoryViewResponse struct {
	Categories []categorySectionDTO `json:"categories"`
}

type categorySectionDTO struct {
	Category string             `json:"category"`
	Items    []categoryEntryDTO `json:"items"`
}

type categoryEntryDTO struct {
	Item         itemResponse `json:"item"`
	ActivityName string       `json:"activity_name,omitempty"`
}

// ---- plan CRUD ----------------------------------------------------------------

// CreatePlan handles POST /api/plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	plan, err := s.plans.Create(r.Context(), requestUserID(r), requestToTrip(req))
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, planToResponse(plan))
}

// ListPlans handles GET /api/plans: the user's plan history, most recent
// trip first.
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.ListByUser(r.Context(), requestUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]planResponse, len(plans))
	for i, p := range plans {
		out[i] = planToResponse(p)
	}
	respond(w, http.StatusOK, out)
}

// GetPlan handles GET /api/plans/{planID}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	plan, err := s.plans.GetByID(r.Context(), requestUserID(r), planID)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, planToResponse(plan))
}

// DeletePlan handles DELETE /api/plans/{planID}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	if err := s.plans.Delete(r.Context(), requestUserID(r), planID); err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusNoContent, nil)
}

// ChangePlanDates handles PUT /api/plans/{planID}/dates.
func (s *Server) ChangePlanDates(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	var req datesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	plan, err := s.plans.ChangeDates(r.Context(), requestUserID(r), planID, req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, planToResponse(plan))
}

// ---- activities ----------------------------------------------------------------

// AddActivity handles POST /api/plans/{planID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	var req newActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	act, err := s.plans.AddActivity(r.Context(), requestUserID(r), planID, service.NewActivity{
		Date:      req.Date.Time,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, activityToResponse(act))
}

// DeleteActivity handles DELETE /api/plans/{planID}/activities/{activityID}.
// Items that were attached to the activity stay on its date.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}
	activityID, err := pathUUID(r, "activityID")
	if err != nil {
		writeRequestError(w, "invalid activity id")
		return
	}

	if err := s.plans.DeleteActivity(r.Context(), requestUserID(r), planID, activityID); err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusNoContent, nil)
}

// RescheduleActivity handles PUT /api/plans/{planID}/activities/{activityID}/date.
func (s *Server) RescheduleActivity(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}
	activityID, err := pathUUID(r, "activityID")
	if err != nil {
		writeRequestError(w, "invalid activity id")
		return
	}

	var req rescheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	act, err := s.plans.RescheduleActivity(r.Context(), requestUserID(r), planID, activityID, req.Date.Time)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, activityToResponse(act))
}

// ---- items ----------------------------------------------------------------------

// AddItem handles POST /api/plans/{planID}/items.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	var req newItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	target, err := parseTarget(req.Target)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	item, err := s.plans.AddItem(r.Context(), requestUserID(r), planID, target, service.NewItem{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, itemToResponse(item))
}

// UpdateItem handles PATCH /api/plans/{planID}/items/{itemID}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		writeRequestError(w, "invalid item id")
		return
	}

	var req itemPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	patch := packing.ItemPatch{
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		ActivityID:    req.ActivityID,
		ClearDate:     req.ClearDate,
		ClearActivity: req.ClearActivity,
	}
	if req.Date != nil {
		patch.Date = &req.Date.Time
	}

	item, err := s.plans.UpdateItem(r.Context(), requestUserID(r), planID, itemID, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /api/plans/{planID}/items/{itemID}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		writeRequestError(w, "invalid item id")
		return
	}

	if err := s.plans.DeleteItem(r.Context(), requestUserID(r), planID, itemID); err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusNoContent, nil)
}

// ---- views ----------------------------------------------------------------------

// GetDateView handles GET /api/plans/{planID}/views/date.
func (s *Server) GetDateView(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	view, err := s.plans.DateView(r.Context(), requestUserID(r), planID)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, dateViewToResponse(view))
}

// GetCategoryView handles GET /api/plans/{planID}/views/category.
func (s *Server) GetCategoryView(w http.ResponseWriter, r *http.Request) {
	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	view, err := s.plans.CategoryView(r.Context(), requestUserID(r), planID)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, categoryViewToResponse(view))
}

// ---- suggestions ------------------------------------------------------------------

// SeedSuggestions handles POST /api/plans/{planID}/suggestions.
// Returns 503 when the server was started without a generator.
func (s *Server) SeedSuggestions(w http.ResponseWriter, r *http.Request) {
	if s.suggestions == nil {
		writeError(w, domain.ErrUnavailable)
		return
	}

	planID, err := pathUUID(r, "planID")
	if err != nil {
		writeRequestError(w, "invalid plan id")
		return
	}

	items, err := s.suggestions.Seed(r.Context(), requestUserID(r), planID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = itemToResponse(item)
	}
	respond(w, http.StatusCreated, out)
}

// ---- mapping helpers ----------------------------------------------------------------

// requestUserID returns the authenticated user's id. The auth middleware
// guarantees it is present on every route that calls this.
func requestUserID(r *http.Request) int64 {
	uid, _ := middleware.UserID(r.Context())
	return uid
}

// pathUUID parses the named chi path parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

var (
	errTargetDate     = errors.New(`target type "date" requires a date`)
	errTargetActivity = errors.New(`target type "activity" requires an activity_id`)
	errTargetType     = errors.New(`target type must be "unassigned", "date", or "activity"`)
)

// parseTarget converts the wire target into the model's attachment target.
// An absent type defaults to unassigned, matching a bare "add to list".
func parseTarget(t targetDTO) (packing.Target, error) {
	switch t.Type {
	case "", "unassigned":
		return packing.Unassigned(), nil
	case "date":
		if t.Date == nil {
			return packing.Target{}, errTargetDate
		}
		return packing.ForDate(t.Date.Time), nil
	case "activity":
		if t.ActivityID == nil {
			return packing.Target{}, errTargetActivity
		}
		return packing.ForActivity(*t.ActivityID), nil
	default:
		return packing.Target{}, errTargetType
	}
}

func requestToTrip(req tripRequest) domain.TripDescriptor {
	return domain.TripDescriptor{
		TripName: req.TripName,
		Destination: domain.Destination{
			Label: req.Destination.Label,
			Value: req.Destination.Value,
		},
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
		Travelers: domain.Travelers{
			Women:    req.Travelers.Women,
			Men:      req.Travelers.Men,
			Children: req.Travelers.Children,
		},
		Climate: domain.Climate(req.Climate),
	}
}

func planToResponse(p domain.Plan) planResponse {
	resp := planResponse{
		ID:       p.ID,
		TripName: p.Trip.TripName,
		Destination: destinationDTO{
			Label: p.Trip.Destination.Label,
			Value: p.Trip.Destination.Value,
		},
		StartDate: openapi_types.Date{Time: p.Trip.StartDate},
		EndDate:   openapi_types.Date{Time: p.Trip.EndDate},
		Travelers: travelersDTO{
			Women:    p.Trip.Travelers.Women,
			Men:      p.Trip.Travelers.Men,
			Children: p.Trip.Travelers.Children,
		},
		Climate:    string(p.Trip.Climate),
		Items:      make([]itemResponse, len(p.Items)),
		Activities: make([]activityResponse, len(p.Activities)),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for i, item := range p.Items {
		resp.Items[i] = itemToResponse(item)
	}
	for i, act := range p.Activities {
		resp.Activities[i] = activityToResponse(act)
	}
	return resp
}

func itemToResponse(item domain.Item) itemResponse {
	resp := itemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Category:   item.Category,
		Quantity:   item.Quantity,
		ActivityID: item.ActivityID,
	}
	if item.Date != nil {
		resp.Date = &openapi_types.Date{Time: *item.Date}
	}
	return resp
}

func activityToResponse(act domain.Activity) activityResponse {
	return activityResponse{
		ID:        act.ID,
		Name:      act.Name,
		Date:      openapi_types.Date{Time: act.Date},
		StartTime: act.StartTime,
		EndTime:   act.EndTime,
	}
}

func itemsToResponse(items []domain.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = itemToResponse(item)
	}
	return out
}

func dateViewToResponse(view packing.DateView) dateViewResponse {
	resp := dateViewResponse{
		Unassigned: itemsToResponse(view.Unassigned),
		Days:       make([]daySectionDTO, len(view.Days)),
	}
	for i, day := range view.Days {
		section := daySectionDTO{
			Date:       openapi_types.Date{Time: day.Date},
			Activities: make([]activitySectionDTO, len(day.Activities)),
			Items:      itemsToResponse(day.Items),
		}
		for j, as := range day.Activities {
			section.Activities[j] = activitySectionDTO{
				Activity: activityToResponse(as.Activity),
				Items:    itemsToResponse(as.Items),
			}
		}
		resp.Days[i] = section
	}
	return resp
}

func categoryViewToResponse(view packing.CategoryView) categoryViewResponse {
	resp := categoryViewResponse{Categories: make([]categorySectionDTO, len(view.Categories))}
	for i, cat := range view.Categories {
		section := categorySectionDTO{
			Category: cat.Category,
			Items:    make([]categoryEntryDTO, len(cat.Items)),
		}
		for j, entry := range cat.Items {
			section.Items[j] = categoryEntryDTO{
				Item:         itemToResponse(entry.Item),
				ActivityName: entry.ActivityName,
			}
		}
		resp.Categories[i] = section
	}
	return resp
}
