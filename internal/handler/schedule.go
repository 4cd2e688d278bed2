package handler

import (
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/service"
)

func isoDate(d openapi_types.Date) string {
	return d.Time.Format(domain.DateLayout)
}

// yearMonth parses the required ?year= and ?month= query parameters. On
// failure it writes the 400 response and reports ok=false.
func yearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "year query parameter is required")
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "bad_request", "month query parameter must be 1-12")
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// dayView is one configured class day in the schedule response. Cancelled
// days are included with their flag set so clients can render them greyed
// out; Surplus lists instructors available that day but not yet placed.
type dayView struct {
	Date      string          `json:"date"`
	Cancelled bool            `json:"cancelled"`
	Merge     domain.MergeTag `json:"merge,omitempty"`
	Beginners domain.Slot     `json:"beginners"`
	Children  domain.Slot     `json:"children"`
	Adults    domain.Slot     `json:"adults"`
	Surplus   []string        `json:"surplusInstructorIds"`
}

type scheduleResponse struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	ClassDays []int     `json:"classDays"`
	Days      []dayView `json:"days"`
}

// getSchedule handles GET /schedule?year=&month=.
func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonth(w, r)
	if !ok {
		return
	}

	resp := scheduleResponse{Year: year, Month: int(month)}
	s.store.View(func(st *domain.State) {
		resp.ClassDays = append([]int(nil), st.ClassDays...)
		// Cancelled days stay in the view, so pass no cancellation filter.
		for _, date := range domain.ClassDates(year, month, st.ClassDays, nil) {
			v := dayView{
				Date:      date,
				Cancelled: st.CancelledDays[date],
				Surplus:   []string{},
			}
			// Clone the slots: serialization happens after View returns,
			// so the response must not alias the live assistant slices.
			if day := st.Day(date); day != nil {
				v.Merge = day.Merge
				v.Beginners = day.Beginners.Clone()
				v.Children = day.Children.Clone()
				v.Adults = day.Adults.Clone()
			}
			for _, inst := range st.Surplus(date) {
				v.Surplus = append(v.Surplus, inst.ID)
			}
			resp.Days = append(resp.Days, v)
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

type assignRequest struct {
	Date         openapi_types.Date `json:"date" validate:"required"`
	Group        domain.Group       `json:"group" validate:"required,oneof=beginners children adults"`
	InstructorID string             `json:"instructorId"`
	Confirm      bool               `json:"confirm"`
}

// assign handles POST /schedule/assign. An empty instructorId clears the
// slot, mirroring the unassign endpoint.
func (s *Server) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.schedule.Assign(isoDate(req.Date), req.Group, req.InstructorID, req.Confirm)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeMutationResult(w, res)
}

type slotRequest struct {
	Date  openapi_types.Date `json:"date" validate:"required"`
	Group domain.Group       `json:"group" validate:"required,oneof=beginners children adults"`
}

// unassign handles POST /schedule/unassign.
func (s *Server) unassign(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.Unassign(isoDate(req.Date), req.Group); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

type assistantRequest struct {
	Date         openapi_types.Date `json:"date" validate:"required"`
	Group        domain.Group       `json:"group" validate:"required,oneof=beginners children adults"`
	InstructorID string             `json:"instructorId" validate:"required"`
	Confirm      bool               `json:"confirm"`
}

// addAssistant handles POST /schedule/assistants.
func (s *Server) addAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.schedule.AddAssistant(isoDate(req.Date), req.Group, req.InstructorID, req.Confirm)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeMutationResult(w, res)
}

// removeAssistant handles DELETE /schedule/assistants.
func (s *Server) removeAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.RemoveAssistant(isoDate(req.Date), req.Group, req.InstructorID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

type descriptionRequest struct {
	Date        openapi_types.Date `json:"date" validate:"required"`
	Group       domain.Group       `json:"group" validate:"required,oneof=beginners children adults"`
	Description string             `json:"description"`
	Feedback    *string            `json:"feedbackPoints"`
}

// setDescription handles PUT /schedule/description. Feedback is only
// touched when the field is present in the body.
func (s *Server) setDescription(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.SetDescription(isoDate(req.Date), req.Group, req.Description, req.Feedback); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

type mergeRequest struct {
	Date  openapi_types.Date `json:"date" validate:"required"`
	Merge domain.MergeTag    `json:"merge"`
}

// setMerge handles PUT /schedule/merge. An empty merge value splits the day
// back into three independent blocks.
func (s *Server) setMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.SetMerge(isoDate(req.Date), req.Merge); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

type swapRequest struct {
	SourceDate  openapi_types.Date `json:"sourceDate" validate:"required"`
	SourceGroup domain.Group       `json:"sourceGroup" validate:"required,oneof=beginners children adults"`
	TargetDate  openapi_types.Date `json:"targetDate" validate:"required"`
	TargetGroup domain.Group       `json:"targetGroup" validate:"required,oneof=beginners children adults"`
	Confirm     bool               `json:"confirm"`
}

// swap handles POST /schedule/swap.
func (s *Server) swap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.schedule.Swap(isoDate(req.SourceDate), req.SourceGroup, isoDate(req.TargetDate), req.TargetGroup, req.Confirm)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeMutationResult(w, res)
}

type dropRequest struct {
	InstructorID string              `json:"instructorId" validate:"required"`
	TargetDate   openapi_types.Date  `json:"targetDate" validate:"required"`
	TargetGroup  domain.Group        `json:"targetGroup" validate:"required,oneof=beginners children adults"`
	SourceDate   *openapi_types.Date `json:"sourceDate"`
	SourceGroup  domain.Group        `json:"sourceGroup" validate:"omitempty,oneof=beginners children adults"`
	Confirm      bool                `json:"confirm"`
	Choice       service.DropChoice  `json:"choice" validate:"omitempty,oneof=replace assistant"`
}

// drop handles POST /schedule/drop. Omitting sourceDate/sourceGroup marks
// the drag as coming from the roster sidebar.
func (s *Server) drop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	svcReq := service.DropRequest{
		InstructorID: req.InstructorID,
		TargetDate:   isoDate(req.TargetDate),
		TargetGroup:  req.TargetGroup,
		SourceGroup:  req.SourceGroup,
		Confirm:      req.Confirm,
		Choice:       req.Choice,
	}
	if req.SourceDate != nil {
		svcReq.SourceDate = isoDate(*req.SourceDate)
	}
	res, err := s.schedule.Drop(svcReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeMutationResult(w, res)
}

type dayRequest struct {
	Date openapi_types.Date `json:"date" validate:"required"`
}

// cancelDay handles POST /days/cancel.
func (s *Server) cancelDay(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.CancelDay(isoDate(req.Date)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

// restoreDay handles POST /days/restore.
func (s *Server) restoreDay(w http.ResponseWriter, r *http.Request) {
	var req dayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.RestoreDay(isoDate(req.Date)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

type monthRequest struct {
	Year  int `json:"year" validate:"required,min=2000,max=2200"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// generate handles POST /schedule/generate.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.generator.Generate(req.Year, time.Month(req.Month)))
}

// clearMonth handles POST /schedule/clear.
func (s *Server) clearMonth(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.schedule.ClearMonth(req.Year, time.Month(req.Month)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.MutationResult{Applied: true})
}

// getStats handles GET /stats?year=&month=.
func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	year, month, ok := yearMonth(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Month(year, month))
}
