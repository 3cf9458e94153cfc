package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"studycal/internal/auth"
	"studycal/internal/config"
	"studycal/internal/dates"
	"studycal/internal/ics"
	appLog "studycal/internal/log"
	"studycal/internal/model"
	"studycal/internal/plan"
	"studycal/internal/store"
	"studycal/internal/view"
)

// Server provides the planner HTTP API: auth, course and event access, view
// navigation and the ICS feed.
//
// The view controller is single-writer, so every handler that touches it (or
// the course snapshot it owns) runs under planMu.
type Server struct {
	cfg      *config.Config
	router   *mux.Router
	validate *validator.Validate

	verifier auth.Verifier
	sessions *auth.Sessions
	users    *store.Users

	planMu sync.Mutex
	ctrl   *view.Controller

	now func() time.Time
}

// NewServer constructs a Server around an initial course snapshot. verifier,
// sessions and users may be nil when auth is disabled.
func NewServer(cfg *config.Config, courses []*model.Course, users *store.Users, verifier auth.Verifier, sessions *auth.Sessions) *Server {
	s := &Server{
		cfg:      cfg,
		router:   mux.NewRouter(),
		validate: validator.New(),
		verifier: verifier,
		sessions: sessions,
		users:    users,
		now:      time.Now,
	}
	s.ctrl = view.NewController(courses, s.now())
	s.registerRoutes()
	return s
}

// Handler returns the router wrapped with auth when it is configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.router)
	if s.authEnabled() {
		appLog.Info("session auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.authMiddleware(h)
	}
	return h
}

// Snapshot returns the current course collection; the digest job reads it.
func (s *Server) Snapshot() []*model.Course {
	s.planMu.Lock()
	defer s.planMu.Unlock()
	return s.ctrl.Courses()
}

// authEnabled reports whether Google login is configured. Without a client
// id the API runs open, which is the local-development mode.
func (s *Server) authEnabled() bool {
	if s.cfg == nil || s.cfg.GoogleClientID == "" {
		return false
	}
	return s.verifier != nil && s.sessions != nil && s.users != nil
}

// authMiddleware requires a valid session token on every route except
// /health and the login endpoint itself.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/health" || path == "/api/auth/google-login" {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeFail(w, http.StatusUnauthorized, "No token provided")
			return
		}
		claims, err := s.sessions.Validate(token)
		if err != nil {
			writeFail(w, http.StatusUnauthorized, "Session invalid")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type claimsKey struct{}

func sessionClaims(r *http.Request) *auth.Claims {
	c, _ := r.Context().Value(claimsKey{}).(*auth.Claims)
	return c
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// StartServer runs the HTTP server until ctx is canceled, then shuts it
// down gracefully.
func StartServer(ctx context.Context, s *Server) error {
	srv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.Handler(),
	}
	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/google-login", s.handleGoogleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	api.HandleFunc("/courses", s.handleListCourses).Methods(http.MethodGet)
	api.HandleFunc("/courses", s.handleAddCourse).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id}", s.handleUpdateCourse).Methods(http.MethodPut)
	api.HandleFunc("/courses/{id}", s.handleDeleteCourse).Methods(http.MethodDelete)

	api.HandleFunc("/courses/{id}/meetings", s.handleAddMeeting).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id}/meetings/{meetingID}", s.handleDeleteSeries).Methods(http.MethodDelete)
	api.HandleFunc("/courses/{id}/meetings/{meetingID}/skip", s.handleSkipOccurrence).Methods(http.MethodPost)

	api.HandleFunc("/courses/{id}/assignments", s.handleAddAssignment).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id}/assignments/{assignmentID}", s.handleUpdateAssignment).Methods(http.MethodPatch)
	api.HandleFunc("/courses/{id}/assignments/{assignmentID}", s.handleDeleteAssignment).Methods(http.MethodDelete)
	api.HandleFunc("/courses/{id}/assignments/{assignmentID}/progress", s.handleBumpProgress).Methods(http.MethodPost)

	api.HandleFunc("/events", s.handleEventsOnDate).Methods(http.MethodGet)
	api.HandleFunc("/events/range", s.handleEventsRange).Methods(http.MethodGet)
	api.HandleFunc("/events/move", s.handleMove).Methods(http.MethodPost)

	api.HandleFunc("/view", s.handleViewState).Methods(http.MethodGet)
	api.HandleFunc("/view/mode", s.handleViewMode).Methods(http.MethodPost)
	api.HandleFunc("/view/navigate", s.handleViewNavigate).Methods(http.MethodPost)
	api.HandleFunc("/view/detail", s.handleViewDetail).Methods(http.MethodPost)

	api.HandleFunc("/export.ics", s.handleExportICS).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// -- auth ------------------------------------------------------------------

type googleLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// handleGoogleLogin verifies a Google ID token, creates the account on first
// login and hands back the planner's own session token.
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.authEnabled() {
		writeFail(w, http.StatusServiceUnavailable, "Login is not configured")
		return
	}
	var req googleLoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	profile, err := s.verifier.Verify(r.Context(), req.Token)
	if err != nil {
		appLog.Error("google login rejected", err)
		writeFail(w, http.StatusUnauthorized, "Invalid Google Token")
		return
	}

	user, err := s.users.Upsert(auth.UserFromProfile(profile))
	if err != nil {
		appLog.Error("user upsert failed", err, "google_id", profile.Subject)
		writeError(w, http.StatusInternalServerError, "failed to store user")
		return
	}

	token, _, err := s.sessions.Issue(user)
	if err != nil {
		appLog.Error("session issue failed", err, "google_id", user.GoogleID)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

// handleMe returns the profile for the current session; the UI calls it on
// refresh to restore the login.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if !s.authEnabled() {
		writeFail(w, http.StatusServiceUnavailable, "Login is not configured")
		return
	}
	claims := sessionClaims(r)
	if claims == nil {
		writeFail(w, http.StatusUnauthorized, "No token provided")
		return
	}
	user, err := s.users.ByGoogleID(claims.GoogleID)
	if err != nil {
		appLog.Error("user lookup failed", err, "google_id", claims.GoogleID)
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		writeFail(w, http.StatusNotFound, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": user})
}

// -- courses ---------------------------------------------------------------

// courseDTO decorates a course with the derived numbers the course screens
// show.
type courseDTO struct {
	*model.Course
	NextDue           *model.Assignment `json:"nextDue,omitempty"`
	WeeklyGoalPercent int               `json:"weeklyGoalPercent"`
	UpcomingMinutes   int               `json:"upcomingMinutes"`
}

func courseToDTO(c *model.Course) courseDTO {
	dto := courseDTO{
		Course:            c,
		WeeklyGoalPercent: plan.WeeklyGoalPercent(c),
		UpcomingMinutes:   plan.UpcomingMinutes(c),
	}
	if next, ok := plan.NextDue(c); ok {
		dto.NextDue = &next
	}
	return dto
}

func (s *Server) handleListCourses(w http.ResponseWriter, _ *http.Request) {
	s.planMu.Lock()
	courses := s.ctrl.Courses()
	dtos := make([]courseDTO, 0, len(courses))
	for _, c := range courses {
		dtos = append(dtos, courseToDTO(c))
	}
	s.planMu.Unlock()
	writeJSON(w, http.StatusOK, dtos)
}

type courseRequest struct {
	Code              string    `json:"code" validate:"required"`
	Name              string    `json:"name" validate:"required"`
	Color             string    `json:"color"`
	Term              string    `json:"term"`
	TermStart         dates.Key `json:"termStart"`
	TermEnd           dates.Key `json:"termEnd"`
	WeeklyGoalMinutes int       `json:"weeklyGoalMinutes" validate:"gte=0"`
}

func (r courseRequest) input() plan.CourseInput {
	return plan.CourseInput{
		Code:              r.Code,
		Name:              r.Name,
		Color:             r.Color,
		Term:              r.Term,
		TermStart:         r.TermStart,
		TermEnd:           r.TermEnd,
		WeeklyGoalMinutes: r.WeeklyGoalMinutes,
	}
}

func (s *Server) handleAddCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.AddCourse(courses, req.input())
	})
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.UpdateCourse(courses, id, req.input())
	})
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.DeleteCourse(courses, id), nil
	})
}

// -- meetings and assignments ----------------------------------------------

type meetingRequest struct {
	Start    string `json:"start" validate:"required"`
	End      string `json:"end" validate:"required"`
	Location string `json:"location"`

	// One of: an explicit date, or a weekly repeat.
	Date         dates.Key       `json:"date"`
	RepeatWeekly bool            `json:"repeatWeekly"`
	Days         []dates.Weekday `json:"days"`

	// Anchor supplies the default weekday for an empty weekly day set.
	Anchor dates.Key `json:"anchor" validate:"required"`
}

func (s *Server) handleAddMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]

	sched := plan.OneOffOn(req.Date)
	if req.RepeatWeekly {
		sched = plan.WeeklyOn(req.Days...)
	} else if req.Date == "" {
		sched = plan.OneOffOn(req.Anchor)
	}

	in := plan.MeetingInput{Start: req.Start, End: req.End, Location: req.Location}
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.AddMeeting(courses, id, in, sched, req.Anchor)
	})
}

func (s *Server) handleDeleteSeries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.DeleteMeetingSeries(courses, vars["id"], vars["meetingID"]), nil
	})
}

type skipRequest struct {
	Date dates.Key `json:"date" validate:"required"`
}

// handleSkipOccurrence removes a single date of a meeting. The event is
// located by projecting the date, so a meeting that does not occur there is
// a no-op.
func (s *Server) handleSkipOccurrence(w http.ResponseWriter, r *http.Request) {
	var req skipRequest
	if !s.decode(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	courseID, meetingID := vars["id"], vars["meetingID"]

	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		for _, ev := range plan.EventsOnDate(courses, req.Date) {
			if ev.Type == plan.EventMeeting && ev.CourseID == courseID && ev.MeetingID == meetingID {
				return plan.DeleteMeetingOccurrence(courses, courseID, ev, req.Date), nil
			}
		}
		return courses, nil
	})
}

type assignmentRequest struct {
	Title            string                 `json:"title" validate:"required"`
	DueDate          dates.Key              `json:"dueDate" validate:"required"`
	Status           model.AssignmentStatus `json:"status"`
	Notes            string                 `json:"notes"`
	EstimatedMinutes int                    `json:"estimatedMinutes" validate:"gte=0"`
}

func (s *Server) handleAddAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if !s.decode(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	in := plan.AssignmentInput{
		Title:            req.Title,
		Status:           req.Status,
		Notes:            req.Notes,
		EstimatedMinutes: req.EstimatedMinutes,
	}
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.AddAssignment(courses, id, in, req.DueDate)
	})
}

type assignmentEditRequest struct {
	Title            string                 `json:"title" validate:"required"`
	DueDate          dates.Key              `json:"dueDate"`
	Status           model.AssignmentStatus `json:"status"`
	Notes            string                 `json:"notes"`
	EstimatedMinutes int                    `json:"estimatedMinutes" validate:"gte=0"`
	MinutesCompleted int                    `json:"minutesCompleted" validate:"gte=0"`
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentEditRequest
	if !s.decode(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	edit := plan.AssignmentEdit{
		Title:            req.Title,
		DueDate:          req.DueDate,
		Status:           req.Status,
		Notes:            req.Notes,
		EstimatedMinutes: req.EstimatedMinutes,
		MinutesCompleted: req.MinutesCompleted,
	}
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.UpdateAssignment(courses, vars["id"], vars["assignmentID"], edit)
	})
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.DeleteAssignment(courses, vars["id"], vars["assignmentID"]), nil
	})
}

type progressRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (s *Server) handleBumpProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if !s.decode(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	s.mutate(w, func(courses []*model.Course) ([]*model.Course, error) {
		return plan.BumpAssignmentProgress(courses, vars["id"], vars["assignmentID"], req.Delta), nil
	})
}

// -- events ----------------------------------------------------------------

func (s *Server) handleEventsOnDate(w http.ResponseWriter, r *http.Request) {
	key := dates.Key(r.URL.Query().Get("date"))
	if !key.Valid() {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	s.planMu.Lock()
	events := plan.EventsOnDate(s.ctrl.Courses(), key)
	s.planMu.Unlock()
	if events == nil {
		events = []plan.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleEventsRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := dates.Key(q.Get("start"))
	if !start.Valid() {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	days := parseIntDefault(q.Get("days"), 7)
	if days <= 0 || days > 366 {
		writeError(w, http.StatusBadRequest, "days must be in 1..366")
		return
	}

	first, _ := dates.ParseKey(start)
	keys := make([]dates.Key, 0, days)
	for i := 0; i < days; i++ {
		keys = append(keys, dates.ToKey(dates.AddDays(first, i)))
	}

	s.planMu.Lock()
	byDate := plan.EventsInRange(s.ctrl.Courses(), keys)
	s.planMu.Unlock()
	writeJSON(w, http.StatusOK, byDate)
}

type moveRequest struct {
	Target  dates.Key       `json:"target" validate:"required"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

// handleMove is the drop side of drag-and-drop. Malformed payloads are
// swallowed the same way the UI swallows a corrupted drag.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.Target.Valid() {
		writeError(w, http.StatusBadRequest, "target must be YYYY-MM-DD")
		return
	}
	s.planMu.Lock()
	s.ctrl.HandleDrop(req.Payload, req.Target)
	s.planMu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// -- view ------------------------------------------------------------------

type viewStateResponse struct {
	Mode     view.Mode                  `json:"mode"`
	Anchor   dates.Key                  `json:"anchor"`
	Detail   dates.Key                  `json:"detail,omitempty"`
	OpenForm view.FormKind              `json:"openForm,omitempty"`
	Error    string                     `json:"error,omitempty"`
	Visible  []dates.Key                `json:"visible"`
	Events   map[dates.Key][]plan.Event `json:"events"`
}

func (s *Server) viewState() viewStateResponse {
	return viewStateResponse{
		Mode:     s.ctrl.Mode(),
		Anchor:   dates.ToKey(s.ctrl.Anchor()),
		Detail:   s.ctrl.Detail(),
		OpenForm: s.ctrl.OpenForm(),
		Error:    s.ctrl.Err(),
		Visible:  s.ctrl.VisibleKeys(),
		Events:   s.ctrl.EventsByDate(),
	}
}

func (s *Server) handleViewState(w http.ResponseWriter, _ *http.Request) {
	s.planMu.Lock()
	resp := s.viewState()
	s.planMu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

type viewModeRequest struct {
	Mode view.Mode `json:"mode" validate:"required"`
}

func (s *Server) handleViewMode(w http.ResponseWriter, r *http.Request) {
	var req viewModeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.Mode.Valid() {
		writeError(w, http.StatusBadRequest, "mode must be month, week or day")
		return
	}
	s.planMu.Lock()
	s.ctrl.SetViewMode(req.Mode)
	resp := s.viewState()
	s.planMu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

type viewNavigateRequest struct {
	Direction view.Direction `json:"direction" validate:"required,oneof=prev next today"`
}

func (s *Server) handleViewNavigate(w http.ResponseWriter, r *http.Request) {
	var req viewNavigateRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.planMu.Lock()
	s.ctrl.Navigate(req.Direction)
	resp := s.viewState()
	s.planMu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

type viewDetailRequest struct {
	// Empty date closes the detail.
	Date dates.Key `json:"date"`
}

func (s *Server) handleViewDetail(w http.ResponseWriter, r *http.Request) {
	var req viewDetailRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.planMu.Lock()
	if req.Date == "" {
		s.ctrl.CloseDetail()
	} else {
		s.ctrl.OpenDetail(req.Date)
	}
	resp := s.viewState()
	s.planMu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// -- export ----------------------------------------------------------------

func (s *Server) handleExportICS(w http.ResponseWriter, _ *http.Request) {
	s.planMu.Lock()
	courses := s.ctrl.Courses()
	s.planMu.Unlock()

	feed, err := ics.Export(courses, s.now())
	if err != nil {
		appLog.Error("ics export failed", err)
		writeError(w, http.StatusInternalServerError, "failed to build calendar feed")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="studycal.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(feed)
}

// -- helpers ---------------------------------------------------------------

// mutate runs a snapshot transition under planMu and writes the outcome.
// Validation failures surface as 422 with the user-facing message; every
// successful transition responds with the fresh course list.
func (s *Server) mutate(w http.ResponseWriter, fn func([]*model.Course) ([]*model.Course, error)) {
	s.planMu.Lock()
	next, err := fn(s.ctrl.Courses())
	if err == nil {
		s.ctrl.SetCourses(next)
	}
	courses := s.ctrl.Courses()
	s.planMu.Unlock()

	if err != nil {
		var verr *plan.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusUnprocessableEntity, verr.Msg)
			return
		}
		appLog.Error("mutation failed", err)
		writeError(w, http.StatusInternalServerError, "mutation failed")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// decode reads, unmarshals and validates a JSON request body. On failure it
// writes the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid field %s", verrs[0].Field()))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

// writeSuccess and writeFail mirror the auth response envelope the UI
// expects: {status, data} on success, {status, message} on failure.
func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"status": "success", "data": data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"status": "fail", "message": msg})
}
