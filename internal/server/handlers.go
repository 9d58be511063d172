package server

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/jy-crnz/SchedulerDesigner/internal/grid"
	"github.com/jy-crnz/SchedulerDesigner/internal/reconcile"
	"github.com/jy-crnz/SchedulerDesigner/internal/scan"
)

type cellView struct {
	Key      string `json:"key"`
	Position int    `json:"position"`
	Day      string `json:"day"`
	Kind     string `json:"kind"`
	Subject  string `json:"subject,omitempty"`
	Time     string `json:"time,omitempty"`
	Room     string `json:"room,omitempty"`
}

type headerView struct {
	StartYear string `json:"start_year"`
	EndYear   string `json:"end_year"`
	Term      string `json:"term"`
	Theme     string `json:"theme"`
}

type gridView struct {
	Header     headerView   `json:"header"`
	ActiveDays []int        `json:"active_days"`
	Columns    int          `json:"columns"`
	Rows       [][]cellView `json:"rows"`
}

func newGridView(g *grid.Grid) gridView {
	h := g.Header()
	layout := g.Layout()
	v := gridView{
		Header:     headerView{StartYear: h.StartYear, EndYear: h.EndYear, Term: h.Term, Theme: h.Theme},
		ActiveDays: layout.ActiveDays(),
		Columns:    layout.Columns(),
	}
	pos := 0
	for _, row := range g.Visible() {
		cells := make([]cellView, 0, len(row))
		for _, c := range row {
			cells = append(cells, cellView{
				Key:      c.Key.String(),
				Position: pos,
				Day:      grid.DayName(c.Key.Day),
				Kind:     c.Content.Kind.String(),
				Subject:  c.Content.Class.Subject,
				Time:     c.Content.Class.Time,
				Room:     c.Content.Class.Room,
			})
			pos++
		}
		v.Rows = append(v.Rows, cells)
	}
	return v
}

func (s *Server) writeGrid(w http.ResponseWriter, status int) {
	writeJSON(w, status, newGridView(s.sess.Grid()))
}

func (s *Server) handleGetGrid(w http.ResponseWriter, _ *http.Request) {
	s.writeGrid(w, http.StatusOK)
}

type placeRequest struct {
	Subject string `json:"subject" validate:"required,max=120"`
	Time    string `json:"time" validate:"max=60"`
	Room    string `json:"room" validate:"max=60"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	k, ok := parseKey(w, r)
	if !ok {
		return
	}
	var req placeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	subject := strings.ToUpper(strings.TrimSpace(req.Subject))
	room := strings.ToUpper(strings.TrimSpace(req.Room))
	if err := s.sess.Place(r.Context(), k, subject, strings.TrimSpace(req.Time), room); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	k, ok := parseKey(w, r)
	if !ok {
		return
	}
	if err := s.sess.Delete(r.Context(), k); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

func (s *Server) handleStar(w http.ResponseWriter, r *http.Request) {
	k, ok := parseKey(w, r)
	if !ok {
		return
	}
	if err := s.sess.ToggleStar(r.Context(), k); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

type pairRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

func (s *Server) decodePair(w http.ResponseWriter, r *http.Request) (grid.Key, grid.Key, bool) {
	var req pairRequest
	if !s.decodeBody(w, r, &req) {
		return grid.Key{}, grid.Key{}, false
	}
	src, err := grid.ParseKey(req.From)
	if err != nil {
		s.writeDomainError(w, r, err)
		return grid.Key{}, grid.Key{}, false
	}
	dst, err := grid.ParseKey(req.To)
	if err != nil {
		s.writeDomainError(w, r, err)
		return grid.Key{}, grid.Key{}, false
	}
	return src, dst, true
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	src, dst, ok := s.decodePair(w, r)
	if !ok {
		return
	}
	if err := s.sess.Move(r.Context(), src, dst); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	src, dst, ok := s.decodePair(w, r)
	if !ok {
		return
	}
	if err := s.sess.Copy(r.Context(), src, dst); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

type layoutRequest struct {
	Columns int   `json:"columns" validate:"min=1,max=7"`
	Days    []int `json:"days" validate:"omitempty,dive,min=0,max=6"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.sess.Resize(r.Context(), req.Columns, req.Days); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.ClearAll(r.Context()); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

type headerRequest struct {
	StartYear *string `json:"start_year" validate:"omitempty,max=10"`
	EndYear   *string `json:"end_year" validate:"omitempty,max=10"`
	Term      *string `json:"term" validate:"omitempty,max=40"`
	Theme     *string `json:"theme" validate:"omitempty,max=40"`
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	var req headerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Theme != nil && len(s.cfg.Themes) > 0 && !slices.Contains(s.cfg.Themes, strings.TrimPrefix(*req.Theme, "theme-")) {
		writeError(w, http.StatusUnprocessableEntity, "UNKNOWN_THEME", "unknown theme: "+*req.Theme)
		return
	}

	err := s.sess.UpdateHeader(r.Context(), func(h *grid.Header) {
		if req.StartYear != nil {
			h.StartYear = strings.TrimSpace(*req.StartYear)
		}
		if req.EndYear != nil {
			h.EndYear = strings.TrimSpace(*req.EndYear)
		}
		if req.Term != nil {
			h.Term = strings.ToUpper(strings.TrimSpace(*req.Term))
		}
		if req.Theme != nil {
			h.Theme = strings.TrimPrefix(*req.Theme, "theme-")
		}
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeGrid(w, http.StatusOK)
}

type reconcileRequest struct {
	Schedule []reconcile.Entry `json:"schedule" validate:"required,min=1"`
	Replace  bool              `json:"replace"`
}

type skippedView struct {
	Index   int    `json:"index"`
	Subject string `json:"subject"`
	Error   string `json:"error"`
}

type collisionView struct {
	Key      string `json:"key"`
	Replaced int    `json:"replaced"`
	By       int    `json:"by"`
}

type resultView struct {
	ActiveDays []int           `json:"active_days"`
	Placed     int             `json:"placed"`
	Skipped    []skippedView   `json:"skipped"`
	Collisions []collisionView `json:"collisions"`
}

func newResultView(res reconcile.Result) resultView {
	v := resultView{
		ActiveDays: res.ActiveDays,
		Placed:     len(res.Placed),
		Skipped:    []skippedView{},
		Collisions: []collisionView{},
	}
	for _, sk := range res.Skipped {
		v.Skipped = append(v.Skipped, skippedView{Index: sk.Index, Subject: sk.Entry.Subject, Error: sk.Err.Error()})
	}
	for _, c := range res.Collisions {
		v.Collisions = append(v.Collisions, collisionView{Key: c.Key.String(), Replaced: c.Replaced, By: c.By})
	}
	return v
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	res, err := s.sess.Reconcile(r.Context(), req.Schedule, reconcile.Options{Replace: req.Replace})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Result resultView `json:"result"`
		Grid   gridView   `json:"grid"`
	}{newResultView(res), newGridView(s.sess.Grid())})
}

type scanReply struct {
	scan.Response
	Applied *resultView `json:"applied,omitempty"`
}

// handleScan reads the uploaded schedule image. With ?apply=true the classes
// are also reconciled into the grid.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.scanner == nil {
		writeError(w, http.StatusServiceUnavailable, "SCAN_DISABLED", "no vision provider configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "TOO_LARGE", "image exceeds upload limit")
			return
		}
		writeError(w, http.StatusBadRequest, "NO_IMAGE", "No image uploaded.")
		return
	}
	f, _, err := r.FormFile(scan.FormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "NO_IMAGE", "No image uploaded.")
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "NO_IMAGE", "reading upload: "+err.Error())
		return
	}

	resp, err := s.scanner.Scan(r.Context(), data)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	reply := scanReply{Response: resp}

	if r.URL.Query().Get("apply") == "true" && len(resp.Schedule) > 0 {
		res, err := s.sess.Reconcile(r.Context(), resp.Entries(), reconcile.Options{
			Replace: r.URL.Query().Get("replace") == "true",
		})
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		v := newResultView(res)
		reply.Applied = &v
	}
	writeJSON(w, http.StatusOK, reply)
}
