package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/udisondev/armsim/internal/arm"
	"github.com/udisondev/armsim/internal/config"
	"github.com/udisondev/armsim/internal/render"
	"github.com/udisondev/armsim/internal/view"
)

// SessionCookie is the cookie holding the viewer's session ID.
const SessionCookie = "armsim_session"

var errBadInput = errors.New("bad input")

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/params", s.handleParams)
	mux.HandleFunc("POST /api/view/pan", s.handlePan)
	mux.HandleFunc("POST /api/view/drag", s.handleDrag)
	mux.HandleFunc("POST /api/view/{action}", s.handleViewAction)
	mux.HandleFunc("GET /arm.svg", s.handleFigure)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// session returns the viewer's session, creating one (and setting the cookie)
// when the request carries no valid session ID.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *view.SessionInfo {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if info, ok := s.sessions.Get(id); ok {
				return info
			}
		}
	}

	info := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    info.ID.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Debug("session created", "session", info.ID, "active", s.sessions.Count())
	return info
}

// card is one torque display.
type card struct {
	Joint  arm.Joint
	Torque arm.Torque
	Max    float64
	Color  string
}

// input is one slider/number pair.
type input struct {
	Category view.Category
	Name     string
	Label    string
	Unit     string
	Value    float64
	Min      float64
	Max      float64
	Step     float64
}

// coordinate is one row of the coordinates table.
type coordinate struct {
	Joint arm.Joint
	X     string
	Y     string
}

type pageData struct {
	Cards       []card
	Inputs      []input
	Coordinates []coordinate
	ZoomPercent int
	Width       int
	Height      int
}

func (s *Server) pageData(snap view.Snapshot) pageData {
	b := s.cfg.Bounds
	d := pageData{
		ZoomPercent: snap.ZoomPercent(),
		Width:       s.cfg.View.Width,
		Height:      s.cfg.View.Height,
	}

	for _, j := range arm.ActuatedJoints() {
		d.Cards = append(d.Cards, card{
			Joint:  j,
			Torque: snap.Torques.At(j),
			Max:    snap.MaxTorque[j],
			Color:  view.Hex(snap.Colors[j]),
		})
	}

	for _, l := range arm.Links() {
		d.Inputs = append(d.Inputs, input{
			Category: view.Lengths, Name: string(l), Label: "Length " + string(l), Unit: "cm",
			Value: snap.Params.Lengths.Get(l), Min: b.Length(l).Min, Max: b.Length(l).Max, Step: 1,
		})
	}
	for _, l := range arm.Links() {
		d.Inputs = append(d.Inputs, input{
			Category: view.Angles, Name: string(l), Label: "Angle " + string(l), Unit: "°",
			Value: snap.Params.Angles.Get(l), Min: b.Angle.Min, Max: b.Angle.Max, Step: 1,
		})
	}
	for _, j := range arm.MassJoints() {
		d.Inputs = append(d.Inputs, input{
			Category: view.Masses, Name: string(j), Label: "Mass " + string(j), Unit: "kg",
			Value: snap.Params.Masses.Get(j), Min: b.Mass.Min, Max: b.Mass.Max, Step: 0.1,
		})
	}

	for _, j := range arm.AllJoints() {
		p := snap.Frame.At(j)
		d.Coordinates = append(d.Coordinates, coordinate{
			Joint: j,
			X:     strconv.FormatFloat(arm.Round2(p.X), 'f', 2, 64),
			Y:     strconv.FormatFloat(arm.Round2(p.Y), 'f', 2, 64),
		})
	}
	return d
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, s.pageData(info.Session.Snapshot())); err != nil {
		slog.Error("rendering page", "session", info.ID, "error", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)
	writeJSON(w, http.StatusOK, info.Session.Snapshot())
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)

	category, err := view.ParseCategory(r.FormValue("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	value, err := formFloat(r, "value")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := info.Session.Set(category, r.FormValue("name"), value); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, info.Session.Snapshot())
}

func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)

	dx, err := formFloat(r, "dx")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dy, err := formFloat(r, "dy")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	info.Session.Pan(dx, dy)

	writeJSON(w, http.StatusOK, info.Session.Snapshot())
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)
	phase := r.FormValue("phase")

	if phase == "end" {
		info.Session.EndDrag()
		writeJSON(w, http.StatusOK, info.Session.Snapshot())
		return
	}

	x, err := formFloat(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := formFloat(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch phase {
	case "start":
		info.Session.BeginDrag(x, y)
	case "move":
		info.Session.DragTo(x, y)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: drag phase %q", errBadInput, phase))
		return
	}

	writeJSON(w, http.StatusOK, info.Session.Snapshot())
}

func (s *Server) handleViewAction(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)

	switch action := r.PathValue("action"); action {
	case "zoom-in":
		info.Session.ZoomIn()
	case "zoom-out":
		info.Session.ZoomOut()
	case "reset":
		info.Session.Reset()
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown view action %q", action))
		return
	}

	writeJSON(w, http.StatusOK, info.Session.Snapshot())
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	info := s.session(w, r)
	snap, vp := info.Session.State()

	p, err := render.Figure(snap, vp, s.palette)
	if err != nil {
		slog.Error("building figure", "session", info.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.WriteTo(w, p, vp, "svg"); err != nil {
		slog.Error("writing figure", "session", info.ID, "error", err)
	}
}

// handleHealth answers without touching sessions.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"sessions": s.sessions.Count()})
}

// formFloat parses a finite float form value.
func formFloat(r *http.Request, key string) (float64, error) {
	raw := r.FormValue(key)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadInput, key, raw)
	}
	if err := config.CheckFinite(key, v); err != nil {
		return 0, err
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
