package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/thurmanmarka/horizon"
)

type eventJSON struct {
	Time   *time.Time `json:"time,omitempty"`
	Found  bool       `json:"found"`
	Status string     `json:"status"`
}

func event(t time.Time, found bool, status horizon.Status) eventJSON {
	e := eventJSON{Found: found, Status: status.String()}
	if found {
		e.Time = &t
	}
	return e
}

type riseSetResponse struct {
	Body  string    `json:"body"`
	Date  string    `json:"date"`
	Model string    `json:"model"`
	Rise  eventJSON `json:"rise"`
	Set   eventJSON `json:"set"`
}

type crossingJSON struct {
	Time      time.Time `json:"time"`
	Direction string    `json:"direction"`
}

type crossingsResponse struct {
	Body      string         `json:"body"`
	Start     time.Time      `json:"start"`
	End       time.Time      `json:"end"`
	Model     string         `json:"model"`
	Crossings []crossingJSON `json:"crossings"`
}

type moonEventsResponse struct {
	Date   string         `json:"date"`
	Model  string         `json:"model"`
	Events []crossingJSON `json:"events"`
}

type windowJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type twilightResponse struct {
	Kind    string      `json:"kind"`
	Date    string      `json:"date"`
	Dawn    *eventJSON  `json:"dawn,omitempty"`
	Dusk    *eventJSON  `json:"dusk,omitempty"`
	Morning *windowJSON `json:"morning,omitempty"`
	Evening *windowJSON `json:"evening,omitempty"`
}

type positionJSON struct {
	Time             time.Time `json:"time"`
	Altitude         float64   `json:"altitude"`
	ApparentAltitude float64   `json:"apparent_altitude"`
	Azimuth          float64   `json:"azimuth"`
	RA               float64   `json:"ra"`
	Dec              float64   `json:"dec"`
	DistanceKm       float64   `json:"distance_km"`
	JulianDate       float64   `json:"julian_date"`
	Visible          bool      `json:"visible"`
}

func position(p horizon.Position) positionJSON {
	return positionJSON{
		Time:             p.Time,
		Altitude:         p.Altitude,
		ApparentAltitude: p.ApparentAltitude,
		Azimuth:          p.Azimuth,
		RA:               p.RA,
		Dec:              p.Dec,
		DistanceKm:       p.DistanceKm,
		JulianDate:       p.JulianDate,
		Visible:          p.Visible,
	}
}

type positionResponse struct {
	Body string `json:"body"`
	positionJSON
}

type frameJSON struct {
	Time time.Time    `json:"time"`
	Sun  positionJSON `json:"sun"`
	Moon positionJSON `json:"moon"`
}

type observationsResponse struct {
	Frames []frameJSON `json:"frames"`
}

func crossings(cs []horizon.Crossing) []crossingJSON {
	out := make([]crossingJSON, len(cs))
	for i, c := range cs {
		out[i] = crossingJSON{Time: c.Time, Direction: c.Direction.String()}
	}
	return out
}

func annotate(r *http.Request, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(r.Context()).SetAttributes(attrs...)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "model": s.finder.Model()})
}

func (s *Server) handleRiseSet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b, err := body(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := coordinates(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := date(q, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := s.target(q, b, loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := searchOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	annotate(r, attribute.String("horizon.body", b.String()), attribute.String("horizon.date", d.Format(time.DateOnly)))

	rs, err := s.finder.FindRiseSet(b, loc, d, target, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, riseSetResponse{
		Body:  b.String(),
		Date:  d.Format(time.DateOnly),
		Model: s.finder.Model(),
		Rise:  event(rs.Rise, rs.HasRise, rs.RiseStatus),
		Set:   event(rs.Set, rs.HasSet, rs.SetStatus),
	})
}

func (s *Server) handleCrossings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b, err := body(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := coordinates(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start, err := instant(q, "start")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	end, err := instant(q, "end")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if end.Sub(start) > s.opts.MaxWindow {
		s.writeError(w, r, badRequest("window %v exceeds the %v limit", end.Sub(start), s.opts.MaxWindow))
		return
	}
	target, err := s.target(q, b, loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := searchOptions(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	annotate(r, attribute.String("horizon.body", b.String()), attribute.Float64("horizon.window_hours", end.Sub(start).Hours()))

	found, err := s.finder.FindCrossings(b, loc, start, end, target, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, crossingsResponse{
		Body:      b.String(),
		Start:     start,
		End:       end,
		Model:     s.finder.Model(),
		Crossings: crossings(found),
	})
}

func (s *Server) handleMoonEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc, err := coordinates(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := date(q, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	events, err := s.finder.MoonEvents(loc, d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, moonEventsResponse{
		Date:   d.Format(time.DateOnly),
		Model:  s.finder.Model(),
		Events: crossings(events),
	})
}

func (s *Server) handleTwilight(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc, err := coordinates(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := date(q, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	kind := q.Get("kind")
	if kind == "" {
		kind = "civil"
	}
	resp := twilightResponse{Kind: kind, Date: d.Format(time.DateOnly)}

	switch kind {
	case "golden", "blue":
		find := s.finder.GoldenHourFor
		if kind == "blue" {
			find = s.finder.BlueHourFor
		}
		phases, err := find(loc, d)
		if err != nil && !errors.Is(err, horizon.ErrNoRiseNoSet) {
			s.writeError(w, r, err)
			return
		}
		if phases.HasMorning {
			resp.Morning = &windowJSON{Start: phases.Morning.Start, End: phases.Morning.End}
		}
		if phases.HasEvening {
			resp.Evening = &windowJSON{Start: phases.Evening.Start, End: phases.Evening.End}
		}
	default:
		tk, err := horizon.ParseTwilightKind(kind)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		rs, err := s.finder.TwilightFor(loc, d, tk)
		if err != nil && !errors.Is(err, horizon.ErrNoRiseNoSet) {
			s.writeError(w, r, err)
			return
		}
		dawn := event(rs.Rise, rs.HasRise, rs.RiseStatus)
		dusk := event(rs.Set, rs.HasSet, rs.SetStatus)
		resp.Dawn, resp.Dusk = &dawn, &dusk
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b, err := body(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	loc, err := coordinates(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t := s.now().UTC()
	if q.Get("time") != "" {
		if t, err = instant(q, "time"); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	p, err := s.finder.Position(b, loc, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, positionResponse{Body: b.String(), positionJSON: position(p)})
}

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc, err := coordinates(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start, err := instant(q, "start")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	end, err := instant(q, "end")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	frames := 2
	if raw := q.Get("frames"); raw != "" {
		if frames, err = strconv.Atoi(raw); err != nil {
			s.writeError(w, r, badRequest("invalid frames %q", raw))
			return
		}
	}
	if frames > s.opts.MaxFrames {
		s.writeError(w, r, badRequest("frames %d exceeds the %d limit", frames, s.opts.MaxFrames))
		return
	}
	annotate(r, attribute.Int("horizon.frames", frames))

	obs, err := s.finder.Observe(loc, start, end, frames)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := observationsResponse{Frames: make([]frameJSON, len(obs))}
	for i, o := range obs {
		resp.Frames[i] = frameJSON{Time: o.Time, Sun: position(o.Sun), Moon: position(o.Moon)}
	}
	writeJSON(w, http.StatusOK, resp)
}
