package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	terrors "github.com/matzehuels/touchstone/pkg/errors"
	"github.com/matzehuels/touchstone/pkg/graph"
	"github.com/matzehuels/touchstone/pkg/highlight"
	"github.com/matzehuels/touchstone/pkg/observability"
	"github.com/matzehuels/touchstone/pkg/render"
	"github.com/matzehuels/touchstone/pkg/render/nodelink"
	"github.com/matzehuels/touchstone/pkg/view"
)

// Event types accepted by POST /api/views/{viewID}/events beyond the four
// highlight events.
const (
	eventDrag      = "drag"
	eventRelease   = "release"
	eventPan       = "pan"
	eventZoom      = "zoom"
	eventResetZoom = "reset-zoom"
)

// EventRequest is the body of an event post or websocket message. Which
// fields matter depends on Type: hover and click use Node; drag uses Node, X
// and Y; pan uses DX and DY; zoom uses Factor around X and Y.
type EventRequest struct {
	Type   string  `json:"type" validate:"required,oneof=hover unhover click background drag release pan zoom reset-zoom"`
	Node   string  `json:"node,omitempty" validate:"required_if=Type drag,max=256"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Factor float64 `json:"factor,omitempty" validate:"required_if=Type zoom,gte=0"`
}

// NeighborsResponse is returned by GET /api/graph/neighbors/{nodeID}.
type NeighborsResponse struct {
	ID        string   `json:"id"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"nodes":  len(s.views.Graph().Nodes),
		"views":  s.views.Len(),
	})
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.views.Graph())
}

func (s *Server) getNeighbors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "nodeID")
	idx := s.views.Index()
	if !idx.Contains(id) {
		s.respondError(w, r, terrors.New(terrors.ErrCodeNodeNotFound, "node %q is not in the graph", id))
		return
	}
	neighbors := idx.Neighbors(id)
	if neighbors == nil {
		neighbors = []string{}
	}
	respondJSON(w, http.StatusOK, NeighborsResponse{ID: id, Degree: idx.Degree(id), Neighbors: neighbors})
}

func (s *Server) listViews(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"views": s.views.IDs()})
}

func (s *Server) createView(w http.ResponseWriter, r *http.Request) {
	v := s.views.Create()
	observability.View().OnViewCreated(r.Context(), v.ID)
	w.Header().Set("Location", "/api/views/"+v.ID)
	respondJSON(w, http.StatusCreated, v.Snapshot())
}

func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	v, err := s.views.Get(chi.URLParam(r, "viewID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, v.Snapshot())
}

func (s *Server) deleteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	if _, err := s.views.Get(id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.views.Delete(id)
	observability.View().OnViewClosed(r.Context(), id, false)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	v, err := s.views.Get(chi.URLParam(r, "viewID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req EventRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		s.respondError(w, r, terrors.Wrap(terrors.ErrCodeInvalidInput, err, "decode event"))
		return
	}

	snap, err := handleEvent(r.Context(), v, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// handleEvent validates req, applies it to v and reports it to the view hooks.
func handleEvent(ctx context.Context, v *view.View, req EventRequest) (view.Snapshot, error) {
	if err := validateEvent(req); err != nil {
		return view.Snapshot{}, err
	}
	start := time.Now()
	if err := applyEvent(v, req); err != nil {
		return view.Snapshot{}, err
	}
	observability.View().OnEvent(ctx, v.ID, req.Type, req.Node, time.Since(start))
	return v.Snapshot(), nil
}

// applyEvent routes req to the matching view operation.
func applyEvent(v *view.View, req EventRequest) error {
	switch req.Type {
	case eventDrag:
		return v.Drag(req.Node, graph.Point{X: req.X, Y: req.Y})
	case eventRelease:
		v.Release(req.Node)
	case eventPan:
		v.Pan(req.DX, req.DY)
	case eventZoom:
		if req.Factor <= 0 {
			return terrors.New(terrors.ErrCodeInvalidEvent, "zoom factor must be positive")
		}
		v.Zoom(req.Factor, req.X, req.Y)
	case eventResetZoom:
		v.ResetViewport()
	default:
		kind, err := highlight.ParseEventKind(req.Type)
		if err != nil {
			return err
		}
		v.Apply(highlight.Event{Kind: kind, NodeID: req.Node})
	}
	return nil
}

func (s *Server) renderView(w http.ResponseWriter, r *http.Request) {
	v, err := s.views.Get(chi.URLParam(r, "viewID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	engine := s.opts.Engine
	if e := q.Get("engine"); e != "" {
		engine = nodelink.Engine(e)
	}
	scale := 0.0
	if raw := q.Get("scale"); raw != "" {
		scale, err = strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 {
			s.respondError(w, r, terrors.New(terrors.ErrCodeInvalidInput, "invalid scale %q", raw))
			return
		}
	}

	snap := v.Snapshot()
	opts := s.opts.Render
	opts.Pins = snap.Pins
	data, cached, err := s.renderer.Render(r.Context(), nodelink.Request{
		Graph:    v.Graph(),
		Effects:  snap.Effects,
		Options:  opts,
		Engine:   engine,
		Format:   format,
		Viewport: &snap.Viewport,
		Scale:    scale,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", render.ContentType(format))
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := terrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	respondJSON(w, status, errorResponse{Error: terrors.UserMessage(err), Code: string(terrors.GetCode(err))})
}
