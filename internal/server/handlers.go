package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/addrscope/pkg/buildinfo"
	"github.com/matzehuels/addrscope/pkg/disclosure"
	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/explorer"
	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/render/nodelink"
)

// Drag phases.
const (
	PhaseStart = "start"
	PhaseMove  = "move"
	PhaseEnd   = "end"
)

// CreateViewResponse is returned by POST /api/v1/views.
type CreateViewResponse struct {
	ID   string        `json:"id"`
	View explorer.View `json:"view"`
}

// ClickRequest is the body of POST /api/v1/views/{id}/click.
type ClickRequest struct {
	Address string `json:"address" validate:"required,max=256"`
}

// DragRequest is the body of POST /api/v1/views/{id}/drag. X and Y are
// ignored for the start and end phases.
type DragRequest struct {
	Address string  `json:"address" validate:"required,max=256"`
	Phase   string  `json:"phase" validate:"required,oneof=start move end"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Views  int            `json:"views"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Views:  s.views.len(),
		Build:  buildinfo.Current(),
	})
}

func (s *Server) handleCreateView(w http.ResponseWriter, r *http.Request) {
	sess, err := explorer.NewSession(r.Context(), s.opts.Provider, s.opts.Session)
	if err != nil {
		s.respondError(w, err)
		return
	}
	snapshot := sess.View()

	loop := explorer.NewLoop(sess, s.opts.FrameInterval)
	v := s.views.add(loop)
	go func() {
		if err := loop.Run(s.base); err != nil && s.base.Err() == nil {
			s.logger.Warn("view loop stopped", "id", v.id, "err", err)
		}
	}()

	s.logger.Info("view created", "id", v.id, "nodes", len(snapshot.Graph.Nodes))
	s.respondJSON(w, http.StatusCreated, CreateViewResponse{ID: v.id, View: snapshot})
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	var out explorer.View
	err := s.do(r, func(sess *explorer.Session) error {
		out = sess.View()
		return nil
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.views.get(id); err != nil {
		s.respondError(w, err)
		return
	}
	s.views.remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, f)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	f, err := s.frame(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	opts := nodelink.Options{
		LinkLabels: r.URL.Query().Get("labels") == "true",
		Detailed:   r.URL.Query().Get("detailed") == "true",
	}
	svg, err := nodelink.RenderSVG(nodelink.ToDOT(f, opts))
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	var out disclosure.Outcome
	err := s.do(r, func(sess *explorer.Session) error {
		var err error
		out, err = sess.Click(r.Context(), req.Address)
		return err
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	var out layout.Frame
	err := s.do(r, func(sess *explorer.Session) error {
		var err error
		switch req.Phase {
		case PhaseStart:
			err = sess.DragStart(req.Address)
		case PhaseMove:
			err = sess.DragMove(req.Address, req.X, req.Y)
		case PhaseEnd:
			err = sess.DragEnd(req.Address)
		}
		if err != nil {
			return err
		}
		out = sess.Frame()
		return nil
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	cats := s.opts.Categories.FetchCategories(r.Context(), refresh)
	if cats == nil {
		s.respondError(w, errors.New(errors.ErrCodeNetwork, "categories are unavailable"))
		return
	}
	s.respondJSON(w, http.StatusOK, cats)
}

// do runs fn on the loop of the view named by the request.
func (s *Server) do(r *http.Request, fn func(*explorer.Session) error) error {
	v, err := s.views.get(chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return v.loop.Do(r.Context(), fn)
}

func (s *Server) frame(r *http.Request) (layout.Frame, error) {
	var f layout.Frame
	err := s.do(r, func(sess *explorer.Session) error {
		f = sess.Frame()
		return nil
	})
	return f, err
}
