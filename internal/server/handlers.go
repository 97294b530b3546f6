package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	errs "github.com/stackcanvas/stackcanvas/pkg/errors"
	"github.com/stackcanvas/stackcanvas/pkg/export"
	"github.com/stackcanvas/stackcanvas/pkg/flow"
	"github.com/stackcanvas/stackcanvas/pkg/flow/layout"
	"github.com/stackcanvas/stackcanvas/pkg/history"
	"github.com/stackcanvas/stackcanvas/pkg/prompt"
	"github.com/stackcanvas/stackcanvas/pkg/store"
)

// graphResponse is a graph plus the mocked marker for AI fallbacks.
type graphResponse struct {
	Nodes  []flow.Node `json:"nodes"`
	Edges  []flow.Edge `json:"edges"`
	Mocked bool        `json:"mocked,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ai":     s.opts.AI.Available(),
	})
}

// handleGenerateGraph turns a description into a laid-out graph and records
// it in the history.
func (s *Server) handleGenerateGraph(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := errs.ValidateDescription(req.Description); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.opts.AI.GenerateGraph(r.Context(), req.Description)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "generate graph"))
		return
	}

	laid, err := layout.Apply(res.Graph, s.layoutConfig())
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidGraph, err, "layout generated graph"))
		return
	}

	entry := history.NewEntry(entryLabel(req.Description), req.Description, laid, res.Mocked)
	if err := s.opts.History.Append(r.Context(), entry); err != nil {
		s.opts.Logger.Warn("record history", "err", err)
	}

	s.writeJSON(w, http.StatusOK, graphResponse{
		Nodes:  laid.Nodes,
		Edges:  laid.Edges,
		Mocked: res.Mocked,
	})
}

func (s *Server) handleExplainGraph(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GraphData      flow.Graph `json:"graphData"`
		OriginalPrompt string     `json:"originalPrompt"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.GraphData.NodeCount() == 0 {
		s.writeError(w, errs.New(errs.ErrCodeInvalidGraph, "graphData with nodes is required"))
		return
	}
	if req.OriginalPrompt == "" {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "originalPrompt is required"))
		return
	}

	explanation, err := s.opts.AI.ExplainGraph(r.Context(), req.GraphData, req.OriginalPrompt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"explanation": explanation})
}

func (s *Server) handleGenerateScript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GraphData   flow.Graph `json:"graphData"`
		UserContext string     `json:"userContext"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.GraphData.NodeCount() == 0 {
		s.writeError(w, errs.New(errs.ErrCodeInvalidGraph, "graphData with nodes is required"))
		return
	}

	script, err := s.opts.AI.GenerateScript(r.Context(), req.GraphData, req.UserContext)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"script": script})
}

func (s *Server) handleBuilderPrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GraphData   flow.Graph `json:"graphData"`
		UserContext string     `json:"userContext"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.GraphData.NodeCount() == 0 {
		s.writeError(w, errs.New(errs.ErrCodeInvalidGraph, "graphData with nodes is required"))
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"prompt": prompt.Build(req.GraphData, req.UserContext),
	})
}

// handleLayout runs the layout engine over a caller-supplied graph.
// Dimensions default to the server configuration; the request may override
// individual values.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Graph  flow.Graph     `json:"graph"`
		Config *layout.Config `json:"config"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	cfg := s.layoutConfig()
	if req.Config != nil {
		cfg = mergeLayoutConfig(cfg, *req.Config)
	}

	laid, err := layout.Apply(req.Graph, cfg)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "layout"))
		return
	}
	s.writeJSON(w, http.StatusOK, laid)
}

func (s *Server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GraphData flow.Graph `json:"graphData"`
		Detailed  bool       `json:"detailed"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.GraphData.NodeCount() == 0 {
		s.writeError(w, errs.New(errs.ErrCodeInvalidGraph, "graphData with nodes is required"))
		return
	}

	dot := export.ToDOT(req.GraphData, export.Options{Detailed: req.Detailed})
	svg, err := export.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "render svg"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.opts.History.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "list history"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := s.opts.History.Get(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		s.writeError(w, errs.New(errs.ErrCodeNotFound, "history entry %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "load history entry"))
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.opts.History.Delete(r.Context(), id); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "delete history entry"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.History.Clear(r.Context()); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "clear history"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDiagramSave(w http.ResponseWriter, r *http.Request) {
	var d store.Diagram
	if err := decodeBody(r, &d); err != nil {
		s.writeError(w, err)
		return
	}
	if d.Name == "" {
		s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "name is required"))
		return
	}
	for _, n := range d.Graph.Nodes {
		if err := errs.ValidateNodeID(n.ID); err != nil {
			s.writeError(w, err)
			return
		}
	}

	if err := s.opts.Diagrams.Save(r.Context(), &d); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "save diagram"))
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDiagramList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	diagrams, err := s.opts.Diagrams.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "list diagrams"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"diagrams": diagrams})
}

func (s *Server) handleDiagramGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.opts.Diagrams.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, errs.New(errs.ErrCodeDiagramNotFound, "diagram %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "load diagram"))
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDiagramDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.opts.Diagrams.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, errs.New(errs.ErrCodeDiagramNotFound, "diagram %s not found", id))
		return
	}
	if err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "delete diagram"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) layoutConfig() layout.Config {
	cfg := s.opts.Layout
	cfg.Logger = s.opts.Logger
	return cfg
}

// mergeLayoutConfig overlays non-zero request values on the server default.
func mergeLayoutConfig(base, override layout.Config) layout.Config {
	if override.NodeWidth != 0 {
		base.NodeWidth = override.NodeWidth
	}
	if override.NodeHeight != 0 {
		base.NodeHeight = override.NodeHeight
	}
	if override.HorizontalSpacing != 0 {
		base.HorizontalSpacing = override.HorizontalSpacing
	}
	if override.VerticalSpacing != 0 {
		base.VerticalSpacing = override.VerticalSpacing
	}
	return base
}

// entryLabel derives a short history label from the description.
func entryLabel(description string) string {
	const maxLabel = 60
	if len(description) <= maxLabel {
		return description
	}
	return description[:maxLabel] + "..."
}
