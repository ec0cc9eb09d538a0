package server

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"text_differentiator/export"
	"text_differentiator/generator"
	"text_differentiator/history"
	"text_differentiator/readability"
)

// --- Handlers ---

type optionsResp struct {
	Grades       []string            `json:"grades"`
	Models       []string            `json:"models"`
	DefaultModel string              `json:"default_model"`
	Defaults     generator.Options   `json:"defaults"`
	Profiles     []generator.Profile `json:"profiles"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	grades := make([]string, 0, 13)
	for _, g := range generator.Grades() {
		grades = append(grades, g.String())
	}
	writeJSON(w, http.StatusOK, optionsResp{
		Grades:       grades,
		Models:       s.opts.Models,
		DefaultModel: s.opts.DefaultModel,
		Defaults:     s.opts.Base,
		Profiles:     s.opts.Profiles.All(),
	})
}

type adaptReq struct {
	Text    string             `json:"text"`
	Model   string             `json:"model"`
	Profile string             `json:"profile"`
	Options *generator.Options `json:"options"`
}

type adaptResp struct {
	SessionID   string               `json:"session_id"`
	Adaptation  generator.Adaptation `json:"adaptation"`
	AdaptedHTML string               `json:"adapted_html"`
	Comparison  *export.Comparison   `json:"comparison,omitempty"`
	History     []generator.Record   `json:"history"`
}

// resolveOptions picks the profile options when a profile is named, the
// request options when given, and the server defaults otherwise.
func (s *Server) resolveOptions(profile string, reqOpts *generator.Options) (generator.Options, error) {
	base := s.opts.Base
	if reqOpts != nil {
		base = *reqOpts
	}
	opts, ok := s.opts.Profiles.Resolve(profile, base)
	if !ok {
		return generator.Options{}, fmt.Errorf("unknown profile %q", profile)
	}
	return opts, nil
}

func (s *Server) handleAdapt(w http.ResponseWriter, r *http.Request) {
	var req adaptReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := s.resolveOptions(req.Profile, req.Options)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.allowsModel(req.Model) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("model %q not allowed", req.Model))
		return
	}
	model := req.Model
	if model == "" {
		model = s.opts.DefaultModel
	}

	sess := s.session(w, r)
	res, err := s.adapt(r.Context(), sess, req.Text, opts, model)
	if err != nil {
		s.logger.Warn("adaptation failed", "error", err, "grade", opts.Grade.String())
		writeError(w, statusFor(err), err.Error())
		return
	}
	html, err := export.MarkdownToHTML(res.Adapted)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := adaptResp{
		SessionID:   sess.ID,
		Adaptation:  res,
		AdaptedHTML: html,
		History:     sess.Recent(recentLimit),
	}
	if c, ok := export.Compare(res.Original, res.Adapted); ok {
		resp.Comparison = &c
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.existingSession(r); ok {
		sess.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}

type readabilityReq struct {
	Text string `json:"text"`
}

type readabilityResp struct {
	// Report is null when the text is too short to analyze.
	Report *readability.Report `json:"report"`
}

func (s *Server) handleReadability(w http.ResponseWriter, r *http.Request) {
	var req readabilityReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var resp readabilityResp
	if rep, ok := readability.Score(req.Text); ok {
		resp.Report = &rep
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.existingSession(r)
	if !ok {
		writeError(w, http.StatusNotFound, "adapt a text first to view analytics")
		return
	}
	cur, ok := sess.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "adapt a text first to view analytics")
		return
	}
	c, ok := export.Compare(cur.Original, cur.Adapted)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "not enough text to analyze")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := recentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	if r.URL.Query().Get("source") == "db" {
		if s.opts.Store == nil {
			writeError(w, http.StatusNotFound, "history database disabled")
			return
		}
		entries, err := s.opts.Store.List(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	records := []generator.Record{}
	if sess, ok := s.existingSession(r); ok {
		records = sess.Recent(limit)
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")
	now := s.now()
	sess, hasSession := s.existingSession(r)

	switch kind {
	case "history.md", "history.html":
		var records []generator.Record
		if hasSession {
			records = sess.History()
		}
		if len(records) == 0 {
			http.Error(w, "no history yet", http.StatusNotFound)
			return
		}
		if kind == "history.md" {
			attach(w, export.HistoryFilename("md", now), "text/markdown; charset=utf-8")
			if err := export.HistoryMarkdown(w, records); err != nil {
				s.logger.Error("history export failed", "error", err)
			}
			return
		}
		attach(w, export.HistoryFilename("html", now), "text/html; charset=utf-8")
		if err := export.HistoryHTML(w, records); err != nil {
			s.logger.Error("history export failed", "error", err)
		}
		return
	}

	if !hasSession {
		http.Error(w, "nothing to export", http.StatusNotFound)
		return
	}
	cur, ok := sess.Current()
	if !ok {
		http.Error(w, "nothing to export", http.StatusNotFound)
		return
	}
	body, ok := export.Artifact(export.Kind(kind), cur, now)
	if !ok {
		http.Error(w, "nothing to export", http.StatusNotFound)
		return
	}
	attach(w, export.Filename(export.Kind(kind), cur.Grade, now), "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func attach(w http.ResponseWriter, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}
