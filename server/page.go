package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"text_differentiator/export"
	"text_differentiator/generator"
)

var templateFuncs = template.FuncMap{
	"arrow": arrow,
}

// arrow renders a before→after metric; floats keep one decimal.
func arrow(before, after any) string {
	return metric(before) + "→" + metric(after)
}

func metric(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return fmt.Sprint(v)
}

type pageData struct {
	Grades     []string
	Models     []string
	Profiles   []generator.Profile
	Options    generator.Options
	Model      string
	Profile    string
	Text       string
	Current    *generator.Adaptation
	Adapted    template.HTML
	Comparison *export.Comparison
	History    []generator.Record
	Error      string
}

func (s *Server) newPageData(sess *generator.Session) pageData {
	grades := make([]string, 0, 13)
	for _, g := range generator.Grades() {
		grades = append(grades, g.String())
	}
	d := pageData{
		Grades:   grades,
		Models:   s.opts.Models,
		Profiles: s.opts.Profiles.All(),
		Options:  s.opts.Base,
		Model:    s.opts.DefaultModel,
		Profile:  "None",
	}
	if sess == nil {
		return d
	}
	d.History = sess.Recent(recentLimit)
	cur, ok := sess.Current()
	if !ok {
		return d
	}
	d.Current = &cur
	d.Text = cur.Original
	d.Options.Grade = cur.Grade
	if cur.Model != "" {
		d.Model = cur.Model
	}
	if html, err := export.MarkdownToHTML(cur.Adapted); err == nil {
		d.Adapted = template.HTML(html) //nolint:gosec // goldmark omits raw HTML
	}
	if c, ok := export.Compare(cur.Original, cur.Adapted); ok {
		d.Comparison = &c
	}
	return d
}

func (s *Server) render(w http.ResponseWriter, status int, d pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, d); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.existingSession(r)
	s.render(w, http.StatusOK, s.newPageData(sess))
}

// formOptions reads the sidebar controls; a chosen profile wins over them.
func (s *Server) formOptions(r *http.Request) (generator.Options, string, error) {
	opts := s.opts.Base
	if g := r.PostFormValue("grade"); g != "" {
		grade, err := generator.ParseGrade(g)
		if err != nil {
			return opts, "", err
		}
		opts.Grade = grade
	}
	opts.SimplifyVocab = r.PostFormValue("simplify_vocab") != ""
	opts.InTextDefinitions = r.PostFormValue("in_text_definitions") != ""
	opts.ShortParagraphs = r.PostFormValue("short_paragraphs") != ""
	opts.VisualBreaks = r.PostFormValue("visual_breaks") != ""
	opts.GenerateQuestions = r.PostFormValue("generate_questions") != ""

	profile := r.PostFormValue("profile")
	resolved, err := s.resolveOptions(profile, &opts)
	return resolved, profile, err
}

func (s *Server) handleAdaptForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	d := s.newPageData(sess)
	d.Text = r.PostFormValue("text")

	opts, profile, err := s.formOptions(r)
	d.Options, d.Profile = opts, profile
	if profile == "" {
		d.Profile = "None"
	}
	if err != nil {
		d.Error = err.Error()
		s.render(w, http.StatusBadRequest, d)
		return
	}
	model := r.PostFormValue("model")
	if !s.allowsModel(model) {
		d.Error = "model not allowed: " + model
		s.render(w, http.StatusBadRequest, d)
		return
	}
	if model == "" {
		model = s.opts.DefaultModel
	}
	d.Model = model

	if strings.TrimSpace(d.Text) == "" {
		d.Error = "Enter some text to adapt."
		s.render(w, http.StatusBadRequest, d)
		return
	}
	if _, err := s.adapt(r.Context(), sess, d.Text, opts, model); err != nil {
		s.logger.Warn("adaptation failed", "error", err, "grade", opts.Grade.String())
		d.Error = "Adaptation failed: " + err.Error()
		s.render(w, statusFor(err), d)
		return
	}

	out := s.newPageData(sess)
	out.Options, out.Profile, out.Model = opts, d.Profile, model
	s.render(w, http.StatusOK, out)
}

func (s *Server) handleClearForm(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.existingSession(r); ok {
		sess.Clear()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
