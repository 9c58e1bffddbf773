package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rickgao/stockboard/internal/analytics"
	"github.com/rickgao/stockboard/internal/dataset"
	"github.com/rickgao/stockboard/internal/heatmap"
	"github.com/rickgao/stockboard/internal/version"
)

// handleIndex serves a page with the first PreviewRows rows of master.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	master := s.set.Master
	shown := s.cfg.PreviewRows
	if shown > master.NumRows() {
		shown = master.NumRows()
	}

	data := indexData{
		Title: "Historical Price Data",
		Shown: shown,
		Total: master.NumRows(),
		Table: tableView(master, shown, "table table-striped"),
	}
	s.render(w, "index", data)
}

// handleAll serves the full master table as an HTML fragment. The response
// is unbounded; /ws/rows streams the same rows incrementally.
func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	master := s.set.Master
	s.render(w, "table", tableView(master, master.NumRows(), "table table-sm"))
}

// handleTimeframes serves per-partition row counts as an HTML fragment.
func (s *Server) handleTimeframes(w http.ResponseWriter, r *http.Request) {
	s.render(w, "timeframes", s.set.Counts())
}

// handleCorrelations serves a page with one heatmap per sub-partition that
// has enough numeric data. Partitions that do not are omitted, not errors.
func (s *Server) handleCorrelations(w http.ResponseWriter, r *http.Request) {
	parts := []struct {
		name string
		tbl  *dataset.Table
	}{
		{"early", s.set.Early},
		{"mid", s.set.Mid},
		{"recent", s.set.Recent},
	}

	data := correlationsData{Title: "Correlation Heatmaps"}
	for _, p := range parts {
		m, ok := analytics.Correlations(p.tbl)
		if !ok {
			continue
		}
		png, err := heatmap.Render(m, heatmap.Options{
			Title:     p.name,
			WidthPts:  s.heat.WidthPts,
			HeightPts: s.heat.HeightPts,
			Divisions: s.heat.Divisions,
		})
		if err != nil {
			s.logger.Error("heatmap render failed, omitting image",
				"partition", p.name, "error", err)
			continue
		}
		data.Heatmaps = append(data.Heatmaps, heatmapItem{
			Name: p.name,
			URI:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		})
	}

	s.render(w, "correlations", data)
}

// handleDownload serves the raw source file as an attachment. The file is
// opened per request, independent of the startup load: if it has since
// disappeared, the client gets a 404, not a crash.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "data file not found", http.StatusNotFound)
			return
		}
		s.logger.Error("open data file for download", "error", err)
		http.Error(w, "failed to open data file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		s.logger.Error("stat data file for download", "error", err)
		http.Error(w, "failed to read data file", http.StatusInternalServerError)
		return
	}

	name := filepath.Base(s.sourcePath)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeContent(w, r, name, fi.ModTime(), f)
}

// handleHealth reports process health as JSON.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	counts := s.set.Counts()

	health := struct {
		Status     string                 `json:"status"`
		Version    string                 `json:"version"`
		Components map[string]interface{} `json:"components"`
	}{
		Status:     "healthy",
		Version:    version.String(),
		Components: make(map[string]interface{}),
	}

	health.Components["dataset"] = map[string]interface{}{
		"path": s.sourcePath,
		"rows": counts.Master,
	}
	health.Components["partitions"] = map[string]int{
		"early":  counts.Early,
		"mid":    counts.Mid,
		"recent": counts.Recent,
	}
	if counts.Master == 0 {
		health.Status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// render executes a named template, logging rather than half-writing on
// failure where possible.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template execution failed", "template", name, "error", err)
	}
}

// tableView adapts the first limit rows of a table to the table template.
func tableView(t *dataset.Table, limit int, class string) tableData {
	if limit > t.NumRows() {
		limit = t.NumRows()
	}
	data := tableData{
		Class:   class,
		Columns: t.ColumnNames(),
		Records: make([]recordData, 0, limit),
	}
	for _, rec := range t.Records[:limit] {
		data.Records = append(data.Records, recordData{Fields: rec.Fields})
	}
	return data
}
