package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"wikiseek/search"
)

type relatedResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type searchResponse struct {
	Key     string            `json:"key"`
	Title   string            `json:"title"`
	Lang    string            `json:"lang"`
	URL     string            `json:"url"`
	Summary string            `json:"summary"`
	Related []relatedResponse `json:"related,omitempty"`
}

// SearchHandler handles GET /api/search?q=...&lang=...&mode=...&priority=...
// &limit=...&nocache=...
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	values := r.URL.Query()
	rawQuery := values.Get("q")
	if rawQuery == "" {
		http.Error(w, "missing q parameter", http.StatusBadRequest)
		return
	}

	lang := values.Get("lang")
	if lang == "" {
		lang = "en"
	}

	params := search.DefaultParams()
	if values.Get("mode") == "fast" {
		params.Mode = search.ModeFast
	}
	if values.Get("priority") == "content" {
		params.Priority = search.PriorityContent
	}
	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		params.ResultCount = limit
	}
	if v := values.Get("nocache"); v == "1" || v == "true" {
		params.UseCache = false
	}

	result, err := s.searcher.Search(r.Context(), rawQuery, lang, params)
	if err != nil {
		s.logger.Error("search failed", zap.String("query", rawQuery), zap.Error(err))
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	if result == nil {
		http.Error(w, "nothing found", http.StatusNotFound)
		return
	}

	resp := searchResponse{
		Key:     result.Key,
		Title:   result.Title,
		Lang:    result.Lang,
		URL:     result.URL,
		Summary: result.Summary,
	}
	for _, related := range result.SimpleResults {
		resp.Related = append(resp.Related, relatedResponse{Title: related.Title, URL: related.URL})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
