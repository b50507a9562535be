package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"slidecraft/internal/ai"
	"slidecraft/internal/fetch"
	"slidecraft/internal/search"
)

// writeUpstreamError maps outbound-fetch failures onto gateway statuses: an
// exhausted retry budget means the upstream is temporarily unavailable, any
// other upstream failure is a bad gateway.
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, fetch.ErrRetryExhausted) {
		writeErrorMsg(w, http.StatusServiceUnavailable, "upstream temporarily unavailable")
		return
	}
	writeErrorMsg(w, http.StatusBadGateway, "upstream request failed")
}

func (s *Server) handleSearchImages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeErrorMsg(w, http.StatusBadRequest, "missing q parameter")
		return
	}
	page := intQuery(r, "page", 1)
	perPage := intQuery(r, "per_page", 20)
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = "en"
	}

	result, err := s.images.SearchImages(r.Context(), query, page, perPage, lang)
	if errors.Is(err, search.ErrNoAPIKey) {
		writeErrorMsg(w, http.StatusServiceUnavailable, "image search not configured")
		return
	}
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearchTitles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeErrorMsg(w, http.StatusBadRequest, "missing q parameter")
		return
	}
	limit := intQuery(r, "limit", 10)

	titles, err := s.wiki.SearchTitles(r.Context(), query, limit)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": titles})
}

func (s *Server) handleImageInfo(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("titles")
	if raw == "" {
		writeErrorMsg(w, http.StatusBadRequest, "missing titles parameter")
		return
	}

	var titles []string
	for _, t := range strings.Split(raw, "|") {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		writeErrorMsg(w, http.StatusBadRequest, "missing titles parameter")
		return
	}

	infos, err := s.wiki.ImageInfos(r.Context(), titles)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": infos})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		writeErrorMsg(w, http.StatusBadRequest, "missing prompt")
		return
	}

	answer, err := s.ai.Ask(r.Context(), body.Prompt)
	if errors.Is(err, ai.ErrNotConfigured) {
		writeErrorMsg(w, http.StatusServiceUnavailable, "ai service not configured")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusBadGateway, "ai request failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": answer})
}
