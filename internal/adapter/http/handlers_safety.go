package adapthttp

import (
	"html/template"
	"net/http"

	"slidecraft/internal/blocklist"
)

var blockPage = template.Must(template.New("blocked").Parse(`<!DOCTYPE html>
<html>
<head><title>Link blocked</title></head>
<body>
<h1>This link has been blocked</h1>
<p>The destination <strong>{{.Domain}}</strong> appears on the {{.Source}} blocklist.</p>
</body>
</html>
`))

func (s *Server) handleSafetyCheck(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := s.safety.Check(r.Context(), body.URL)
	resp := map[string]any{
		"safe":   !res.Blocked,
		"reason": res.Reason,
	}
	if res.Blocked {
		resp["matched_domain"] = res.Domain
		resp["source"] = res.Source
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSafetyRedirect(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		writeErrorMsg(w, http.StatusBadRequest, "missing url parameter")
		return
	}

	res := s.safety.Check(r.Context(), target)
	switch {
	case res.Reason == blocklist.ReasonInvalid:
		writeErrorMsg(w, http.StatusBadRequest, "invalid url")
	case res.Blocked:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_ = blockPage.Execute(w, res)
	default:
		http.Redirect(w, r, target, http.StatusFound)
	}
}
