package adapthttp

import (
	"errors"
	"net/http"

	"slidecraft/internal/app"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.auth.Register(r.Context(), body.Username, body.Password)
	if errors.Is(err, app.ErrUsernameTaken) {
		writeErrorMsg(w, http.StatusConflict, "username already registered")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		writeErrorMsg(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Tokens are stateless, so logout is a client-side concern. The endpoint
// exists so clients have a uniform call to make.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
	})
}

func (s *Server) handleMySlides(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	slides, err := s.slides.ListMine(r.Context(), user.ID)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	items := make([]map[string]any, 0, len(slides))
	for _, sl := range slides {
		items = append(items, slideBody(&sl))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
