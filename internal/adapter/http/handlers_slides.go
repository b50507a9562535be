package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"slidecraft/internal/app"
	"slidecraft/internal/domain"
)

func slideBody(sl *domain.Slide) map[string]any {
	return map[string]any{
		"id":         sl.ID,
		"slide_data": string(sl.Data),
		"owner_id":   sl.OwnerID,
		"created_at": sl.CreatedAt,
	}
}

func (s *Server) handleCreateSlide(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var body struct {
		SlideData string `json:"slide_data"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sl, err := s.slides.Create(r.Context(), user.ID, []byte(body.SlideData))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, slideBody(sl))
}

func (s *Server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}

	sl, err := s.slides.Get(r.Context(), user.ID, id)
	if errors.Is(err, app.ErrSlideNotFound) {
		writeErrorMsg(w, http.StatusNotFound, "slide not found")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, slideBody(sl))
}

func (s *Server) handleDeleteSlide(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}

	sl, err := s.slides.Delete(r.Context(), user.ID, id)
	if errors.Is(err, app.ErrSlideNotFound) {
		writeErrorMsg(w, http.StatusNotFound, "slide not found")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": sl.ID})
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
