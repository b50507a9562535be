package adapthttp

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"slidecraft/internal/app"
	"slidecraft/internal/domain"
)

func fileBody(f *domain.UploadedFile) map[string]any {
	return map[string]any{
		"id":          f.ID,
		"filename":    f.Filename,
		"stored_name": f.StoredName,
		"file_type":   f.Type,
		"owner_id":    f.OwnerID,
		"created_at":  f.CreatedAt,
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	fileType := mux.Vars(r)["file_type"]

	// MaxBytesReader makes oversized multipart bodies fail during parsing
	// instead of being buffered whole. The extra headroom covers multipart
	// boundaries and headers around a maximum-size file.
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize+64<<10)
	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeErrorMsg(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeErrorMsg(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = part.Close() }()

	file, err := s.files.Save(r.Context(), user.ID, fileType, header.Filename, header.Header.Get("Content-Type"), header.Size, part)
	switch {
	case errors.Is(err, app.ErrInvalidFileType):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, app.ErrInvalidContentType):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, app.ErrFileTooLarge):
		writeErrorMsg(w, http.StatusRequestEntityTooLarge, "file too large")
	case err != nil:
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusCreated, fileBody(file))
	}
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}

	file, err := s.files.Get(r.Context(), user.ID, id)
	if errors.Is(err, app.ErrFileNotFound) {
		writeErrorMsg(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.ServeFile(w, r, file.Path)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid id")
		return
	}

	file, err := s.files.Delete(r.Context(), user.ID, id)
	if errors.Is(err, app.ErrFileNotFound) {
		writeErrorMsg(w, http.StatusNotFound, "file not found")
		return
	}
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "id": file.ID})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	files, err := s.files.ListMine(r.Context(), user.ID)
	if err != nil {
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}

	items := make([]map[string]any, 0, len(files))
	for _, f := range files {
		items = append(items, fileBody(&f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
