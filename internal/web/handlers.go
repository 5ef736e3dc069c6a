package web

// handlers.go implements the import review API. Upload opens a session,
// mapping edits re-validate the whole table, errors are served in full
// (clients truncate for display, the validator never does), and commit hands
// the valid records to the results store.

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/crewdeck/crewdeck/internal/importer"
	"github.com/crewdeck/crewdeck/internal/roster"
	"github.com/crewdeck/crewdeck/internal/tabular"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// importView is the session summary returned by upload, get, and mapping
// edits. Full error details live behind the errors endpoint.
type importView struct {
	ID        string                  `json:"id"`
	FileName  string                  `json:"fileName"`
	CreatedAt string                  `json:"createdAt"`
	Headers   []string                `json:"headers"`
	RowCount  int                     `json:"rowCount"`
	Mapping   importer.Mapping        `json:"mapping"`
	Valid     int                     `json:"valid"`
	Invalid   int                     `json:"invalid"`
	Committed *importer.CommitSummary `json:"committed,omitempty"`
}

func viewOf(sess importer.Session) importView {
	return importView{
		ID:        sess.ID.String(),
		FileName:  sess.FileName,
		CreatedAt: sess.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Headers:   sess.Headers,
		RowCount:  sess.RowCount,
		Mapping:   sess.Mapping,
		Valid:     len(sess.Result.ValidRecords),
		Invalid:   len(sess.Result.InvalidRows),
		Committed: sess.Committed,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		s.respondError(w, r, errors.New("file too large or malformed form"), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("missing file field"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	sess, err := s.imports.Open(r.Context(), header.Filename, data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondJSON(w, http.StatusCreated, viewOf(sess))
}

func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	id, err := importID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	var body struct {
		Mapping importer.Mapping `json:"mapping"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, errors.New("malformed mapping body"), http.StatusBadRequest)
		return
	}
	for field := range body.Mapping {
		if _, ok := s.schema.FieldByID(field); !ok {
			s.respondError(w, r, errors.New("unknown target field: "+string(field)), http.StatusBadRequest)
			return
		}
	}

	sess, err := s.imports.SetMapping(id, body.Mapping)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, viewOf(sess))
}

func (s *Server) handleGetErrors(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Rows    int                  `json:"rows"`
		Invalid []importer.RowErrors `json:"invalid"`
	}{
		Rows:    sess.RowCount,
		Invalid: sess.Result.InvalidRows,
	})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	id, err := importID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	var body struct {
		Force bool `json:"force"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.respondError(w, r, errors.New("malformed commit body"), http.StatusBadRequest)
			return
		}
	}

	summary, err := s.imports.Commit(r.Context(), id, body.Force)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDiscardImport(w http.ResponseWriter, r *http.Request) {
	id, err := importID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	if err := s.imports.Discard(id); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRosterSearch(w http.ResponseWriter, r *http.Request) {
	athletes, err := s.roster.Athletes(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	matches := roster.Search(r.URL.Query().Get("q"), athletes)
	respondJSON(w, http.StatusOK, struct {
		Athletes []roster.Athlete `json:"athletes"`
	}{Athletes: matches})
}

func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.schema)
}

func (s *Server) session(r *http.Request) (importer.Session, error) {
	id, err := importID(r)
	if err != nil {
		return importer.Session{}, err
	}
	return s.imports.Get(id)
}

func importID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "importID"))
	if err != nil {
		return uuid.Nil, importer.ErrNotFound
	}
	return id, nil
}

// statusFor maps service errors to HTTP status codes. Parse failures are
// 422: the request was well-formed, the file was not.
func statusFor(err error) int {
	var parseErr *tabular.ParseError
	switch {
	case errors.Is(err, importer.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, importer.ErrAlreadyCommitted), errors.Is(err, importer.ErrInvalidRows):
		return http.StatusConflict
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
