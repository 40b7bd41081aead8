package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

type commentRequest struct {
	About   string `json:"about"`
	Content string `json:"content"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size, err := sizeParam(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	about := q.Get("about")
	if about == "" {
		writeError(w, http.StatusBadRequest, "about is required")
		return
	}

	list, err := s.svc.Comments(r.Context(), about, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var in commentRequest
	if !decodeBody(w, r, &in) {
		return
	}
	c, err := s.svc.CreateComment(r.Context(), userID(r.Context()), in.About, in.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var in models.CommentUpdate
	if !decodeBody(w, r, &in) {
		return
	}
	c, err := s.svc.UpdateComment(r.Context(), pathVar(r, "id"), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteComment(r.Context(), pathVar(r, "id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Vocabulary(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Projects(r.Context(), r.URL.Query().Get("only_editable") == "true")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
