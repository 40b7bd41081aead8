package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// kindOf derives the resource kind from the first path segment.
func kindOf(r *http.Request) models.Kind {
	if strings.HasPrefix(r.URL.Path, "/tests/") {
		return models.KindTest
	}
	return models.KindModel
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size, err := sizeParam(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	summary := q.Get("summary") == "true"

	filters := models.Filters{}
	for name, vals := range q {
		if name == "size" || name == "summary" {
			continue
		}
		filters[name] = vals
	}

	list, err := s.svc.ListResources(r.Context(), kindOf(r), filters, size, summary)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.GetResource(r.Context(), kindOf(r), pathVar(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var in models.Resource
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := s.svc.CreateResource(r.Context(), kindOf(r), &in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	var in models.Resource
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := s.svc.UpdateResource(r.Context(), kindOf(r), pathVar(r, "id"), &in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListInstances(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListInstances(r.Context(), kindOf(r), pathVar(r, "id"), r.URL.Query().Get("version"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateInstance(w http.ResponseWriter, r *http.Request) {
	var in models.Instance
	if !decodeBody(w, r, &in) {
		return
	}
	inst, err := s.svc.CreateInstance(r.Context(), kindOf(r), pathVar(r, "id"), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (s *Server) handleUpdateInstance(w http.ResponseWriter, r *http.Request) {
	var in models.Instance
	if !decodeBody(w, r, &in) {
		return
	}
	inst, err := s.svc.UpdateInstance(r.Context(), kindOf(r), pathVar(r, "id"), pathVar(r, "instance_id"), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) handleFindInstance(w http.ResponseWriter, r *http.Request) {
	inst, err := s.svc.FindInstance(r.Context(), kindOf(r), pathVar(r, "instance_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}
