package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

func (s *Server) handleSummaryResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size, err := sizeParam(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, kind := range models.Kinds {
		if id := q.Get(kind.IDParam()); id != "" {
			list, err := s.svc.SummaryResults(r.Context(), kind, id, size)
			if err != nil {
				s.writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, list)
			return
		}
	}
	writeError(w, http.StatusBadRequest, "model_id or test_id is required")
}

func (s *Server) handleExtendedResults(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size, err := sizeParam(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, kind := range models.Kinds {
		if ids := q[kind.InstanceIDParam()]; len(ids) > 0 {
			list, err := s.svc.ExtendedResults(r.Context(), kind, ids, size)
			if err != nil {
				s.writeServiceError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, list)
			return
		}
	}
	writeError(w, http.StatusBadRequest, "model_instance_id or test_instance_id is required")
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Result(r.Context(), pathVar(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
