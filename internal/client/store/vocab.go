package store

import (
	"context"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// Vocabulary keys filled in by the client.
const (
	vocabContentType = "content_type"
	vocabCodeFormat  = "code_format"
	vocabProjectID   = "project_id"
)

// GetVocabulary returns the allowed filter values. It is fetched once;
// code_format mirrors content_type and project_id lists the editable
// projects.
func (s *Store) GetVocabulary(ctx context.Context, opts ...CallOption) (models.Vocabulary, error) {
	o := applyCallOptions(opts)

	if !o.forceRefresh {
		s.mu.RLock()
		if s.vocabLoaded {
			v := s.vocab.Clone()
			s.mu.RUnlock()
			s.metrics.hit(opVocabulary)
			return v, nil
		}
		s.mu.RUnlock()
	}
	s.metrics.fetch(opVocabulary, o.forceRefresh)

	const key = "vocab"
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var vocab models.Vocabulary
		if err := s.client.Get(ctx, "/vocab/", &vocab); err != nil {
			return nil, err
		}
		projects, err := s.GetEditableProjects(ctx, opts...)
		if err != nil {
			return nil, err
		}
		if vocab == nil {
			vocab = models.Vocabulary{}
		}
		vocab[vocabCodeFormat] = append([]string(nil), vocab[vocabContentType]...)
		vocab[vocabProjectID] = projects

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()
		s.vocab = vocab
		s.vocabLoaded = true
		return vocab.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(models.Vocabulary).Clone(), nil
}

// GetEditableProjects returns the IDs of the projects the caller may edit.
func (s *Store) GetEditableProjects(ctx context.Context, opts ...CallOption) ([]string, error) {
	o := applyCallOptions(opts)

	if !o.forceRefresh {
		s.mu.RLock()
		if s.projectsLoaded {
			out := append([]string{}, s.projects...)
			s.mu.RUnlock()
			s.metrics.hit(opProjects)
			return out, nil
		}
		s.mu.RUnlock()
	}
	s.metrics.fetch(opProjects, o.forceRefresh)

	const key = "projects"
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var items []models.Project
		if err := s.client.Get(ctx, "/projects?only_editable=true", &items); err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(items))
		for _, p := range items {
			ids = append(ids, p.ProjectID)
		}

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()
		s.projects = ids
		s.projectsLoaded = true
		return append([]string{}, ids...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string{}, v.([]string)...), nil
}
