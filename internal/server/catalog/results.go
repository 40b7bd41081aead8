package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/google/uuid"
)

// AddResult records a validation result between a model instance and a test
// instance. Both instances must exist.
func (s *Service) AddResult(ctx context.Context, r *models.ExtendedResult) (*models.ExtendedResult, error) {
	if _, _, err := s.instanceOwner(ctx, models.KindModel, r.ModelInstanceID); err != nil {
		return nil, err
	}
	if _, _, err := s.instanceOwner(ctx, models.KindTest, r.TestInstanceID); err != nil {
		return nil, err
	}

	c := &models.ExtendedResult{
		ID:              uuid.NewString(),
		ModelInstanceID: r.ModelInstanceID,
		TestInstanceID:  r.TestInstanceID,
		Score:           r.Score,
		NormalizedScore: r.NormalizedScore,
		Passed:          r.Passed,
		ProjectID:       r.ProjectID,
		URI:             r.URI,
		Comment:         r.Comment,
		ResultsStorage:  r.ResultsStorage,
		Timestamp:       r.Timestamp,
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = s.now().UTC()
	}
	if err := s.repo.SaveResult(ctx, c); err != nil {
		return nil, fmt.Errorf("error saving result: %w", err)
	}
	return s.extend(ctx, c)
}

// extend fills in the instances and resources a stored result points at.
func (s *Service) extend(ctx context.Context, r *models.ExtendedResult) (*models.ExtendedResult, error) {
	model, mi, err := s.instanceOwner(ctx, models.KindModel, r.ModelInstanceID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	test, ti, err := s.instanceOwner(ctx, models.KindTest, r.TestInstanceID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if model != nil {
		model.Instances = nil
		r.Model = model
		r.ModelInstance = &mi
	}
	if test != nil {
		test.Instances = nil
		r.Test = test
		r.TestInstance = &ti
	}
	return r, nil
}

func summarize(r *models.ExtendedResult) models.SummaryResult {
	s := models.SummaryResult{
		ID:              r.ID,
		ModelInstanceID: r.ModelInstanceID,
		TestInstanceID:  r.TestInstanceID,
		Score:           r.Score,
		NormalizedScore: r.NormalizedScore,
		Timestamp:       r.Timestamp,
	}
	if r.Model != nil {
		s.ModelID, s.ModelName, s.ModelAlias = r.Model.ID, r.Model.Name, r.Model.Alias
	}
	if r.ModelInstance != nil {
		s.ModelVersion = r.ModelInstance.Version
	}
	if r.Test != nil {
		s.TestID, s.TestName, s.TestAlias = r.Test.ID, r.Test.Name, r.Test.Alias
	}
	if r.TestInstance != nil {
		s.TestVersion = r.TestInstance.Version
	}
	return s
}

// SummaryResults returns the results of every instance of a model or test.
func (s *Service) SummaryResults(ctx context.Context, kind models.Kind, ident string, size int) ([]models.SummaryResult, error) {
	owner, err := s.resolve(ctx, kind, ident)
	if errors.Is(err, common.ErrorNotFound) {
		return []models.SummaryResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	instances := make(map[string]struct{}, len(owner.Instances))
	for _, inst := range owner.Instances {
		instances[inst.ID] = struct{}{}
	}

	all, err := s.repo.ListResults(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.SummaryResult, 0)
	for _, r := range all {
		id := r.ModelInstanceID
		if kind == models.KindTest {
			id = r.TestInstanceID
		}
		if _, ok := instances[id]; !ok {
			continue
		}
		ext, err := s.extend(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(ext))
		if size > 0 && len(out) == size {
			break
		}
	}
	return out, nil
}

// ExtendedResults returns the results attached to any of the given instances.
func (s *Service) ExtendedResults(ctx context.Context, kind models.Kind, instanceIDs []string, size int) ([]*models.ExtendedResult, error) {
	wanted := make(map[string]struct{}, len(instanceIDs))
	for _, id := range instanceIDs {
		wanted[id] = struct{}{}
	}

	all, err := s.repo.ListResults(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.ExtendedResult, 0)
	for _, r := range all {
		id := r.ModelInstanceID
		if kind == models.KindTest {
			id = r.TestInstanceID
		}
		if _, ok := wanted[id]; !ok {
			continue
		}
		ext, err := s.extend(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, ext)
		if size > 0 && len(out) == size {
			break
		}
	}
	return out, nil
}

func (s *Service) Result(ctx context.Context, id string) (*models.ExtendedResult, error) {
	r, err := s.repo.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.extend(ctx, r)
}
