package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// GetResultsByResource returns the summary results of a model or test.
func (s *Store) GetResultsByResource(ctx context.Context, kind models.Kind, resourceID string, opts ...CallOption) ([]models.SummaryResult, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	o := applyCallOptions(opts)

	if !o.forceRefresh {
		out, ok, err := s.loadedResults(kind, resourceID)
		if err != nil {
			return nil, err
		}
		if ok {
			s.metrics.hit(opResults)
			return out, nil
		}
	}
	s.metrics.fetch(opResults, o.forceRefresh)

	key := "results/" + string(kind) + "/" + resourceID
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var items []models.SummaryResult
		if err := s.client.Get(ctx, s.summaryResultsPath(kind, resourceID), &items); err != nil {
			return nil, err
		}

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()

		ids := make([]string, 0, len(items))
		for _, item := range items {
			s.summaryResults[item.ID] = item
			ids = append(ids, item.ID)
		}
		if r := s.lookup(kind, resourceID); r != nil {
			r.ResultIDs = ids
			r.LoadedResults = true
		}
		if items == nil {
			items = []models.SummaryResult{}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]models.SummaryResult(nil), v.([]models.SummaryResult)...), nil
}

// loadedResults dereferences the cached result IDs of a resource whose
// results are loaded.
func (s *Store) loadedResults(kind models.Kind, resourceID string) ([]models.SummaryResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.lookup(kind, resourceID)
	if r == nil || !r.LoadedResults {
		return nil, false, nil
	}
	out := make([]models.SummaryResult, 0, len(r.ResultIDs))
	for _, id := range r.ResultIDs {
		res, ok := s.summaryResults[id]
		if !ok {
			return nil, false, &DanglingReferenceError{Kind: kind, ResourceID: r.ID, ResultID: id}
		}
		out = append(out, res)
	}
	return out, true, nil
}

// GetResultsByInstances fetches the extended results of the given instances.
// It always goes to the server; fetched results are merged into the extended
// table.
func (s *Store) GetResultsByInstances(ctx context.Context, kind models.Kind, instanceIDs []string) ([]*models.ExtendedResult, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if len(instanceIDs) == 0 {
		return []*models.ExtendedResult{}, nil
	}

	var items []*models.ExtendedResult
	if err := s.client.Get(ctx, s.extendedResultsPath(kind, instanceIDs), &items); err != nil {
		return nil, err
	}

	if err := s.lockSettled(ctx, "results by instances"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]*models.ExtendedResult, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s.extendedResults[item.ID] = item.Clone()
		out = append(out, item)
	}
	return out, nil
}

// GetResult returns a single extended result.
func (s *Store) GetResult(ctx context.Context, resultID string, opts ...CallOption) (*models.ExtendedResult, error) {
	if resultID == "" {
		return nil, fmt.Errorf("%w: empty result id", ErrInvalidArgument)
	}
	o := applyCallOptions(opts)

	if !o.forceRefresh {
		s.mu.RLock()
		res, ok := s.extendedResults[resultID]
		if ok {
			c := res.Clone()
			s.mu.RUnlock()
			s.metrics.hit(opResult)
			return c, nil
		}
		s.mu.RUnlock()
	}
	s.metrics.fetch(opResult, o.forceRefresh)

	key := "result/" + resultID
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var res models.ExtendedResult
		if err := s.client.Get(ctx, "/results-extended/"+url.PathEscape(resultID), &res); err != nil {
			return nil, err
		}

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()
		s.extendedResults[resultID] = res.Clone()
		return &res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ExtendedResult).Clone(), nil
}
