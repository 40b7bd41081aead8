package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// QueryResources returns the summary-level resources matching filters. The
// first call for a given filter set fetches from the server; later calls with
// an equivalent set are answered from the query memo.
func (s *Store) QueryResources(ctx context.Context, kind models.Kind, filters models.Filters, opts ...CallOption) ([]*models.Resource, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	o := applyCallOptions(opts)
	query := CanonicalQuery(filters)

	if !o.forceRefresh {
		if list, ok := s.savedQuery(kind, query); ok {
			s.metrics.hit(opQuery)
			s.logger.Debug(ctx, "using saved query", "kind", kind, "query", query)
			return list, nil
		}
	}
	s.metrics.fetch(opQuery, o.forceRefresh)
	s.logger.Debug(ctx, "no saved query, requesting from server", "kind", kind, "query", query)

	key := "query/" + string(kind) + "?" + query
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var items []*models.Resource
		if err := s.client.Get(ctx, s.listPath(kind, query), &items); err != nil {
			return nil, err
		}

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()

		ids := make([]string, 0, len(items))
		out := make([]*models.Resource, 0, len(items))
		for _, item := range items {
			if item == nil || item.ID == "" {
				continue
			}
			r := s.putSummary(kind, item)
			ids = append(ids, r.ID)
			out = append(out, r.Clone())
		}
		s.queries[kind][query] = ids
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneResources(v.([]*models.Resource)), nil
}

func (s *Store) savedQuery(kind models.Kind, query string) ([]*models.Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, ok := s.queries[kind][query]
	if !ok {
		return nil, false
	}
	out := make([]*models.Resource, 0, len(ids))
	for _, id := range ids {
		r, ok := s.resources[kind][id]
		if !ok {
			return nil, false
		}
		out = append(out, r.Clone())
	}
	return out, true
}

// putSummary stores a summary-level entity. Summary payloads omit detail
// fields, so an entry refreshed from one drops back to summary level: its
// instances and result IDs are cleared and both load flags are reset, and the
// next GetResource fetches full detail again. Must be called with s.mu held.
func (s *Store) putSummary(kind models.Kind, item *models.Resource) *models.Resource {
	item.Instances = []models.Instance{}
	item.ResultIDs = []string{}
	item.LoadedVersions = false
	item.LoadedResults = false
	return s.put(kind, item)
}

// GetResource returns the resource with the given ID or alias, including its
// instances.
func (s *Store) GetResource(ctx context.Context, kind models.Kind, ident string, opts ...CallOption) (*models.Resource, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if ident == "" {
		return nil, fmt.Errorf("%w: empty %s identifier", ErrInvalidArgument, kind)
	}
	o := applyCallOptions(opts)

	if !o.forceRefresh {
		s.mu.RLock()
		r := s.lookup(kind, ident)
		if r != nil && r.LoadedVersions {
			c := r.Clone()
			s.mu.RUnlock()
			s.metrics.hit(opResource)
			return c, nil
		}
		s.mu.RUnlock()
	}
	s.metrics.fetch(opResource, o.forceRefresh)

	key := "get/" + string(kind) + "/" + ident
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var r models.Resource
		if err := s.client.Get(ctx, resourcePath(kind, ident), &r); err != nil {
			return nil, err
		}
		if r.ID != ident && r.Alias != ident {
			return nil, &IdentityMismatchError{Kind: kind, Requested: ident, ID: r.ID, Alias: r.Alias}
		}

		r.LoadedVersions = true
		r.LoadedResults = false
		r.ResultIDs = []string{}
		normalizeInstances(&r)

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()
		return s.put(kind, &r).Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Resource).Clone(), nil
}

// CreateResource posts a new resource. The stored entity is fully loaded
// with an empty result list.
func (s *Store) CreateResource(ctx context.Context, kind models.Kind, data *models.Resource) (*models.Resource, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: nil %s", ErrInvalidArgument, kind)
	}

	var r models.Resource
	if err := s.client.Post(ctx, "/"+kind.Collection()+"/", data, &r); err != nil {
		return nil, fmt.Errorf("error creating %s: %w", kind, err)
	}

	r.LoadedVersions = true
	r.LoadedResults = true
	r.ResultIDs = []string{}
	normalizeInstances(&r)

	if err := s.lockSettled(ctx, "create "+string(kind)); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.put(kind, &r).Clone(), nil
}

// UpdateResource replaces an existing resource. Cached results are kept but
// marked stale.
func (s *Store) UpdateResource(ctx context.Context, kind models.Kind, data *models.Resource) (*models.Resource, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if data == nil || data.ID == "" {
		return nil, fmt.Errorf("%w: %s without id", ErrInvalidArgument, kind)
	}

	var r models.Resource
	if err := s.client.Put(ctx, resourcePath(kind, data.ID), data, &r); err != nil {
		return nil, fmt.Errorf("error updating %s: %w", kind, err)
	}
	if r.ID == "" {
		r.ID = data.ID
	}

	r.LoadedVersions = true
	r.LoadedResults = false
	normalizeInstances(&r)

	if err := s.lockSettled(ctx, "update "+string(kind)); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	if existing, ok := s.resources[kind][r.ID]; ok {
		r.ResultIDs = existing.ResultIDs
	} else {
		r.ResultIDs = []string{}
	}
	return s.put(kind, &r).Clone(), nil
}

// CreateInstance adds a version to a resource. The parent must already be
// cached; it is looked up before the request is sent.
func (s *Store) CreateInstance(ctx context.Context, kind models.Kind, resourceID string, data *models.Instance) (*models.Instance, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: nil instance", ErrInvalidArgument)
	}
	if !s.hasResource(kind, resourceID) {
		return nil, fmt.Errorf("%s %q: %w", kind, resourceID, ErrParentNotLoaded)
	}

	var inst models.Instance
	if err := s.client.Post(ctx, instancesPath(kind, resourceID), data, &inst); err != nil {
		return nil, fmt.Errorf("error creating %s instance: %w", kind, err)
	}

	if err := s.lockSettled(ctx, "create "+string(kind)+" instance"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	parent := s.lookup(kind, resourceID)
	if parent == nil {
		return nil, fmt.Errorf("%s %q: %w", kind, resourceID, ErrParentNotLoaded)
	}
	parent.Instances = append(parent.Instances, inst)
	return &inst, nil
}

// UpdateInstance replaces the instance with data.ID inside its cached parent.
func (s *Store) UpdateInstance(ctx context.Context, kind models.Kind, resourceID string, data *models.Instance) (*models.Instance, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if data == nil || data.ID == "" {
		return nil, fmt.Errorf("%w: instance without id", ErrInvalidArgument)
	}
	if !s.hasResource(kind, resourceID) {
		return nil, fmt.Errorf("%s %q: %w", kind, resourceID, ErrParentNotLoaded)
	}

	var inst models.Instance
	path := instancesPath(kind, resourceID) + url.PathEscape(data.ID)
	if err := s.client.Put(ctx, path, data, &inst); err != nil {
		return nil, fmt.Errorf("error updating %s instance: %w", kind, err)
	}
	if inst.ID == "" {
		inst.ID = data.ID
	}

	if err := s.lockSettled(ctx, "update "+string(kind)+" instance"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	parent := s.lookup(kind, resourceID)
	if parent == nil {
		return nil, fmt.Errorf("%s %q: %w", kind, resourceID, ErrParentNotLoaded)
	}
	if i := parent.InstanceIndex(data.ID); i >= 0 {
		parent.Instances[i] = inst
	}
	return &inst, nil
}

func (s *Store) hasResource(kind models.Kind, ident string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(kind, ident) != nil
}

// AliasIsUnique reports whether no resource of kind uses alias.
func (s *Store) AliasIsUnique(ctx context.Context, kind models.Kind, alias string) (bool, error) {
	_, err := s.GetResource(ctx, kind, alias)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, client.ErrNotFound):
		return true, nil
	default:
		return false, err
	}
}

// GetInstanceByVersion fetches the instances of a resource with the given
// version string. The result is not cached.
func (s *Store) GetInstanceByVersion(ctx context.Context, kind models.Kind, resourceID, version string) ([]models.Instance, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	var out []models.Instance
	path := instancesPath(kind, resourceID) + "?version=" + url.QueryEscape(version)
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Instance{}
	}
	return out, nil
}

// GetInstanceByID fetches a single instance without knowing its parent. The
// result is not cached.
func (s *Store) GetInstanceByID(ctx context.Context, kind models.Kind, instanceID string) (*models.Instance, error) {
	if err := kind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	var out models.Instance
	if err := s.client.Get(ctx, "/"+kind.Collection()+"/query/instances/"+url.PathEscape(instanceID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
