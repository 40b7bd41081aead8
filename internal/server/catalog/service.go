package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ListResources returns the resources of kind whose JSON fields equal one of
// the given values for every filter field. size <= 0 means no limit. With
// summary set, instances are left out.
func (s *Service) ListResources(ctx context.Context, kind models.Kind, filters models.Filters, size int, summary bool) ([]*models.Resource, error) {
	all, err := s.repo.ListResources(ctx, kind)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Resource, 0, len(all))
	for _, r := range all {
		ok, err := matches(r, filters)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if summary {
			r.Instances = nil
		}
		out = append(out, r)
		if size > 0 && len(out) == size {
			break
		}
	}
	return out, nil
}

func matches(r *models.Resource, filters models.Filters) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return false, err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return false, err
	}

	for name, accepted := range filters {
		got, ok := scalar(fields[name])
		if !ok {
			return false, nil
		}
		found := false
		for _, v := range accepted {
			if v == got {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// scalar renders a decoded JSON value as a filter value. Absent, null and
// composite values never match.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

// resolve turns an ID or alias into the stored resource.
func (s *Service) resolve(ctx context.Context, kind models.Kind, ident string) (*models.Resource, error) {
	r, err := s.repo.GetResource(ctx, kind, ident)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	id, err := s.repo.ResourceIDByAlias(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	return s.repo.GetResource(ctx, kind, id)
}

func (s *Service) GetResource(ctx context.Context, kind models.Kind, ident string) (*models.Resource, error) {
	r, err := s.resolve(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	if r.Instances == nil {
		r.Instances = []models.Instance{}
	}
	return r, nil
}

func (s *Service) checkAlias(ctx context.Context, kind models.Kind, alias, selfID string) error {
	if alias == "" {
		return nil
	}
	id, err := s.repo.ResourceIDByAlias(ctx, kind, alias)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil
	case err != nil:
		return err
	case id != selfID:
		return fmt.Errorf("alias %q: %w", alias, common.ErrorAlreadyExists)
	}
	return nil
}

func (s *Service) CreateResource(ctx context.Context, kind models.Kind, r *models.Resource) (*models.Resource, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%s name is required: %w", kind, common.ErrorValidation)
	}
	if err := s.checkAlias(ctx, kind, r.Alias, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := r.Clone()
	c.ID = uuid.NewString()
	c.DateCreated = now
	for i := range c.Instances {
		c.Instances[i].ID = uuid.NewString()
		c.Instances[i].Timestamp = now
	}

	if err := s.repo.SaveResource(ctx, kind, c); err != nil {
		return nil, fmt.Errorf("error creating %s: %w", kind, err)
	}
	return c, nil
}

// UpdateResource replaces the editable fields of a resource. ID, creation
// date and instances are kept.
func (s *Service) UpdateResource(ctx context.Context, kind models.Kind, ident string, r *models.Resource) (*models.Resource, error) {
	existing, err := s.resolve(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	if r.Name == "" {
		return nil, fmt.Errorf("%s name is required: %w", kind, common.ErrorValidation)
	}
	if err := s.checkAlias(ctx, kind, r.Alias, existing.ID); err != nil {
		return nil, err
	}

	c := r.Clone()
	c.ID = existing.ID
	c.DateCreated = existing.DateCreated
	c.Instances = existing.Instances

	if err := s.repo.SaveResource(ctx, kind, c); err != nil {
		return nil, fmt.Errorf("error updating %s: %w", kind, err)
	}
	return c, nil
}

// ListInstances returns the instances of a resource, restricted to one
// version when version is not empty.
func (s *Service) ListInstances(ctx context.Context, kind models.Kind, ident, version string) ([]models.Instance, error) {
	r, err := s.resolve(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	out := make([]models.Instance, 0, len(r.Instances))
	for _, inst := range r.Instances {
		if version == "" || inst.Version == version {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (s *Service) CreateInstance(ctx context.Context, kind models.Kind, ident string, inst models.Instance) (models.Instance, error) {
	r, err := s.resolve(ctx, kind, ident)
	if err != nil {
		return models.Instance{}, err
	}
	if inst.Version == "" {
		return models.Instance{}, fmt.Errorf("instance version is required: %w", common.ErrorValidation)
	}
	for _, other := range r.Instances {
		if other.Version == inst.Version {
			return models.Instance{}, fmt.Errorf("version %q: %w", inst.Version, common.ErrorAlreadyExists)
		}
	}

	inst.ID = uuid.NewString()
	inst.Timestamp = s.now().UTC()
	r.Instances = append(r.Instances, inst)

	if err := s.repo.SaveResource(ctx, kind, r); err != nil {
		return models.Instance{}, fmt.Errorf("error creating instance: %w", err)
	}
	return inst, nil
}

func (s *Service) UpdateInstance(ctx context.Context, kind models.Kind, ident, instanceID string, inst models.Instance) (models.Instance, error) {
	r, err := s.resolve(ctx, kind, ident)
	if err != nil {
		return models.Instance{}, err
	}
	i := r.InstanceIndex(instanceID)
	if i < 0 {
		return models.Instance{}, fmt.Errorf("instance %q: %w", instanceID, common.ErrorNotFound)
	}
	for j, other := range r.Instances {
		if j != i && inst.Version != "" && other.Version == inst.Version {
			return models.Instance{}, fmt.Errorf("version %q: %w", inst.Version, common.ErrorAlreadyExists)
		}
	}

	inst.ID = instanceID
	inst.Timestamp = r.Instances[i].Timestamp
	if inst.Version == "" {
		inst.Version = r.Instances[i].Version
	}
	r.Instances[i] = inst

	if err := s.repo.SaveResource(ctx, kind, r); err != nil {
		return models.Instance{}, fmt.Errorf("error updating instance: %w", err)
	}
	return inst, nil
}

// FindInstance looks an instance up across all resources of kind.
func (s *Service) FindInstance(ctx context.Context, kind models.Kind, instanceID string) (models.Instance, error) {
	_, inst, err := s.instanceOwner(ctx, kind, instanceID)
	return inst, err
}

func (s *Service) instanceOwner(ctx context.Context, kind models.Kind, instanceID string) (*models.Resource, models.Instance, error) {
	all, err := s.repo.ListResources(ctx, kind)
	if err != nil {
		return nil, models.Instance{}, err
	}
	for _, r := range all {
		if i := r.InstanceIndex(instanceID); i >= 0 {
			return r, r.Instances[i], nil
		}
	}
	return nil, models.Instance{}, fmt.Errorf("instance %q: %w", instanceID, common.ErrorNotFound)
}
