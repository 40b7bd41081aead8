package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/common"
)

// MemoryRepository keeps the whole catalog in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	resources map[models.Kind]map[string]*models.Resource
	results   map[string]*models.ExtendedResult
	comments  map[string]models.Comment
	vocab     models.Vocabulary
	projects  map[string]Project
}

func NewMemoryRepository() *MemoryRepository {
	r := &MemoryRepository{
		resources: make(map[models.Kind]map[string]*models.Resource, len(models.Kinds)),
		results:   make(map[string]*models.ExtendedResult),
		comments:  make(map[string]models.Comment),
		vocab:     models.Vocabulary{},
		projects:  make(map[string]Project),
	}
	for _, k := range models.Kinds {
		r.resources[k] = make(map[string]*models.Resource)
	}
	return r
}

func (m *MemoryRepository) ListResources(_ context.Context, kind models.Kind) ([]*models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Resource, 0, len(m.resources[kind]))
	for _, r := range m.resources[kind] {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateCreated.Equal(out[j].DateCreated) {
			return out[i].DateCreated.Before(out[j].DateCreated)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetResource(_ context.Context, kind models.Kind, id string) (*models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.resources[kind][id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.Clone(), nil
}

func (m *MemoryRepository) ResourceIDByAlias(_ context.Context, kind models.Kind, alias string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, r := range m.resources[kind] {
		if alias != "" && r.Alias == alias {
			return id, nil
		}
	}
	return "", common.ErrorNotFound
}

func (m *MemoryRepository) SaveResource(_ context.Context, kind models.Kind, r *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.resources[kind]
	if !ok {
		return common.ErrorValidation
	}
	byID[r.ID] = r.Clone()
	return nil
}

func (m *MemoryRepository) ListResults(_ context.Context) ([]*models.ExtendedResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.ExtendedResult, 0, len(m.results))
	for _, r := range m.results {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetResult(_ context.Context, id string) (*models.ExtendedResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.results[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.Clone(), nil
}

func (m *MemoryRepository) SaveResult(_ context.Context, r *models.ExtendedResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[r.ID] = r.Clone()
	return nil
}

func (m *MemoryRepository) ListComments(_ context.Context, about string) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, c := range m.comments {
		if c.About == about {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetComment(_ context.Context, id string) (models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.comments[id]
	if !ok {
		return models.Comment{}, common.ErrorNotFound
	}
	return c, nil
}

func (m *MemoryRepository) SaveComment(_ context.Context, c models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.comments[c.ID] = c
	return nil
}

func (m *MemoryRepository) DeleteComment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *MemoryRepository) Vocabulary(_ context.Context) (models.Vocabulary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vocab.Clone(), nil
}

func (m *MemoryRepository) SetVocabulary(_ context.Context, v models.Vocabulary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vocab = v.Clone()
	return nil
}

func (m *MemoryRepository) Projects(_ context.Context) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (m *MemoryRepository) SaveProject(_ context.Context, p Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ProjectID] = p
	return nil
}
