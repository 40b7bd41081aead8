// Package services contains the use-case layer of the catalog client. The
// CLI talks to CatalogService only; caching and request de-duplication live
// in the store underneath.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/identifier"
	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/client/store"
)

var (
	// ErrAliasTaken is returned when another resource of the same kind
	// already uses the requested alias.
	ErrAliasTaken = errors.New("alias is already in use")
	// ErrVersionTaken is returned when the resource already has an instance
	// with the requested version string.
	ErrVersionTaken = errors.New("version already exists")
	// ErrNameRequired is returned when a resource is registered without a name.
	ErrNameRequired = errors.New("name is required")
)

// CatalogService defines the catalog operations offered to the CLI.
//
// Resource arguments named ident accept either an ID or an alias. Passing
// refresh=true bypasses the client-side cache for that call.
type CatalogService interface {
	Search(ctx context.Context, kind models.Kind, filters models.Filters, refresh bool) ([]*models.Resource, error)
	Show(ctx context.Context, kind models.Kind, ident string, refresh bool) (*models.Resource, error)
	Register(ctx context.Context, kind models.Kind, r *models.Resource) (*models.Resource, error)
	Edit(ctx context.Context, kind models.Kind, r *models.Resource) (*models.Resource, error)
	AddVersion(ctx context.Context, kind models.Kind, ident string, inst *models.Instance) (*models.Instance, error)
	EditVersion(ctx context.Context, kind models.Kind, ident string, inst *models.Instance) (*models.Instance, error)

	Results(ctx context.Context, kind models.Kind, ident string, refresh bool) ([]models.SummaryResult, error)
	InstanceResults(ctx context.Context, kind models.Kind, instanceIDs []string) ([]*models.ExtendedResult, error)
	Result(ctx context.Context, id string, refresh bool) (*models.ExtendedResult, error)

	Comments(ctx context.Context, subject string, refresh bool) ([]models.Comment, error)
	Comment(ctx context.Context, subject, content string) (*models.Comment, error)
	EditComment(ctx context.Context, subject, commentID, content string, submit bool) (*models.Comment, error)
	DeleteComment(ctx context.Context, subject, commentID string) error

	Vocabulary(ctx context.Context, refresh bool) (models.Vocabulary, error)
	Projects(ctx context.Context, refresh bool) ([]string, error)
	Stats() store.Stats
}

type catalogService struct {
	store *store.Store
}

// NewCatalogService constructs a CatalogService on top of s.
func NewCatalogService(s *store.Store) CatalogService {
	return &catalogService{store: s}
}

func callOpts(refresh bool) []store.CallOption {
	if refresh {
		return []store.CallOption{store.ForceRefresh()}
	}
	return nil
}

func (c *catalogService) Search(ctx context.Context, kind models.Kind, filters models.Filters, refresh bool) ([]*models.Resource, error) {
	return c.store.QueryResources(ctx, kind, filters, callOpts(refresh)...)
}

func (c *catalogService) Show(ctx context.Context, kind models.Kind, ident string, refresh bool) (*models.Resource, error) {
	return c.store.GetResource(ctx, kind, ident, callOpts(refresh)...)
}

// Register creates a resource after checking that its alias is free.
func (c *catalogService) Register(ctx context.Context, kind models.Kind, r *models.Resource) (*models.Resource, error) {
	if r == nil || r.Name == "" {
		return nil, ErrNameRequired
	}
	if r.Alias != "" {
		if err := c.checkAlias(ctx, kind, r.Alias); err != nil {
			return nil, err
		}
	}
	return c.store.CreateResource(ctx, kind, r)
}

// Edit updates a resource. A changed alias is checked for uniqueness first.
func (c *catalogService) Edit(ctx context.Context, kind models.Kind, r *models.Resource) (*models.Resource, error) {
	if r == nil || r.ID == "" {
		return nil, fmt.Errorf("%w: resource ID is required", store.ErrInvalidArgument)
	}
	if r.Alias != "" {
		current, err := c.store.GetResource(ctx, kind, r.ID)
		if err != nil {
			return nil, err
		}
		if current.Alias != r.Alias {
			if err := c.checkAlias(ctx, kind, r.Alias); err != nil {
				return nil, err
			}
		}
	}
	return c.store.UpdateResource(ctx, kind, r)
}

func (c *catalogService) checkAlias(ctx context.Context, kind models.Kind, alias string) error {
	unique, err := c.store.AliasIsUnique(ctx, kind, alias)
	if err != nil {
		return fmt.Errorf("check alias %q: %w", alias, err)
	}
	if !unique {
		return fmt.Errorf("%w: %s", ErrAliasTaken, alias)
	}
	return nil
}

// AddVersion loads the parent resource, checks the version string is new and
// creates the instance.
func (c *catalogService) AddVersion(ctx context.Context, kind models.Kind, ident string, inst *models.Instance) (*models.Instance, error) {
	if inst == nil || inst.Version == "" {
		return nil, fmt.Errorf("%w: version is required", store.ErrInvalidArgument)
	}
	parent, err := c.store.GetResource(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	existing, err := c.store.GetInstanceByVersion(ctx, kind, parent.ID, inst.Version)
	if err != nil {
		return nil, fmt.Errorf("check version %q: %w", inst.Version, err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrVersionTaken, inst.Version)
	}
	return c.store.CreateInstance(ctx, kind, parent.ID, inst)
}

func (c *catalogService) EditVersion(ctx context.Context, kind models.Kind, ident string, inst *models.Instance) (*models.Instance, error) {
	parent, err := c.store.GetResource(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	return c.store.UpdateInstance(ctx, kind, parent.ID, inst)
}

// Results resolves ident to a resource ID before asking for its results,
// since the results endpoint only understands IDs.
func (c *catalogService) Results(ctx context.Context, kind models.Kind, ident string, refresh bool) ([]models.SummaryResult, error) {
	id, err := c.resolve(ctx, kind, ident)
	if err != nil {
		return nil, err
	}
	return c.store.GetResultsByResource(ctx, kind, id, callOpts(refresh)...)
}

func (c *catalogService) InstanceResults(ctx context.Context, kind models.Kind, instanceIDs []string) ([]*models.ExtendedResult, error) {
	return c.store.GetResultsByInstances(ctx, kind, instanceIDs)
}

func (c *catalogService) Result(ctx context.Context, id string, refresh bool) (*models.ExtendedResult, error) {
	return c.store.GetResult(ctx, id, callOpts(refresh)...)
}

func (c *catalogService) resolve(ctx context.Context, kind models.Kind, ident string) (string, error) {
	if identifier.IsUUID(ident) {
		return ident, nil
	}
	r, err := c.store.GetResource(ctx, kind, ident)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

// resolveSubject maps a comment subject to a resource ID. Aliases are tried
// as models first, then as tests; only a not-found answer moves on to the
// next kind.
func (c *catalogService) resolveSubject(ctx context.Context, subject string) (string, error) {
	if identifier.IsUUID(subject) {
		return subject, nil
	}
	var err error
	for _, kind := range models.Kinds {
		var id string
		id, err = c.resolve(ctx, kind, subject)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, client.ErrNotFound) {
			return "", err
		}
	}
	return "", err
}

func (c *catalogService) Comments(ctx context.Context, subject string, refresh bool) ([]models.Comment, error) {
	id, err := c.resolveSubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return c.store.GetComments(ctx, id, callOpts(refresh)...)
}

func (c *catalogService) Comment(ctx context.Context, subject, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is empty", store.ErrInvalidArgument)
	}
	id, err := c.resolveSubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return c.store.CreateComment(ctx, id, content)
}

func (c *catalogService) EditComment(ctx context.Context, subject, commentID, content string, submit bool) (*models.Comment, error) {
	id, err := c.resolveSubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	return c.store.UpdateComment(ctx, id, commentID, content, submit)
}

func (c *catalogService) DeleteComment(ctx context.Context, subject, commentID string) error {
	id, err := c.resolveSubject(ctx, subject)
	if err != nil {
		return err
	}
	return c.store.DeleteComment(ctx, id, commentID)
}

func (c *catalogService) Vocabulary(ctx context.Context, refresh bool) (models.Vocabulary, error) {
	return c.store.GetVocabulary(ctx, callOpts(refresh)...)
}

func (c *catalogService) Projects(ctx context.Context, refresh bool) ([]string, error) {
	return c.store.GetEditableProjects(ctx, callOpts(refresh)...)
}

func (c *catalogService) Stats() store.Stats {
	return c.store.Stats()
}
