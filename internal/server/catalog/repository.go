// Package catalog implements the validation catalog behind the HTTP API:
// models, tests and their instances, validation results, comments, the
// filter vocabulary and projects.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

// Project is a collab project together with whether the caller may edit it.
type Project struct {
	ProjectID string
	Editable  bool
}

// Repository stores catalog records. Implementations return copies; callers
// may modify what they get back.
type Repository interface {
	ListResources(ctx context.Context, kind models.Kind) ([]*models.Resource, error)
	GetResource(ctx context.Context, kind models.Kind, id string) (*models.Resource, error)
	ResourceIDByAlias(ctx context.Context, kind models.Kind, alias string) (string, error)
	SaveResource(ctx context.Context, kind models.Kind, r *models.Resource) error

	ListResults(ctx context.Context) ([]*models.ExtendedResult, error)
	GetResult(ctx context.Context, id string) (*models.ExtendedResult, error)
	SaveResult(ctx context.Context, r *models.ExtendedResult) error

	ListComments(ctx context.Context, about string) ([]models.Comment, error)
	GetComment(ctx context.Context, id string) (models.Comment, error)
	SaveComment(ctx context.Context, c models.Comment) error
	DeleteComment(ctx context.Context, id string) error

	Vocabulary(ctx context.Context) (models.Vocabulary, error)
	SetVocabulary(ctx context.Context, v models.Vocabulary) error
	Projects(ctx context.Context) ([]Project, error)
	SaveProject(ctx context.Context, p Project) error
}
