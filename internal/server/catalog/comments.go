package catalog

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/common"
	"github.com/google/uuid"
)

func (s *Service) Comments(ctx context.Context, about string, size int) ([]models.Comment, error) {
	out, err := s.repo.ListComments(ctx, about)
	if err != nil {
		return nil, err
	}
	if size > 0 && len(out) > size {
		out = out[:size]
	}
	return out, nil
}

// CreateComment stores a comment by user. New comments are drafts until
// submitted.
func (s *Service) CreateComment(ctx context.Context, user, about, content string) (models.Comment, error) {
	if about == "" || content == "" {
		return models.Comment{}, fmt.Errorf("about and content are required: %w", common.ErrorValidation)
	}
	c := models.Comment{
		ID:        uuid.NewString(),
		About:     about,
		Content:   content,
		Commenter: &models.Person{GivenName: user},
		Status:    "draft",
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.SaveComment(ctx, c); err != nil {
		return models.Comment{}, fmt.Errorf("error creating comment: %w", err)
	}
	return c, nil
}

func (s *Service) UpdateComment(ctx context.Context, id string, upd models.CommentUpdate) (models.Comment, error) {
	c, err := s.repo.GetComment(ctx, id)
	if err != nil {
		return models.Comment{}, err
	}
	if upd.Content != nil {
		c.Content = *upd.Content
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if err := s.repo.SaveComment(ctx, c); err != nil {
		return models.Comment{}, fmt.Errorf("error updating comment: %w", err)
	}
	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, id string) error {
	return s.repo.DeleteComment(ctx, id)
}

func (s *Service) Vocabulary(ctx context.Context) (models.Vocabulary, error) {
	return s.repo.Vocabulary(ctx)
}

func (s *Service) Projects(ctx context.Context, onlyEditable bool) ([]models.Project, error) {
	all, err := s.repo.Projects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(all))
	for _, p := range all {
		if onlyEditable && !p.Editable {
			continue
		}
		out = append(out, models.Project{ProjectID: p.ProjectID})
	}
	return out, nil
}
