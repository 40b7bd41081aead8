package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

type newComment struct {
	About   string `json:"about"`
	Content string `json:"content"`
}

// GetComments returns the comments about subjectID ordered by timestamp.
func (s *Store) GetComments(ctx context.Context, subjectID string, opts ...CallOption) ([]models.Comment, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("%w: empty subject id", ErrInvalidArgument)
	}
	o := applyCallOptions(opts)

	if !o.forceRefresh {
		s.mu.RLock()
		list, ok := s.comments[subjectID]
		if ok {
			out := append([]models.Comment{}, list...)
			s.mu.RUnlock()
			s.metrics.hit(opComments)
			return out, nil
		}
		s.mu.RUnlock()
	}
	s.metrics.fetch(opComments, o.forceRefresh)

	key := "comments/" + subjectID
	v, err := s.share(ctx, key, func(ctx context.Context) (any, error) {
		var items []models.Comment
		if err := s.client.Get(ctx, s.commentsPath(subjectID), &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Comment{}
		}
		models.SortComments(items)

		if err := s.lockSettled(ctx, key); err != nil {
			return nil, err
		}
		defer s.mu.Unlock()
		s.comments[subjectID] = items
		return append([]models.Comment{}, items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]models.Comment{}, v.([]models.Comment)...), nil
}

// CreateComment posts a new comment about subjectID and adds it to the
// cached list, creating the list if it was never fetched.
func (s *Store) CreateComment(ctx context.Context, subjectID, content string) (*models.Comment, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("%w: empty subject id", ErrInvalidArgument)
	}

	var c models.Comment
	if err := s.client.Post(ctx, "/comments/", newComment{About: subjectID, Content: content}, &c); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	if err := s.lockSettled(ctx, "create comment"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	list := append(s.comments[subjectID], c)
	models.SortComments(list)
	s.comments[subjectID] = list
	return &c, nil
}

// UpdateComment edits a comment. An empty content leaves the text unchanged;
// submit publishes the comment. At least one of them must be given.
func (s *Store) UpdateComment(ctx context.Context, subjectID, commentID, content string, submit bool) (*models.Comment, error) {
	if commentID == "" {
		return nil, fmt.Errorf("%w: empty comment id", ErrInvalidArgument)
	}
	var upd models.CommentUpdate
	if content != "" {
		upd.Content = &content
	}
	if submit {
		status := models.CommentStatusSubmitted
		upd.Status = &status
	}
	if upd.Content == nil && upd.Status == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	var c models.Comment
	if err := s.client.Put(ctx, "/comments/"+url.PathEscape(commentID), upd, &c); err != nil {
		return nil, fmt.Errorf("error updating comment: %w", err)
	}

	if err := s.lockSettled(ctx, "update comment"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	list := s.comments[subjectID]
	for i := range list {
		if list[i].ID != commentID {
			continue
		}
		if c.ID == commentID {
			list[i] = c
		} else {
			if upd.Content != nil {
				list[i].Content = content
			}
			if upd.Status != nil {
				list[i].Status = *upd.Status
			}
			c = list[i]
		}
		models.SortComments(list)
		break
	}
	return &c, nil
}

// DeleteComment removes a comment on the server and from the cached list.
func (s *Store) DeleteComment(ctx context.Context, subjectID, commentID string) error {
	if commentID == "" {
		return fmt.Errorf("%w: empty comment id", ErrInvalidArgument)
	}
	if err := s.client.Delete(ctx, "/comments/"+url.PathEscape(commentID), nil); err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if err := s.lockSettled(ctx, "delete comment"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	list, ok := s.comments[subjectID]
	if !ok {
		return nil
	}
	kept := make([]models.Comment, 0, len(list))
	for _, c := range list {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	s.comments[subjectID] = kept
	return nil
}
