package models

import (
	"sort"
	"time"
)

// CommentStatusSubmitted marks a comment as published.
const CommentStatusSubmitted = "submitted"

// Comment is a remark attached to a model, test or any other addressable entity.
type Comment struct {
	ID        string    `json:"id"`
	About     string    `json:"about"`
	Content   string    `json:"content"`
	Commenter *Person   `json:"commenter,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CommentUpdate is the partial payload sent when editing a comment. Nil fields are omitted.
type CommentUpdate struct {
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// SortComments orders comments by timestamp ascending, keeping the relative
// order of equal timestamps.
func SortComments(c []Comment) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Timestamp.Before(c[j].Timestamp)
	})
}
