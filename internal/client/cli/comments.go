package cli

import (
	"context"
	"fmt"
)

func (a *App) Comments(ctx context.Context, subject string) error {
	list, err := a.service.Comments(ctx, subject, a.refresh)
	if err != nil {
		return err
	}
	printComments(a.out, list)
	return nil
}

func (a *App) Comment(ctx context.Context, subject string) error {
	content, err := GetMultiline(a.reader, "Comment text", a.out)
	if err != nil {
		return err
	}
	c, err := a.service.Comment(ctx, subject, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created comment %s\n", c.ID)
	return nil
}

// EditComment asks for new text; an empty answer keeps the current text.
// With submit set the comment is also published.
func (a *App) EditComment(ctx context.Context, subject, commentID string, submit bool) error {
	var content string
	if !submit {
		var err error
		content, err = GetMultiline(a.reader, "New comment text", a.out)
		if err != nil {
			return err
		}
	}
	c, err := a.service.EditComment(ctx, subject, commentID, content, submit)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated comment %s (%s)\n", c.ID, c.Status)
	return nil
}

func (a *App) DeleteComment(ctx context.Context, subject, commentID string) error {
	if err := a.service.DeleteComment(ctx, subject, commentID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted comment %s\n", commentID)
	return nil
}
