package store

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
)

var (
	ErrParentNotLoaded = errors.New("parent resource is not loaded")
	ErrInvalidArgument = errors.New("invalid argument")
)

// IdentityMismatchError means the server answered a detail request with an
// entity whose ID and alias both differ from the requested identifier.
type IdentityMismatchError struct {
	Kind      models.Kind
	Requested string
	ID        string
	Alias     string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("retrieved %s id %q (alias %q) doesn't match requested identifier %q", e.Kind, e.ID, e.Alias, e.Requested)
}

// DanglingReferenceError means a resource's loaded result IDs reference a
// summary result that is not in the cache.
type DanglingReferenceError struct {
	Kind       models.Kind
	ResourceID string
	ResultID   string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s %q references result %q missing from the summary cache", e.Kind, e.ResourceID, e.ResultID)
}
