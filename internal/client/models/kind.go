package models

import "fmt"

// Kind distinguishes the two resource families of the catalog.
type Kind string

const (
	KindModel Kind = "model"
	KindTest  Kind = "test"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{KindModel, KindTest}

// Collection is the path segment of the kind's REST collection ("models", "tests").
func (k Kind) Collection() string {
	return string(k) + "s"
}

// IDParam is the query parameter used to filter results by a resource of this kind.
func (k Kind) IDParam() string {
	return string(k) + "_id"
}

// InstanceIDParam is the query parameter used to filter results by instances of this kind.
func (k Kind) InstanceIDParam() string {
	return string(k) + "_instance_id"
}

// Validate reports whether k is one of the known kinds.
func (k Kind) Validate() error {
	switch k {
	case KindModel, KindTest:
		return nil
	default:
		return fmt.Errorf("unknown resource kind %q", string(k))
	}
}

// ParseKind accepts both singular and plural spellings.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "model", "models":
		return KindModel, nil
	case "test", "tests":
		return KindTest, nil
	default:
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
}
