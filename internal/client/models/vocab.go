package models

// Filters maps a filter field to the set of accepted values.
type Filters map[string][]string

// Vocabulary maps a filter field to its allowed values.
type Vocabulary map[string][]string

// Clone returns a deep copy of v.
func (v Vocabulary) Clone() Vocabulary {
	if v == nil {
		return nil
	}
	c := make(Vocabulary, len(v))
	for k, vals := range v {
		c[k] = append([]string(nil), vals...)
	}
	return c
}

// Project is the project descriptor returned by the projects endpoint.
type Project struct {
	ProjectID string `json:"project_id"`
}
