package models

import "time"

// Person is an author or owner record.
type Person struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Instance is one versioned revision of a resource.
type Instance struct {
	ID          string    `json:"id,omitempty"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	Parameters  string    `json:"parameters,omitempty"`
	Timestamp   time.Time `json:"timestamp"`

	// model instances
	CodeFormat string `json:"code_format,omitempty"`
	Source     string `json:"source,omitempty"`
	License    string `json:"license,omitempty"`
	Hash       string `json:"hash,omitempty"`
	Morphology string `json:"morphology,omitempty"`

	// test instances
	Path       string `json:"path,omitempty"`
	Repository string `json:"repository,omitempty"`
}

// Resource is a model or a test as served by the catalog API.
//
// LoadedVersions is true only when Instances and the detail fields come from a
// detail fetch; LoadedResults is true only when ResultIDs come from a results
// fetch (or the resource was just created and has none).
type Resource struct {
	ID          string    `json:"id,omitempty"`
	Alias       string    `json:"alias,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Author      []Person  `json:"author,omitempty"`
	Owner       []Person  `json:"owner,omitempty"`
	ProjectID   string    `json:"project_id,omitempty"`
	Private     bool      `json:"private,omitempty"`
	DateCreated time.Time `json:"date_created"`

	Species          string `json:"species,omitempty"`
	BrainRegion      string `json:"brain_region,omitempty"`
	CellType         string `json:"cell_type,omitempty"`
	ModelScope       string `json:"model_scope,omitempty"`
	AbstractionLevel string `json:"abstraction_level,omitempty"`
	Organization     string `json:"organization,omitempty"`

	TestType          string `json:"test_type,omitempty"`
	ScoreType         string `json:"score_type,omitempty"`
	DataLocation      string `json:"data_location,omitempty"`
	DataType          string `json:"data_type,omitempty"`
	RecordingModality string `json:"recording_modality,omitempty"`
	Status            string `json:"implementation_status,omitempty"`

	// Instances is null in summary payloads.
	Instances []Instance `json:"instances"`

	ResultIDs      []string `json:"-"`
	LoadedVersions bool     `json:"-"`
	LoadedResults  bool     `json:"-"`
}

// Clone returns a deep copy of r.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	c := *r
	c.Author = append([]Person(nil), r.Author...)
	c.Owner = append([]Person(nil), r.Owner...)
	c.Instances = append(make([]Instance, 0, len(r.Instances)), r.Instances...)
	c.ResultIDs = append(make([]string, 0, len(r.ResultIDs)), r.ResultIDs...)
	return &c
}

// InstanceIndex returns the position of the instance with the given ID or -1.
func (r *Resource) InstanceIndex(id string) int {
	for i := range r.Instances {
		if r.Instances[i].ID == id {
			return i
		}
	}
	return -1
}
