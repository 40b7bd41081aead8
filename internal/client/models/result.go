package models

import "time"

// SummaryResult is the lightweight form of a validation result.
type SummaryResult struct {
	ID              string    `json:"id"`
	ModelID         string    `json:"model_id,omitempty"`
	ModelName       string    `json:"model_name,omitempty"`
	ModelAlias      string    `json:"model_alias,omitempty"`
	ModelVersion    string    `json:"model_version,omitempty"`
	ModelInstanceID string    `json:"model_instance_id"`
	TestID          string    `json:"test_id,omitempty"`
	TestName        string    `json:"test_name,omitempty"`
	TestAlias       string    `json:"test_alias,omitempty"`
	TestVersion     string    `json:"test_version,omitempty"`
	TestInstanceID  string    `json:"test_instance_id"`
	Score           float64   `json:"score"`
	NormalizedScore *float64  `json:"normalized_score,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// ResultFile points at an artefact stored alongside a result.
type ResultFile struct {
	DownloadURL string `json:"download_url"`
	Hash        string `json:"hash,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// ExtendedResult carries the full result record with embedded instances.
type ExtendedResult struct {
	ID              string       `json:"id"`
	ModelInstanceID string       `json:"model_instance_id"`
	TestInstanceID  string       `json:"test_instance_id"`
	ModelInstance   *Instance    `json:"model_instance,omitempty"`
	TestInstance    *Instance    `json:"test_instance,omitempty"`
	Model           *Resource    `json:"model,omitempty"`
	Test            *Resource    `json:"test,omitempty"`
	Score           float64      `json:"score"`
	NormalizedScore *float64     `json:"normalized_score,omitempty"`
	Passed          *bool        `json:"passed,omitempty"`
	ProjectID       string       `json:"project_id,omitempty"`
	URI             string       `json:"uri,omitempty"`
	Comment         string       `json:"comment,omitempty"`
	ResultsStorage  []ResultFile `json:"results_storage,omitempty"`
	Timestamp       time.Time    `json:"timestamp"`
}

// Clone returns a deep copy of r.
func (r *ExtendedResult) Clone() *ExtendedResult {
	if r == nil {
		return nil
	}
	c := *r
	if r.ModelInstance != nil {
		mi := *r.ModelInstance
		c.ModelInstance = &mi
	}
	if r.TestInstance != nil {
		ti := *r.TestInstance
		c.TestInstance = &ti
	}
	c.Model = r.Model.Clone()
	c.Test = r.Test.Clone()
	c.ResultsStorage = append([]ResultFile(nil), r.ResultsStorage...)
	return &c
}
