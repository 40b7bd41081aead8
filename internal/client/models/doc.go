// Package models defines the catalog entities exchanged with the validation
// API and held by the client-side store: models and tests (resources), their
// instances, summary and extended results, comments and filter vocabularies.
//
// Fields tagged json:"-" never travel over the wire; they describe how much of
// an entity the store has loaded so far.
package models
