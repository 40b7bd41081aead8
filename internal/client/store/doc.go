// Package store is the client-side resource cache of the model catalog.
//
// Every network access of the catalog goes through a Store. It answers from
// memory when the requested data is loaded at the requested level and
// otherwise issues exactly one request through the injected client.Client,
// folds the response into its tables and returns copies to the caller.
//
// # Tables
//
//   - resources: models and tests keyed by ID, with an alias index per kind;
//   - queries: filter string -> ordered resource IDs, per kind (never
//     re-fetched unless ForceRefresh is passed);
//   - summary and extended results keyed by result ID;
//   - comments keyed by the ID of the object they are about, ordered by
//     timestamp ascending;
//   - the filter vocabulary and the editable project list, each fetched once.
//
// # Load levels
//
// A resource returned by a query is summary-level. GetResource loads its
// instances (LoadedVersions) and GetResultsByResource its result IDs
// (LoadedResults). UpdateResource marks results stale again.
//
// # Concurrency and cancellation
//
// A Store is safe for concurrent use. A single mutex guards all tables and is
// never held across a network call. Concurrent misses on the same key share
// one request. When the caller's context is canceled the operation returns an
// error matching client.ErrCanceled and leaves every table untouched.
package store
