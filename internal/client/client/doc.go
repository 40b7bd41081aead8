// Package client is the transport layer between the catalog store and the
// validation REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) exposing the
//     four verbs the store needs: Get, Post, Put and Delete. Every call takes
//     a context.Context, which doubles as the cancellation signal.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that injects
//     the bearer token from a TokenSource, decodes response bodies and
//     classifies failures.
//  3. Request metrics (count and latency, labelled by method and status
//     code) registered on a caller-supplied prometheus.Registerer.
//
// # Error Handling
//
// A canceled context yields an error matching ErrCanceled; callers treat it
// as an expected outcome, not a failure (see IsCanceled). Every other failure
// is a *NetworkError that also matches one of the sentinels ErrUnauthorized,
// ErrNotFound or ErrUnavailable where the status code (or lack of one) allows.
// Tokens that are already expired are rejected with ErrTokenExpired before
// any request is sent.
//
// HTTPClient is safe for concurrent use.
package client
