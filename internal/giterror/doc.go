// Package giterror provides error inspection capabilities for GitHub API errors.
// It centralizes the logic for telling apart the failure modes of a request
// (network, HTTP status, response decoding, GraphQL errors) so that the
// clients in internal/github can map raw library errors onto the sentinels
// in internal/errors.
package giterror
