// Package api contains the HTTP transport layer: chi handlers over the
// stores and services, request DTOs with validation tags, and the
// central error-to-status mapping. Handlers stay thin; every domain
// decision lives in the services underneath.
package api
