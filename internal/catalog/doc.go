// Package catalog holds the types shared by the library and book resources
// that are independent of storage and transport: the error kinds surfaced at
// the HTTP boundary, explicit payload validation, and page requests/results.
//
// # Error kinds
//
//   - ReferenceNotFoundError: a target record or a referenced parent record
//     does not exist. Matches ErrReferenceNotFound via errors.Is.
//   - ValidationError: an inbound payload failed field-level validation.
//
// Both are mapped to status codes only in internal/http.
package catalog
