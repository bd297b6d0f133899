// Package body encodes the single active body candidate of a request
// spec into wire bytes plus a content type.
//
// Exactly one representation may be active: raw, JSON, form-urlencoded,
// multipart, or GraphQL. The candidate is a tagged union; Encode switches
// exhaustively over the tag.
package body
