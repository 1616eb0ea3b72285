// Package quote fetches quotes from the quote backend.
//
// The backend contract is a single endpoint:
//
//	GET <base>/api/quotes/random[?tag=<string>]
//
// returning a JSON object with a required text and optional author and
// template fields. Responses are validated against an embedded OpenAPI
// document before they are decoded.
package quote
