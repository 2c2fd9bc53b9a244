// Package httputil provides the shared JSON response helpers for the
// gateway handlers.
//
// Handlers use these instead of writing raw http.ResponseWriter calls so
// that every endpoint shares the same envelope and error shape.
package httputil
