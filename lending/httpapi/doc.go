// Package httpapi exposes the lending engine and its stores over a JSON
// HTTP interface.
//
// Routing uses the standard library mux with method patterns; request and
// response bodies are encoded with jsoniter. Domain errors map onto HTTP
// status codes in one place, see statusFor.
package httpapi
