// Package testutil provides test doubles for the lending engine: map-backed
// in-memory stores, a fixed clock, and recording/failing notification
// senders. The in-memory stores keep insertion order stable so list
// assertions are deterministic.
package testutil
