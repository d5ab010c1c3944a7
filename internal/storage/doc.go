// Package storage provides the BBolt journal of attack runs.
//
// Database structure uses two buckets:
//   - config: schema version, creation and modification timestamps
//   - runs: JSON run summaries keyed by a big-endian sequence number
//
// Runs are listed in insertion order. The journal never stores secrets,
// candidates or derived keys, only counts and timings.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
