// Package storage provides optional backing-store adapters.
//
// Implementations:
//   - postgres: PostgreSQL via database/sql and lib/pq
//   - redis: Redis client wrapper
//
// Neither store carries application state; the service only verifies
// reachability at startup and releases the connections on shutdown.
package storage
