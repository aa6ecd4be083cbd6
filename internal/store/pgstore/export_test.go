package pgstore

import "github.com/jackc/pgx/v5/pgxpool"

// Pool exposes the pool to integration tests for fixture cleanup.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }
