package fieldstore

import (
	"context"
	"database/sql"

	"github.com/tomberek/fieldstore/field"
)

// inTx runs fn in one transaction: commit when fn returns nil, rollback
// otherwise (or on panic). fn's error is returned unchanged.
func (s *Store) inTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return field.StorageFailure(err, "begin "+op)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error().Err(rbErr).Str("op", op).Msg("rollback failed")
		}
		s.log.Warn().Err(err).Str("op", op).Msg("rolled back")
		return err
	}
	if err = tx.Commit(); err != nil {
		return field.StorageFailure(err, "commit "+op)
	}
	return nil
}
