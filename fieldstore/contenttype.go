package fieldstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tomberek/fieldstore/field"
)

// ContentType is what the engine needs to know about a content type: its
// identity, its variable name and a display name for messages.
type ContentType struct {
	ID       string `json:"id"`
	Variable string `json:"variable"`
	Name     string `json:"name"`
}

// RegisterContentType records ct if its id is not known yet and returns the
// stored entry. Registering twice is harmless; the first registration wins.
func (s *Store) RegisterContentType(ctx context.Context, ct ContentType) (ContentType, error) {
	if ct.ID == "" {
		return ContentType{}, field.MissingContentType("content type %q has no id", ct.Variable)
	}
	if ct.Variable == "" {
		ct.Variable = ct.ID
	}
	if ct.Name == "" {
		ct.Name = ct.Variable
	}
	var stored ContentType
	err := s.inTx(ctx, "register content type", func(tx *sql.Tx) error {
		if err := exec(ctx, tx, "insert content type", sqlInsertStructure, ct.ID, ct.Name, ct.Variable); err != nil {
			return err
		}
		var err error
		stored, err = selectContentType(ctx, tx, ct.ID)
		return err
	})
	return stored, err
}

// ContentType returns the registered content type with the given id.
func (s *Store) ContentType(ctx context.Context, id string) (ContentType, error) {
	return selectContentType(ctx, s.db, id)
}

func selectContentType(ctx context.Context, q querier, id string) (ContentType, error) {
	var ct ContentType
	err := q.QueryRowContext(ctx, sqlSelectStructure, id).Scan(&ct.ID, &ct.Name, &ct.Variable)
	if errors.Is(err, sql.ErrNoRows) {
		return ContentType{}, field.NotFound("content type %s", id)
	}
	if err != nil {
		return ContentType{}, field.StorageFailure(err, "select content type")
	}
	return ct, nil
}

// contentTypeLabel names a content type in messages: its display name when
// registered, its id otherwise.
func (s *Store) contentTypeLabel(ctx context.Context, q querier, id string) string {
	ct, err := selectContentType(ctx, q, id)
	if err != nil {
		return id
	}
	return ct.Name + " (" + ct.ID + ")"
}
