// Package fieldstore persists field definitions of content types into fixed
// relational tables. Each field is bound on its first save to a generic
// numbered column of its data type ("text1".."text25"), and every save or
// delete runs in a single transaction.
package fieldstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomberek/fieldstore/field"
)

type Store struct {
	db    *sql.DB
	cfg   Config
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

// New returns a store over an already initialized database, see CreateSchema.
func New(db *sql.DB, cfg Config) *Store {
	return &Store{
		db:    db,
		cfg:   cfg,
		log:   cfg.Logger.With().Str("component", "fieldstore").Logger(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Find returns the field with the given inode.
func (s *Store) Find(ctx context.Context, id string) (field.Field, error) {
	return selectOne(ctx, s.db, field.NotFound("field with id %s", id), sqlFindByID, id)
}

func (s *Store) FindByContentTypeAndVariable(ctx context.Context, contentTypeID, variable string) (field.Field, error) {
	return selectOne(ctx, s.db,
		field.NotFound("field with content type %s and variable %s", contentTypeID, variable),
		sqlFindByContentTypeAndVar, contentTypeID, variable)
}

// FindByContentType returns the fields of a content type by sort order.
func (s *Store) FindByContentType(ctx context.Context, contentTypeID string) ([]field.Field, error) {
	return selectFields(ctx, s.db, sqlFindByContentType, contentTypeID)
}

// FindByContentTypeVariable is FindByContentType for a content type
// addressed by its variable name.
func (s *Store) FindByContentTypeVariable(ctx context.Context, typeVariable string) ([]field.Field, error) {
	return selectFields(ctx, s.db, sqlFindByContentTypeVariable, typeVariable)
}

// Save inserts or updates f and returns the stored record with its inode,
// db column and modification date resolved.
func (s *Store) Save(ctx context.Context, f field.Field) (saved field.Field, err error) {
	err = s.inTx(ctx, "save field", func(tx *sql.Tx) error {
		saved, err = s.save(ctx, tx, f)
		return err
	})
	if err != nil {
		return field.Field{}, err
	}
	return saved, nil
}

func (s *Store) save(ctx context.Context, tx *sql.Tx, candidate field.Field) (field.Field, error) {
	now := field.RoundToSecond(s.now())
	f := candidate.WithModDate(now)

	inserting := f.Inode == ""
	if !inserting {
		existing, err := selectOne(ctx, tx, nil, sqlFindByID, f.Inode)
		switch {
		case err == nil:
			// the column, and with it the data type, of a stored field never moves
			if f.DataType == "" {
				f.DataType = existing.DataType
			}
			if f.DataType != existing.DataType {
				return field.Field{}, field.InvalidDataType("field %s is stored as %s in column %s and cannot become %s",
					f.Inode, existing.DataType, existing.DBColumn, f.DataType)
			}
			f = f.WithDBColumn(existing.DBColumn).WithIDate(existing.IDate)
			if f.Variable == "" {
				f.Variable = existing.Variable
			}
		case errors.Is(err, field.ErrNotFound):
			s.log.Debug().Str("inode", f.Inode).Msg("inode not stored, inserting")
			inserting = true
		default:
			return field.Field{}, err
		}
	}

	if inserting && f.DBColumn != "" {
		if err := s.checkColumn(f); err != nil {
			return field.Field{}, err
		}
		// capped slots are counted on every insert
		if f.Kind.ColumnCapped() {
			f = f.WithDBColumn("")
		}
	}
	if f.DBColumn == "" {
		col, err := s.allocateColumn(ctx, tx, f)
		if err != nil {
			return field.Field{}, err
		}
		s.log.Debug().Str("contentType", f.ContentTypeID).Str("variable", f.Variable).Str("column", col).Msg("column assigned")
		f = f.WithDBColumn(col)
	}
	if f.Inode == "" {
		f = f.WithInode(s.newID())
	}
	if f.Variable == "" && f.ContentTypeID != "" {
		v, err := uniqueVariable(ctx, tx, f)
		if err != nil {
			return field.Field{}, err
		}
		f.Variable = v
	}
	if f.IDate.IsZero() {
		f = f.WithIDate(now)
	}

	f, err := s.validate(ctx, tx, f)
	if err != nil {
		return field.Field{}, err
	}

	if inserting {
		if err := exec(ctx, tx, "insert inode", sqlInsertInode, f.Inode, f.IDate, f.Owner); err != nil {
			return field.Field{}, err
		}
		if err := exec(ctx, tx, "insert field", sqlInsertField,
			f.Inode, f.ContentTypeID, f.Name, string(f.Kind), f.RelationType,
			f.DBColumn, f.Required, f.Indexed, f.Listed, f.Variable, f.SortOrder,
			f.Values, f.RegexCheck, f.Hint, f.DefaultValue, f.Fixed, f.ReadOnly,
			f.Searchable, f.Unique, f.ModDate); err != nil {
			return field.Field{}, err
		}
		s.log.Debug().Str("inode", f.Inode).Str("column", f.DBColumn).Msg("field inserted")
		return f, nil
	}

	if err := exec(ctx, tx, "update inode", sqlUpdateInode, f.IDate, f.Owner, f.Inode); err != nil {
		return field.Field{}, err
	}
	if err := exec(ctx, tx, "update field", sqlUpdateField,
		f.ContentTypeID, f.Name, string(f.Kind), f.RelationType,
		f.Required, f.Indexed, f.Listed, f.Variable, f.SortOrder, f.Values,
		f.RegexCheck, f.Hint, f.DefaultValue, f.Fixed, f.ReadOnly, f.Searchable, f.Unique,
		f.ModDate, f.Inode); err != nil {
		return field.Field{}, err
	}
	s.log.Debug().Str("inode", f.Inode).Msg("field updated")
	return f, nil
}

// Delete removes f, its variables and its inode. Deleting a field that is
// not stored is not an error.
func (s *Store) Delete(ctx context.Context, f field.Field) error {
	return s.inTx(ctx, "delete field", func(tx *sql.Tx) error {
		return deleteField(ctx, tx, f.Inode)
	})
}

// DeleteAllForContentType deletes the fields of a content type one
// transaction at a time. On failure the fields already deleted stay deleted;
// calling it again finishes the job.
func (s *Store) DeleteAllForContentType(ctx context.Context, contentTypeID string) error {
	fields, err := s.FindByContentType(ctx, contentTypeID)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if err := s.Delete(ctx, f); err != nil {
			return err
		}
	}
	s.log.Debug().Str("contentType", contentTypeID).Int("fields", len(fields)).Msg("content type fields deleted")
	return nil
}

// uniqueVariable derives a variable for a field saved without one from its
// name, or its kind when unnamed, numbered when the content type already
// uses it.
func uniqueVariable(ctx context.Context, q querier, f field.Field) (string, error) {
	base := string(f.Kind)
	if f.Name != "" {
		base = f.Name
	}
	base = field.VariableName(base)
	for i := 1; ; i++ {
		v := base
		if i > 1 {
			v = base + strconv.Itoa(i)
		}
		n, err := queryInt(ctx, q, sqlCountOfVariable, f.ContentTypeID, v)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return v, nil
		}
	}
}

func deleteField(ctx context.Context, q querier, inode string) error {
	if err := exec(ctx, q, "delete field variables", sqlDeleteFieldVarsField, inode); err != nil {
		return err
	}
	if err := exec(ctx, q, "delete field", sqlDeleteField, inode); err != nil {
		return err
	}
	return exec(ctx, q, "delete inode", sqlDeleteInode, inode)
}

func selectFields(ctx context.Context, q querier, query string, args ...any) ([]field.Field, error) {
	rows, err := loadRows(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	return field.FromRows(rows)
}

// selectOne returns notFound (or a plain field.ErrNotFound when nil) if the
// query yields no row.
func selectOne(ctx context.Context, q querier, notFound error, query string, args ...any) (field.Field, error) {
	rows, err := loadRows(ctx, q, query, args...)
	if err != nil {
		return field.Field{}, err
	}
	if len(rows) == 0 {
		if notFound == nil {
			notFound = field.ErrNotFound
		}
		return field.Field{}, notFound
	}
	return field.FromRow(rows[0])
}
