package fieldstore

import (
	"context"
	"database/sql"

	"github.com/tomberek/fieldstore/field"
)

// LoadVariables returns the variables of f in no particular order.
func (s *Store) LoadVariables(ctx context.Context, f field.Field) ([]field.Variable, error) {
	rows, err := loadRows(ctx, s.db, sqlSelectFieldVars, f.Inode)
	if err != nil {
		return nil, err
	}
	return field.VariablesFromRows(rows)
}

func (s *Store) FindVariable(ctx context.Context, id string) (field.Variable, error) {
	rows, err := loadRows(ctx, s.db, sqlSelectFieldVar, id)
	if err != nil {
		return field.Variable{}, err
	}
	if len(rows) == 0 {
		return field.Variable{}, field.NotFound("field variable with id %s", id)
	}
	return field.VariableFromRow(rows[0])
}

// UpsertVariable replaces the variable rather than updating it in place:
// the previous row (same id, or same field and key) is deleted and a fresh
// one inserted with a new modification date. A variable without an id gets
// a new one.
func (s *Store) UpsertVariable(ctx context.Context, v field.Variable) (saved field.Variable, err error) {
	if v.FieldID == "" {
		return field.Variable{}, field.NotFound("field variable %q has no field", v.Key)
	}
	v.ModDate = field.RoundToSecond(s.now())
	if v.ID == "" {
		v.ID = s.newID()
	}
	err = s.inTx(ctx, "upsert field variable", func(tx *sql.Tx) error {
		if err := exec(ctx, tx, "delete field variable", sqlDeleteFieldVar, v.ID); err != nil {
			return err
		}
		if err := exec(ctx, tx, "delete field variable", sqlDeleteFieldVarByKey, v.FieldID, v.Key); err != nil {
			return err
		}
		return exec(ctx, tx, "insert field variable", sqlInsertFieldVar,
			v.ID, v.FieldID, v.Name, v.Key, v.Value, v.UserID, v.ModDate)
	})
	if err != nil {
		return field.Variable{}, err
	}
	s.log.Debug().Str("field", v.FieldID).Str("key", v.Key).Str("id", v.ID).Msg("field variable saved")
	return v, nil
}

// DeleteVariable is a no-op for variables that are not stored.
func (s *Store) DeleteVariable(ctx context.Context, v field.Variable) error {
	return s.inTx(ctx, "delete field variable", func(tx *sql.Tx) error {
		return exec(ctx, tx, "delete field variable", sqlDeleteFieldVar, v.ID)
	})
}

func (s *Store) DeleteAllVariables(ctx context.Context, f field.Field) error {
	return s.inTx(ctx, "delete field variables", func(tx *sql.Tx) error {
		return exec(ctx, tx, "delete field variables", sqlDeleteFieldVarsField, f.Inode)
	})
}
