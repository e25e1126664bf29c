package fieldstore

import (
	"github.com/tomberek/fieldstore/field"
)

func (s *StoreSuite) TestUpsertVariableReplacesRow() {
	f := s.save(textField("title"))
	v := field.Variable{FieldID: f.Inode, Name: "Max length", Key: "maxLength", Value: "80", UserID: "admin"}

	first, err := s.store.UpsertVariable(s.ctx, v)
	s.Require().NoError(err)
	second, err := s.store.UpsertVariable(s.ctx, v)
	s.Require().NoError(err)

	s.NotEmpty(first.ID)
	s.NotEqual(first.ID, second.ID)
	s.True(second.ModDate.After(first.ModDate))

	vars, err := s.store.LoadVariables(s.ctx, f)
	s.Require().NoError(err)
	s.Require().Len(vars, 1)
	s.Equal(second.ID, vars[0].ID)
	s.Equal("80", vars[0].Value)
	s.Equal("admin", vars[0].UserID)
	s.True(second.ModDate.Equal(vars[0].ModDate))
}

func (s *StoreSuite) TestUpsertVariableKeepsGivenID() {
	f := s.save(textField("title"))
	saved, err := s.store.UpsertVariable(s.ctx, field.Variable{FieldID: f.Inode, Key: "maxLength", Value: "80"})
	s.Require().NoError(err)

	saved.Value = "120"
	updated, err := s.store.UpsertVariable(s.ctx, saved)
	s.Require().NoError(err)
	s.Equal(saved.ID, updated.ID)

	stored, err := s.store.FindVariable(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("120", stored.Value)
	s.Equal(f.Inode, stored.FieldID)
}

func (s *StoreSuite) TestVariablesAreKeyed() {
	f := s.save(textField("title"))
	other := s.save(textField("body"))
	for _, key := range []string{"a", "b", "c"} {
		_, err := s.store.UpsertVariable(s.ctx, field.Variable{FieldID: f.Inode, Key: key, Value: key})
		s.Require().NoError(err)
	}
	_, err := s.store.UpsertVariable(s.ctx, field.Variable{FieldID: other.Inode, Key: "a", Value: "other"})
	s.Require().NoError(err)

	vars, err := s.store.LoadVariables(s.ctx, f)
	s.Require().NoError(err)
	s.Len(vars, 3)
	otherVars, err := s.store.LoadVariables(s.ctx, other)
	s.Require().NoError(err)
	s.Len(otherVars, 1)
}

func (s *StoreSuite) TestDeleteVariable() {
	f := s.save(textField("title"))
	v, err := s.store.UpsertVariable(s.ctx, field.Variable{FieldID: f.Inode, Key: "maxLength", Value: "80"})
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteVariable(s.ctx, v))
	_, err = s.store.FindVariable(s.ctx, v.ID)
	s.ErrorIs(err, field.ErrNotFound)
	s.NoError(s.store.DeleteVariable(s.ctx, v))
}

func (s *StoreSuite) TestDeleteAllVariables() {
	f := s.save(textField("title"))
	for _, key := range []string{"a", "b"} {
		_, err := s.store.UpsertVariable(s.ctx, field.Variable{FieldID: f.Inode, Key: key, Value: key})
		s.Require().NoError(err)
	}
	s.Require().NoError(s.store.DeleteAllVariables(s.ctx, f))
	vars, err := s.store.LoadVariables(s.ctx, f)
	s.Require().NoError(err)
	s.Empty(vars)

	_, err = s.store.Find(s.ctx, f.Inode)
	s.NoError(err)
}

func (s *StoreSuite) TestUpsertVariableWithoutField() {
	_, err := s.store.UpsertVariable(s.ctx, field.Variable{Key: "orphan"})
	s.ErrorIs(err, field.ErrNotFound)
}
