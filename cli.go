package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomberek/fieldstore/field"
	"github.com/tomberek/fieldstore/fieldstore"
)

// Command-line handlers

func newInitDbCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the field tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote DB %s\n", a.cfg.DSN)
			return nil
		},
	}
}

func newRegisterTypeCmd(a *app) *cobra.Command {
	var ct fieldstore.ContentType
	cmd := &cobra.Command{
		Use:   "register-type",
		Short: "Register a content type id with its variable and display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			stored, err := s.RegisterContentType(cmd.Context(), ct)
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), stored)
		},
	}
	cmd.Flags().StringVar(&ct.ID, "id", "", "Content type id")
	cmd.Flags().StringVar(&ct.Variable, "var", "", "Content type variable name")
	cmd.Flags().StringVar(&ct.Name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAddFieldCmd(a *app) *cobra.Command {
	var f field.Field
	var kind, dataType string
	cmd := &cobra.Command{
		Use:   "add-field",
		Short: "Save a field, assigning it a storage column",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Kind = field.Kind(kind)
			f.DataType = field.DataType(dataType)
			if f.DataType == "" {
				f.DataType = f.Kind.DefaultDataType()
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			saved, err := s.Save(cmd.Context(), f)
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), saved)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Inode, "id", "", "Field inode; updates the field when it exists")
	fl.StringVar(&f.ContentTypeID, "type", "", "Owning content type id")
	fl.StringVar(&f.Name, "name", "", "Display name")
	fl.StringVar(&f.Variable, "var", "", "Variable name, unique within the content type")
	fl.StringVar(&kind, "kind", string(field.KindText), "Field kind: "+joinValues(field.Kinds()))
	fl.StringVar(&dataType, "data-type", "",
		"Data type, defaults to the kind's first accepted type: "+joinValues(field.DataTypes()))
	fl.IntVar(&f.SortOrder, "sort", 0, "Sort order")
	fl.BoolVar(&f.Required, "required", false, "")
	fl.BoolVar(&f.Indexed, "indexed", false, "")
	fl.BoolVar(&f.Listed, "listed", false, "")
	fl.BoolVar(&f.Searchable, "searchable", false, "")
	fl.BoolVar(&f.Unique, "unique", false, "")
	fl.BoolVar(&f.Fixed, "fixed", false, "")
	fl.BoolVar(&f.ReadOnly, "read-only", false, "")
	fl.StringVar(&f.RelationType, "relation-type", "", "")
	fl.StringVar(&f.Values, "values", "", "")
	fl.StringVar(&f.RegexCheck, "regex", "", "")
	fl.StringVar(&f.Hint, "hint", "", "")
	fl.StringVar(&f.DefaultValue, "default", "", "")
	fl.StringVar(&f.Owner, "owner", "", "Creating user")
	return cmd
}

func newFieldsCmd(a *app) *cobra.Command {
	var typeID, typeVar string
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Dump the fields of a content type as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (typeID == "") == (typeVar == "") {
				return errors.New("exactly one of --type and --type-var is required")
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			var fields []field.Field
			if typeID != "" {
				fields, err = s.FindByContentType(cmd.Context(), typeID)
			} else {
				fields, err = s.FindByContentTypeVariable(cmd.Context(), typeVar)
			}
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), fields...)
		},
	}
	cmd.Flags().StringVar(&typeID, "type", "", "Content type id")
	cmd.Flags().StringVar(&typeVar, "type-var", "", "Content type variable name")
	return cmd
}

func newGetFieldCmd(a *app) *cobra.Command {
	var id, typeID, variable string
	cmd := &cobra.Command{
		Use:   "get-field",
		Short: "Print one field, by id or by content type and variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" && (typeID == "" || variable == "") {
				return errors.New("--id, or --type and --var, are required")
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			var f field.Field
			if id != "" {
				f, err = s.Find(cmd.Context(), id)
			} else {
				f, err = s.FindByContentTypeAndVariable(cmd.Context(), typeID, variable)
			}
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Field inode")
	cmd.Flags().StringVar(&typeID, "type", "", "Content type id")
	cmd.Flags().StringVar(&variable, "var", "", "Field variable")
	return cmd
}

func newDeleteFieldCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete-field",
		Short: "Delete a field and its variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(cmd.Context(), field.Field{Inode: id})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Field inode")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDropTypeCmd(a *app) *cobra.Command {
	var typeID string
	cmd := &cobra.Command{
		Use:   "drop-type",
		Short: "Delete every field of a content type",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteAllForContentType(cmd.Context(), typeID)
		},
	}
	cmd.Flags().StringVar(&typeID, "type", "", "Content type id")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newSetVarCmd(a *app) *cobra.Command {
	var v field.Variable
	cmd := &cobra.Command{
		Use:   "set-var",
		Short: "Attach a key/value variable to a field, replacing the previous one",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			if _, err := s.Find(cmd.Context(), v.FieldID); err != nil {
				return err
			}
			saved, err := s.UpsertVariable(cmd.Context(), v)
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), saved)
		},
	}
	cmd.Flags().StringVar(&v.ID, "id", "", "Variable id to replace")
	cmd.Flags().StringVar(&v.FieldID, "field", "", "Field inode")
	cmd.Flags().StringVar(&v.Name, "name", "", "")
	cmd.Flags().StringVar(&v.Key, "key", "", "")
	cmd.Flags().StringVar(&v.Value, "value", "", "")
	cmd.Flags().StringVar(&v.UserID, "user", "", "")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newVarsCmd(a *app) *cobra.Command {
	var fieldID string
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Dump the variables of a field as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			vars, err := s.LoadVariables(cmd.Context(), field.Field{Inode: fieldID})
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), vars...)
		},
	}
	cmd.Flags().StringVar(&fieldID, "field", "", "Field inode")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func newDeleteVarCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "delete-var",
		Short: "Delete a field variable",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteVariable(cmd.Context(), field.Variable{ID: id})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Variable id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := DefaultAnalyzeOptions()
	var input string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Infer field definitions from line-delimited JSON content",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := analyzeFile(input, opts)
			if err != nil {
				return err
			}
			return writeJSONLines(cmd.OutOrStdout(), fields...)
		},
	}
	addAnalyzeFlags(cmd, &input, &opts)
	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	var input, typeID string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Save line-delimited JSON field definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return err
			}
			defer f.Close()
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			n, err := LoadFields(cmd.Context(), s, f, typeID, a.logger())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d fields from %s into %s\n", n, input, a.cfg.DSN)
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Line-delimited JSON field definitions")
	cmd.Flags().StringVar(&typeID, "type", "", "Content type id overriding the one in each line")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	opts := DefaultAnalyzeOptions()
	var input string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Analyze line-delimited JSON content and save the inferred fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := analyzeFile(input, opts)
			if err != nil {
				return err
			}
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			n := SaveFields(cmd.Context(), s, fields, a.logger())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d fields from %s to %s\n", n, len(fields), input, a.cfg.DSN)
			return nil
		},
	}
	addAnalyzeFlags(cmd, &input, &opts)
	return cmd
}

func addAnalyzeFlags(cmd *cobra.Command, input *string, opts *AnalyzeOptions) {
	cmd.Flags().StringVar(input, "input", "", "Line-delimited JSON input file")
	cmd.Flags().StringVar(&opts.ContentTypeID, "type", "", "Content type id the fields belong to")
	cmd.Flags().IntVar(&opts.Sample, "sample", opts.Sample, "How many rows to sample for field inference")
	cmd.Flags().IntVar(&opts.LongText, "long-text", opts.LongText, "String length above which a field becomes a textarea")
	cmd.Flags().BoolVar(&opts.DetectSelects, "selects", opts.DetectSelects, "Turn low-cardinality strings into select fields")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("type")
}

func joinValues[T ~string](vs []T) string {
	ss := make([]string, len(vs))
	for i, v := range vs {
		ss[i] = string(v)
	}
	return strings.Join(ss, ", ")
}
