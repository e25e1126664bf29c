package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomberek/fieldstore/field"
)

// Helper for tests
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o666))
	return p
}

// runCmd executes the command line against dbPath in-process
func runCmd(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	a.logOut = io.Discard
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// Helper to parse multiple lines of JSON objects
func decodeAllLines[T any](t *testing.T, s string) []T {
	t.Helper()
	var res []T
	dec := json.NewDecoder(strings.NewReader(s))
	for dec.More() {
		var v T
		require.NoError(t, dec.Decode(&v))
		res = append(res, v)
	}
	return res
}

const newsContent = `{"title": "Rates rise", "category": "economy", "count": 3, "price": 1.5, "published": true, "created": "2024-01-02", "tags": ["a"], "body": "BODY"}
{"title": "Rain again", "category": "economy", "count": 4, "price": 2.25, "published": false, "created": "2024-01-03", "tags": [], "body": "BODY"}
not json
{"title": "Cup final", "category": "economy", "count": 5, "price": 3, "published": true, "created": "2024-01-04T10:00:00Z", "tags": ["b"], "body": "BODY"}
{"title": "New bridge", "category": "economy", "count": 6, "price": 4.75, "published": true, "created": "2024-01-05", "tags": [], "body": "BODY"}
{"title": "Late train", "category": "economy", "count": 7, "price": 5.5, "published": false, "created": "2024-01-06", "tags": [], "body": "BODY"}
`

func newsSample() string {
	return strings.ReplaceAll(newsContent, "BODY", strings.Repeat("x", 300))
}

func TestAnalyzeJSON(t *testing.T) {
	opts := DefaultAnalyzeOptions()
	opts.ContentTypeID = "news"
	fields, err := AnalyzeJSON(strings.NewReader(newsSample()), opts)
	require.NoError(t, err)

	byVar := map[string]field.Field{}
	for _, f := range fields {
		assert.Equal(t, "news", f.ContentTypeID)
		assert.True(t, f.AcceptsDataType(), "%s: %s/%s", f.Variable, f.Kind, f.DataType)
		byVar[f.Variable] = f
	}
	require.Len(t, byVar, 8)

	assert.Equal(t, field.KindTextarea, byVar["body"].Kind)
	assert.Equal(t, field.KindSelect, byVar["category"].Kind)
	assert.Equal(t, "economy", byVar["category"].Values)
	assert.True(t, byVar["category"].Listed)
	assert.Equal(t, field.DataTypeInteger, byVar["count"].DataType)
	assert.Equal(t, field.KindDateTime, byVar["created"].Kind)
	assert.Equal(t, field.DataTypeFloat, byVar["price"].DataType)
	assert.Equal(t, field.DataTypeBool, byVar["published"].DataType)
	assert.Equal(t, field.KindKeyValue, byVar["tags"].Kind)
	assert.Equal(t, field.KindText, byVar["title"].Kind)
	assert.Equal(t, "Title", byVar["title"].Name)
	assert.Equal(t, 1, byVar["body"].SortOrder)
}

func TestAnalyzeJSONNoRows(t *testing.T) {
	_, err := AnalyzeJSON(strings.NewReader("nope\n"), DefaultAnalyzeOptions())
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "First Name", displayName("first_name"))
}

func TestImportAndDump(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fields.db")
	input := writeTempFile(t, "news.jsonl", newsSample())

	out, err := runCmd(t, db, "import", "--input", input, "--type", "news")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 8 of 8 fields")

	out, err = runCmd(t, db, "fields", "--type", "news")
	require.NoError(t, err)
	columns := map[string]string{}
	for _, f := range decodeAllLines[field.Field](t, out) {
		columns[f.Variable] = f.DBColumn
	}
	assert.Equal(t, map[string]string{
		"body":      "text_area1",
		"category":  "text1",
		"count":     "integer1",
		"created":   "date1",
		"price":     "float1",
		"published": "bool1",
		"tags":      "text_area2",
		"title":     "text2",
	}, columns)

	_, err = runCmd(t, db, "register-type", "--id", "news", "--var", "News", "--name", "News articles")
	require.NoError(t, err)
	out, err = runCmd(t, db, "fields", "--type-var", "News")
	require.NoError(t, err)
	assert.Len(t, decodeAllLines[field.Field](t, out), 8)

	_, err = runCmd(t, db, "drop-type", "--type", "news")
	require.NoError(t, err)
	out, err = runCmd(t, db, "fields", "--type", "news")
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestLoadSkipsBadLines(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fields.db")
	input := writeTempFile(t, "fields.jsonl", `{"contentTypeId": "news", "name": "Title", "variable": "title", "kind": "text"}
{broken
{"contentTypeId": "news", "name": "When", "variable": "when", "kind": "text", "dataType": "date"}

{"name": "Host", "variable": "host", "kind": "host_folder"}
{"name": "Host 2", "variable": "host2", "kind": "host_folder"}
`)
	out, err := runCmd(t, db, "load", "--input", input, "--type", "blog")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 2 fields")

	out, err = runCmd(t, db, "fields", "--type", "blog")
	require.NoError(t, err)
	fields := decodeAllLines[field.Field](t, out)
	require.Len(t, fields, 2)
}

func TestFieldLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fields.db")
	_, err := runCmd(t, db, "init-db")
	require.NoError(t, err)

	out, err := runCmd(t, db, "add-field", "--type", "news", "--name", "Title", "--var", "title", "--searchable")
	require.NoError(t, err)
	saved := decodeAllLines[field.Field](t, out)
	require.Len(t, saved, 1)
	f := saved[0]
	assert.Equal(t, "text1", f.DBColumn)
	assert.True(t, f.Indexed)

	out, err = runCmd(t, db, "add-field", "--id", f.Inode, "--type", "news", "--name", "Headline", "--var", "title")
	require.NoError(t, err)
	updated := decodeAllLines[field.Field](t, out)[0]
	assert.Equal(t, f.Inode, updated.Inode)
	assert.Equal(t, "text1", updated.DBColumn)
	assert.Equal(t, "Headline", updated.Name)

	out, err = runCmd(t, db, "set-var", "--field", f.Inode, "--key", "maxLength", "--value", "80")
	require.NoError(t, err)
	v := decodeAllLines[field.Variable](t, out)[0]
	assert.Equal(t, "80", v.Value)

	out, err = runCmd(t, db, "vars", "--field", f.Inode)
	require.NoError(t, err)
	assert.Len(t, decodeAllLines[field.Variable](t, out), 1)

	out, err = runCmd(t, db, "get-field", "--type", "news", "--var", "title")
	require.NoError(t, err)
	assert.Equal(t, f.Inode, decodeAllLines[field.Field](t, out)[0].Inode)

	_, err = runCmd(t, db, "delete-var", "--id", v.ID)
	require.NoError(t, err)
	_, err = runCmd(t, db, "delete-field", "--id", f.Inode)
	require.NoError(t, err)
	_, err = runCmd(t, db, "get-field", "--id", f.Inode)
	assert.ErrorIs(t, err, field.ErrNotFound)
	_, err = runCmd(t, db, "set-var", "--field", f.Inode, "--key", "maxLength", "--value", "80")
	assert.ErrorIs(t, err, field.ErrNotFound)
}

func TestColumnsFlag(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fields.db")
	_, err := runCmd(t, db, "--columns", "1", "add-field", "--type", "news", "--name", "A", "--var", "a")
	require.NoError(t, err)
	_, err = runCmd(t, db, "--columns", "1", "add-field", "--type", "news", "--name", "B", "--var", "b")
	assert.ErrorIs(t, err, field.ErrOverLimit)
	_, err = runCmd(t, db, "add-field", "--type", "news", "--name", "B", "--var", "b")
	assert.NoError(t, err)
}

func TestJoinValues(t *testing.T) {
	assert.Equal(t, "text, textarea", joinValues(field.Kinds()[:2]))
	assert.Equal(t, "", joinValues([]field.DataType{}))
}
