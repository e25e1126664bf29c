package main

import (
	"bufio"
	"bytes"
	"context"
	"io"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomberek/fieldstore/field"
	"github.com/tomberek/fieldstore/fieldstore"
)

// LoadFields saves every field definition read from line-delimited JSON.
// Lines that do not decode or do not save are logged and skipped; each field
// is saved in its own transaction. typeID, when set, overrides the content
// type of every line.
func LoadFields(ctx context.Context, s *fieldstore.Store, r io.Reader, typeID string, log zerolog.Logger) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	loaded := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var f field.Field
		if err := json.Unmarshal(line, &f); err != nil {
			log.Warn().Err(err).Int("line", lineNum).Msg("skip JSON line")
			continue
		}
		if typeID != "" {
			f.ContentTypeID = typeID
		}
		if f.DataType == "" {
			f.DataType = f.Kind.DefaultDataType()
		}
		if _, err := s.Save(ctx, f); err != nil {
			log.Warn().Err(err).Int("line", lineNum).Str("variable", f.Variable).Msg("load field")
			continue
		}
		loaded++
	}
	return loaded, scanner.Err()
}

// SaveFields saves fields one by one, logging the ones that fail, and
// returns how many were saved
func SaveFields(ctx context.Context, s *fieldstore.Store, fields []field.Field, log zerolog.Logger) int {
	saved := 0
	for _, f := range fields {
		if _, err := s.Save(ctx, f); err != nil {
			log.Warn().Err(err).Str("variable", f.Variable).Msg("import field")
			continue
		}
		saved++
	}
	return saved
}
