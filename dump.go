package main

import (
	"io"

	json "github.com/goccy/go-json"
)

// writeJSONLines writes one JSON object per line
func writeJSONLines[T any](w io.Writer, objs ...T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, obj := range objs {
		if err := enc.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}
