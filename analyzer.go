package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"

	"github.com/tomberek/fieldstore/field"
)

// analyzeFile opens path and infers field definitions from it
func analyzeFile(path string, opts AnalyzeOptions) ([]field.Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return AnalyzeJSON(f, opts)
}

// AnalyzeJSON samples line-delimited JSON content and proposes one field per
// top-level key, in key order
func AnalyzeJSON(r io.Reader, opts AnalyzeOptions) ([]field.Field, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var roots []map[string]interface{}
	for len(roots) < opts.Sample && sc.Scan() {
		var rec map[string]interface{}
		if json.Unmarshal(sc.Bytes(), &rec) == nil {
			roots = append(roots, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, errors.New("no rows for analysis")
	}

	stats := make(map[string]*valueStats)
	analyzeObject(roots, stats)

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]field.Field, 0, len(keys))
	for i, k := range keys {
		f := inferField(k, stats[k], len(roots), opts)
		f.SortOrder = i + 1
		fields = append(fields, f)
	}
	return fields, nil
}

// analyzeObject records the type of every top-level value of every row
func analyzeObject(rows []map[string]interface{}, stats map[string]*valueStats) {
	for _, row := range rows {
		for k, v := range row {
			st, ok := stats[k]
			if !ok {
				st = &valueStats{uniques: stringSet{}}
				stats[k] = st
			}
			switch v2 := v.(type) {
			case map[string]interface{}, []interface{}:
				st.nested++
			case string:
				st.strings++
				if looksLikeDate(v2) {
					st.dates++
				}
				if len(v2) > st.maxLen {
					st.maxLen = len(v2)
				}
				st.uniques[v2] = struct{}{}
			case float64:
				if v2 == float64(int64(v2)) {
					st.wholes++
				} else {
					st.decimals++
				}
			case bool:
				st.bools++
			}
		}
	}
}

// inferField maps observed value types to a field kind and data type
func inferField(key string, st *valueStats, numRows int, opts AnalyzeOptions) field.Field {
	kind, dataType := field.KindText, field.DataTypeText
	var values string
	listed := false

	numbers := st.wholes + st.decimals
	switch {
	case st.nested > 0:
		kind, dataType = field.KindKeyValue, field.DataTypeLongText
	case st.strings == 0 && numbers == 0 && st.bools > 0:
		kind, dataType = field.KindRadio, field.DataTypeBool
		values = "true|false"
	case st.strings == 0 && st.bools == 0 && st.decimals > 0:
		dataType = field.DataTypeFloat
	case st.strings == 0 && st.bools == 0 && st.wholes > 0:
		dataType = field.DataTypeInteger
	case st.strings > 0 && st.dates == st.strings && numbers+st.bools == 0:
		kind, dataType = field.KindDateTime, field.DataTypeDate
	case st.maxLen > opts.LongText:
		kind, dataType = field.KindTextarea, field.DataTypeLongText
	case opts.DetectSelects && numbers+st.bools == 0 && len(st.uniques) > 0 && len(st.uniques)*5 <= numRows:
		// few distinct values: offer them as options
		kind = field.KindSelect
		choices := make([]string, 0, len(st.uniques))
		for u := range st.uniques {
			choices = append(choices, u)
		}
		sort.Strings(choices)
		values = strings.Join(choices, "\r\n")
		listed = true
	}

	f := field.New(opts.ContentTypeID, displayName(key), field.VariableName(key), kind)
	f.DataType = dataType
	f.Values = values
	f.Listed = listed
	return f
}

func looksLikeDate(s string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// displayName turns a JSON key into a label: "first_name" is "First Name"
func displayName(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	if len(words) == 0 {
		return key
	}
	return strings.Join(words, " ")
}
