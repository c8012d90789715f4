package doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dashkit/todo/internal/storage"
)

// Source is the raw stored task list that checks inspect.
type Source struct {
	// Key is the storage key the list lives under.
	Key string
	// Data is the stored value. Nil when the key has never been written.
	Data []byte
	// Err is the read error, if any. storage.ErrNotFound is not an error here.
	Err error
	// Verifier checks stored integrity. Nil for backends without checksums.
	Verifier storage.Verifier
}

// Record is one element of the stored JSON array.
type Record struct {
	// Position is the 1-based position of the record in the array.
	Position int
	// Raw is the element as stored.
	Raw json.RawMessage
	// Fields is the element decoded as an object, or nil if it is not one.
	Fields map[string]any
}

type sourceKeyType struct{}

// SourceKey is the context key carrying the *Source checks read.
var SourceKey = sourceKeyType{}

// WithSource returns a context carrying src for the checks.
func WithSource(ctx context.Context, src *Source) context.Context {
	return context.WithValue(ctx, SourceKey, src)
}

// ReadSource reads key from store. Stores that can return values which fail
// verification are read that way so the remaining checks still see the data.
func ReadSource(ctx context.Context, store storage.Store, key string) *Source {
	src := &Source{Key: key}
	if v, ok := store.(storage.Verifier); ok {
		src.Verifier = v
	}

	var data []byte
	var err error
	if raw, ok := store.(storage.RawReader); ok {
		data, err = raw.Raw(ctx, key)
	} else {
		data, err = store.Get(ctx, key)
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		src.Err = err
	default:
		src.Data = data
	}
	return src
}

// ScanRecords splits a stored list into its elements. Blank data is an empty
// list. It returns an error when the data is not a JSON array.
func ScanRecords(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("task list is not a JSON array: %w", err)
	}

	records := make([]Record, len(elems))
	for i, raw := range elems {
		rec := Record{Position: i + 1, Raw: raw}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err == nil {
			rec.Fields = obj
		}
		records[i] = rec
	}
	return records, nil
}

func getSource(ctx context.Context) *Source {
	if src, ok := ctx.Value(SourceKey).(*Source); ok && src != nil {
		return src
	}
	return &Source{}
}

// getRecords returns the scanned records for checks that inspect individual
// tasks. When the list cannot be read or scanned it returns ok false and the
// check passes, since the read and syntax checks report those failures.
func getRecords(ctx context.Context) ([]Record, bool) {
	src := getSource(ctx)
	if src.Err != nil {
		return nil, false
	}
	records, err := ScanRecords(src.Data)
	if err != nil {
		return nil, false
	}
	return records, true
}

func passed(name string) []CheckResult {
	return []CheckResult{{Name: name, Passed: true}}
}

// stringField returns the first of keys present in fields as a string.
func stringField(fields map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			s, isString := v.(string)
			return s, isString
		}
	}
	return "", false
}
