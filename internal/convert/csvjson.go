// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNotObjectArray = errors.New("JSON must be an array of objects")

// CSVToJSON writes the rows of a CSV file as a JSON array of objects keyed
// by the header row, indented by two spaces.
func (c *Converter) CSVToJSON(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("converting CSV to JSON: %w", failed(err))
	}
	cr := csv.NewReader(bytes.NewReader(bytes.TrimSpace(data)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("converting CSV to JSON: %w", failed(err))
	}

	rows := make([]orderedObject, 0, len(records))
	if len(records) > 0 {
		header := trimAll(records[0])
		for _, rec := range records[1:] {
			rec = trimAll(rec)
			var obj orderedObject
			for i, key := range header {
				v := ""
				if i < len(rec) {
					v = rec[i]
				}
				obj.set(key, v)
			}
			rows = append(rows, obj)
		}
	}

	encoded, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("converting CSV to JSON: %w", failed(err))
	}
	err = writeFile(out, func(w io.Writer) error {
		_, err := w.Write(encoded)
		return err
	})
	if err != nil {
		return fmt.Errorf("converting CSV to JSON: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

// JSONToCSV writes a JSON array of objects as CSV. The header is the key
// set of the first object in document order.
func (c *Converter) JSONToCSV(ctx context.Context, in, out string) (err error) {
	defer recoverTo(&err)
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("converting JSON to CSV: %w", failed(err))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return fmt.Errorf("converting JSON to CSV: %w", failed(errNotObjectArray))
	}
	header, err := objectKeys(items[0])
	if err != nil {
		return fmt.Errorf("converting JSON to CSV: %w", failed(err))
	}

	err = writeFile(out, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, raw := range items {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
				return errNotObjectArray
			}
			rec := make([]string, len(header))
			for i, key := range header {
				rec[i] = csvValue(obj[key])
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("converting JSON to CSV: %w", failed(err))
	}
	fmt.Fprintf(c.opts.Stdout, "Successfully converted %s to %s\n", in, out)
	return nil
}

// orderedObject is a JSON object that keeps its keys in insertion order.
// Setting an existing key replaces its value in place.
type orderedObject struct {
	keys   []string
	values map[string]string
}

func (o *orderedObject) set(key, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// MarshalJSON implements json.Marshaler.
func (o orderedObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, errNotObjectArray
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// csvValue renders a JSON value as a CSV field. Missing, null, false, zero,
// and empty values become empty fields.
func csvValue(raw json.RawMessage) string {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if len(raw) == 0 || dec.Decode(&v) != nil {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	default:
		return string(raw)
	}
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
