// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every conversion matching q's tool filter to w as a
// YAML sequence, newest first. q.Limit is honoured when set.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, q Query) error {
	entries, err := s.exportEntries(ctx, q)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the same entries as ExportYAML as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, q Query) error {
	entries, err := s.exportEntries(ctx, q)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// exportEntry is a conversion as written by the exporters, with the
// duration spelled out for readers.
type exportEntry struct {
	ID         int64    `json:"id" yaml:"id"`
	Tool       string   `json:"tool" yaml:"tool"`
	Input      string   `json:"input" yaml:"input"`
	Outputs    []string `json:"outputs" yaml:"outputs"`
	Status     string   `json:"status" yaml:"status"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
	Duration   string   `json:"duration" yaml:"duration"`
	FinishedAt string   `json:"finished_at" yaml:"finished_at"`
}

func (s *Store) exportEntries(ctx context.Context, q Query) ([]exportEntry, error) {
	if q.Limit == 0 {
		q.Limit = -1
	}
	convs, err := s.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]exportEntry, len(convs))
	for i, c := range convs {
		entries[i] = exportEntry{
			ID:         c.ID,
			Tool:       c.Tool,
			Input:      c.Input,
			Outputs:    c.Outputs,
			Status:     string(c.Status),
			Error:      c.Error,
			Duration:   c.Duration.String(),
			FinishedAt: c.FinishedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}
	return entries, nil
}
