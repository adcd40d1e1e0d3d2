package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// ReadSubgraph decodes a JSON node-link document from r.
// Link endpoints may be strings or node objects under source/target or from/to.
func ReadSubgraph(r io.Reader) (Subgraph, error) {
	var w WireGraph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return Subgraph{}, fmt.Errorf("decode: %w", err)
	}
	return w.Subgraph()
}

// ReadSubgraphFile reads a JSON node-link document from path.
func ReadSubgraphFile(path string) (Subgraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Subgraph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSubgraph(f)
}

// UnmarshalSubgraph decodes a JSON node-link document from data.
func UnmarshalSubgraph(data []byte) (Subgraph, error) {
	return ReadSubgraph(bytes.NewReader(data))
}

// WriteGraph writes the current state as indented JSON to w.
func WriteGraph(s *State, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToWire(s.Snapshot())); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph converts the current state to JSON bytes.
func MarshalGraph(s *State) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes the current state to a JSON file.
func WriteGraphFile(s *State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(s, f)
}
