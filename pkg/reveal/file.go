package reveal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
)

// Document is the on-disk layout read by [LoadFile]:
//
//	{
//	  "bootstrap": {"nodes": [...], "links": [...]},
//	  "steps": {"2": {"nodes": [...]}, "3": {"nodes": [...]}}
//	}
type Document struct {
	Bootstrap graph.WireGraph            `json:"bootstrap"`
	Steps     map[string]graph.WireGraph `json:"steps"`
}

// ReadDocument decodes a step document and returns a provider over it.
func ReadDocument(r io.Reader) (*Static, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode step document")
	}

	bootstrap, err := doc.Bootstrap.Subgraph()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "bootstrap graph")
	}

	steps := make(map[int]graph.Subgraph, len(doc.Steps))
	for key, wg := range doc.Steps {
		step, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidStep, "step key %q is not a number", key)
		}
		if err := errors.ValidateStep(step); err != nil {
			return nil, err
		}
		sub, err := wg.Subgraph()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "step %d", step)
		}
		steps[step] = sub
	}
	return NewStatic(bootstrap, steps), nil
}

// LoadFile reads a step document from path.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "step document %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// WriteDocument encodes the provider's data as a step document.
func WriteDocument(ctx context.Context, p Provider, w io.Writer) error {
	bootstrap, err := p.Bootstrap(ctx)
	if err != nil {
		return err
	}
	doc := Document{
		Bootstrap: graph.ToWire(bootstrap),
		Steps:     make(map[string]graph.WireGraph),
	}
	for step := StepSecond; step <= LastStep; step++ {
		sub, err := p.StepSubgraph(ctx, step)
		if err != nil {
			return err
		}
		doc.Steps[strconv.Itoa(step)] = graph.ToWire(sub)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
