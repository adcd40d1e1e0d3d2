package reveal

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
)

func TestDefaultProvider(t *testing.T) {
	ctx := context.Background()
	p := Default()

	boot, err := p.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{AddrMEXC, AddrUnstETH}, boot.Addresses())
	for _, n := range boot.Nodes {
		assert.True(t, n.NotOpen, "bootstrap node %s should be expandable", n.Address)
	}

	two, err := p.StepSubgraph(ctx, StepSecond)
	require.NoError(t, err)
	assert.Equal(t, []string{AddrUnmarked, AddrStake}, two.Addresses())
	assert.Empty(t, two.Links)

	three, err := p.StepSubgraph(ctx, StepThird)
	require.NoError(t, err)
	assert.Equal(t, []string{AddrERC1967Proxy, AddrMEXC}, three.Addresses())
}

func TestStaticReturnsFreshCopies(t *testing.T) {
	ctx := context.Background()
	p := Default()

	first, _ := p.StepSubgraph(ctx, StepSecond)
	first.Nodes[0].AddressName = "mutated"
	first.Nodes[0].Networks[0] = "Tron"

	second, _ := p.StepSubgraph(ctx, StepSecond)
	assert.Equal(t, "", second.Nodes[0].AddressName)
	assert.Equal(t, "Ethereum", second.Nodes[0].Networks[0])
	assert.Equal(t, "Ethereum", StepTwoGraph.Nodes[0].Networks[0])
}

func TestStaticUnknownStep(t *testing.T) {
	ctx := context.Background()
	for _, step := range []int{0, 1, 4} {
		_, err := Default().StepSubgraph(ctx, step)
		assert.ErrorIs(t, err, ErrUnknownStep, "step %d", step)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidStep), "step %d", step)
	}

	partial := NewStatic(graph.Subgraph{}, map[int]graph.Subgraph{StepSecond: StepTwoGraph})
	_, err := partial.StepSubgraph(ctx, StepThird)
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	require.NoError(t, WriteDocument(ctx, Default(), &buf))

	p, err := ReadDocument(&buf)
	require.NoError(t, err)

	for step := StepSecond; step <= LastStep; step++ {
		want, _ := Default().StepSubgraph(ctx, step)
		got, err := p.StepSubgraph(ctx, step)
		require.NoError(t, err)
		assert.Equal(t, want.Addresses(), got.Addresses())
	}
	boot, err := p.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, InitialGraph.Links, boot.Links)
}

func TestReadDocumentFromToLinks(t *testing.T) {
	doc := `{
	  "bootstrap": {
	    "nodes": [{"address": "a", "not_open": true}, {"address": "b", "not_open": true}],
	    "links": [{"from": "a", "to": "b"}]
	  },
	  "steps": {"2": {"nodes": [{"address": "c"}], "links": []}}
	}`
	p, err := ReadDocument(strings.NewReader(doc))
	require.NoError(t, err)

	boot, _ := p.Bootstrap(context.Background())
	assert.Equal(t, []graph.Link{{Source: "a", Target: "b"}}, boot.Links)
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"Malformed", `{"bootstrap":`, errors.ErrCodeInvalidFormat},
		{"NonNumericStep", `{"bootstrap":{"nodes":[]},"steps":{"two":{"nodes":[]}}}`, errors.ErrCodeInvalidStep},
		{"OutOfRangeStep", `{"bootstrap":{"nodes":[]},"steps":{"9":{"nodes":[]}}}`, errors.ErrCodeInvalidStep},
		{"BadLink", `{"bootstrap":{"nodes":[],"links":[{"source":"a"}]}}`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(t.TempDir() + "/missing.json")
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
