package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/reveal"
)

func TestDocumentRoundTrip(t *testing.T) {
	for step, sub := range map[int]graph.Subgraph{
		reveal.StepBootstrap: reveal.InitialGraph,
		reveal.StepSecond:    reveal.StepTwoGraph,
		reveal.StepThird:     reveal.StepThreeGraph,
	} {
		doc := toDocument(step, sub)
		assert.Equal(t, step, doc.Step)

		data, err := bson.Marshal(doc)
		require.NoError(t, err)

		var decoded stepDocument
		require.NoError(t, bson.Unmarshal(data, &decoded))

		got := decoded.subgraph()
		require.Len(t, got.Nodes, len(sub.Nodes))
		for i, n := range sub.Nodes {
			assert.Equal(t, n.Address, got.Nodes[i].Address)
			assert.Equal(t, n.AddressName, got.Nodes[i].AddressName)
			assert.Equal(t, n.NotOpen, got.Nodes[i].NotOpen)
			assert.Equal(t, n.Networks, got.Nodes[i].Networks)
		}
		assert.Equal(t, sub.Links, got.Links)
	}
}

func TestDocumentUsesSnakeCaseKeys(t *testing.T) {
	data, err := bson.Marshal(toDocument(2, reveal.StepTwoGraph))
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	nodes := raw["nodes"].(bson.A)
	first := nodes[0].(bson.M)
	assert.Contains(t, first, "address_name")
	assert.Contains(t, first, "not_open")
}

func TestConnectRequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestStepSubgraphRejectsUnknownStep(t *testing.T) {
	p := New(nil, 0)
	_, err := p.StepSubgraph(context.Background(), 7)
	assert.ErrorIs(t, err, reveal.ErrUnknownStep)
}
