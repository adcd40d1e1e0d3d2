// Package mongo serves reveal step subgraphs from a MongoDB collection.
//
// Each step is one document keyed by its step number; step 1 holds the
// bootstrap graph:
//
//	{"step": 2, "nodes": [{"address": "0x6a2b…", ...}], "links": []}
//
// Use [Provider.Seed] to copy another provider's steps into the collection.
package mongo

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/reveal"
)

// Defaults for [Config].
const (
	DefaultDatabase   = "addrscope"
	DefaultCollection = "reveal_steps"
	DefaultTimeout    = 5 * time.Second
)

// Config describes where the step documents live.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Provider implements reveal.Provider over a MongoDB collection.
type Provider struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}

	p := New(client.Database(cfg.Database).Collection(cfg.Collection), cfg.Timeout)
	p.client = client
	return p, nil
}

// New wraps an existing collection. The caller keeps ownership of the client.
func New(coll *mongo.Collection, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{coll: coll, timeout: timeout}
}

// Bootstrap returns the step-1 document.
func (p *Provider) Bootstrap(ctx context.Context) (graph.Subgraph, error) {
	return p.load(ctx, reveal.StepBootstrap)
}

// StepSubgraph returns the document for step.
func (p *Provider) StepSubgraph(ctx context.Context, step int) (graph.Subgraph, error) {
	if err := errors.ValidateStep(step); err != nil {
		return graph.Subgraph{}, fmt.Errorf("%w: %w", reveal.ErrUnknownStep, err)
	}
	return p.load(ctx, step)
}

// Put upserts the subgraph stored for step.
func (p *Provider) Put(ctx context.Context, step int, sub graph.Subgraph) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	doc := toDocument(step, sub)
	_, err := p.coll.ReplaceOne(ctx, bson.D{{Key: "step", Value: step}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "store step %d", step)
	}
	return nil
}

// Seed copies the bootstrap graph and every reveal step of src.
func (p *Provider) Seed(ctx context.Context, src reveal.Provider) error {
	bootstrap, err := src.Bootstrap(ctx)
	if err != nil {
		return err
	}
	if err := p.Put(ctx, reveal.StepBootstrap, bootstrap); err != nil {
		return err
	}
	for step := reveal.StepSecond; step <= reveal.LastStep; step++ {
		sub, err := src.StepSubgraph(ctx, step)
		if err != nil {
			return err
		}
		if err := p.Put(ctx, step, sub); err != nil {
			return err
		}
	}
	return nil
}

// Close disconnects the client if the provider created it.
func (p *Provider) Close(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.Disconnect(ctx)
}

func (p *Provider) load(ctx context.Context, step int) (graph.Subgraph, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var doc stepDocument
	err := p.coll.FindOne(ctx, bson.D{{Key: "step", Value: step}}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return graph.Subgraph{}, errors.Wrap(errors.ErrCodeInvalidStep, reveal.ErrUnknownStep, "step %d not stored", step)
	}
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return graph.Subgraph{}, errors.Wrap(errors.ErrCodeTimeout, err, "load step %d", step)
		}
		return graph.Subgraph{}, errors.Wrap(errors.ErrCodeNetwork, err, "load step %d", step)
	}
	return doc.subgraph(), nil
}

var _ reveal.Provider = (*Provider)(nil)
