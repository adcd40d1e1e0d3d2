package mongo

import "github.com/matzehuels/addrscope/pkg/graph"

type stepDocument struct {
	Step  int            `bson:"step"`
	Nodes []nodeDocument `bson:"nodes"`
	Links []linkDocument `bson:"links"`
}

type nodeDocument struct {
	Address     string   `bson:"address"`
	Type        string   `bson:"type"`
	AddressName string   `bson:"address_name"`
	RiskScore   float64  `bson:"risk_score"`
	Creator     bool     `bson:"creator"`
	CreatorAddr string   `bson:"creator_addr"`
	UpdatedAt   string   `bson:"updated_at"`
	CreatedAt   string   `bson:"created_at"`
	Tokens      []any    `bson:"tokens"`
	Balance     float64  `bson:"balance"`
	Networks    []string `bson:"networks"`
	NotOpen     bool     `bson:"not_open"`
}

type linkDocument struct {
	Source string `bson:"source"`
	Target string `bson:"target"`
	Label  string `bson:"label"`
}

func toDocument(step int, sub graph.Subgraph) stepDocument {
	doc := stepDocument{
		Step:  step,
		Nodes: make([]nodeDocument, len(sub.Nodes)),
		Links: make([]linkDocument, len(sub.Links)),
	}
	for i, n := range sub.Nodes {
		doc.Nodes[i] = nodeDocument{
			Address:     n.Address,
			Type:        n.Type,
			AddressName: n.AddressName,
			RiskScore:   n.RiskScore,
			Creator:     n.Creator,
			CreatorAddr: n.CreatorAddr,
			UpdatedAt:   n.UpdatedAt,
			CreatedAt:   n.CreatedAt,
			Tokens:      n.Tokens,
			Balance:     n.Balance,
			Networks:    n.Networks,
			NotOpen:     n.NotOpen,
		}
	}
	for i, l := range sub.Links {
		doc.Links[i] = linkDocument{Source: l.Source, Target: l.Target, Label: l.Label}
	}
	return doc
}

// subgraph converts the document back. Layout fields are never stored.
func (d stepDocument) subgraph() graph.Subgraph {
	sub := graph.Subgraph{
		Nodes: make([]graph.Node, len(d.Nodes)),
		Links: make([]graph.Link, len(d.Links)),
	}
	for i, n := range d.Nodes {
		sub.Nodes[i] = graph.Node{
			Address:     n.Address,
			Type:        n.Type,
			AddressName: n.AddressName,
			RiskScore:   n.RiskScore,
			Creator:     n.Creator,
			CreatorAddr: n.CreatorAddr,
			UpdatedAt:   n.UpdatedAt,
			CreatedAt:   n.CreatedAt,
			Tokens:      n.Tokens,
			Balance:     n.Balance,
			Networks:    n.Networks,
			NotOpen:     n.NotOpen,
		}
	}
	for i, l := range d.Links {
		sub.Links[i] = graph.Link{Source: l.Source, Target: l.Target, Label: l.Label}
	}
	return sub
}
