package layout

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
)

// Frame is the positional output of one tick.
type Frame struct {
	Tick    int            `json:"tick"`
	Alpha   float64        `json:"alpha"`
	Settled bool           `json:"settled"`
	Nodes   []NodePosition `json:"nodes"`
	Links   []Segment      `json:"links"`
}

// NodePosition is a node's position plus the attributes a renderer styles by.
type NodePosition struct {
	Address string  `json:"address"`
	Label   string  `json:"label"`
	Type    string  `json:"type,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Pinned  bool    `json:"pinned,omitempty"`
	NotOpen bool    `json:"not_open"`
}

// Segment is a link drawn as a straight line between its endpoints.
type Segment struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Label  string  `json:"label"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	MidX   float64 `json:"mid_x"`
	MidY   float64 `json:"mid_y"`
}

// Midpoint returns the average of the segment's endpoints.
func (s Segment) Midpoint() (x, y float64) { return s.MidX, s.MidY }

// NewSegment builds the segment between two positioned nodes.
func NewSegment(l graph.Link, src, tgt *graph.Node) Segment {
	return Segment{
		Source: l.Source,
		Target: l.Target,
		Label:  l.Label,
		X1:     src.X,
		Y1:     src.Y,
		X2:     tgt.X,
		Y2:     tgt.Y,
		MidX:   (src.X + tgt.X) / 2,
		MidY:   (src.Y + tgt.Y) / 2,
	}
}

// Frame captures the current positions. Links with an endpoint missing from
// the source are left out.
func (s *Simulation) Frame() Frame {
	nodes := s.src.Nodes()
	f := Frame{
		Tick:    s.ticks,
		Alpha:   s.alpha,
		Settled: s.settled,
		Nodes:   make([]NodePosition, 0, len(nodes)),
	}
	for _, n := range nodes {
		f.Nodes = append(f.Nodes, NodePosition{
			Address: n.Address,
			Label:   n.DisplayLabel(),
			Type:    n.Type,
			X:       n.X,
			Y:       n.Y,
			Pinned:  n.Pinned(),
			NotOpen: n.NotOpen,
		})
	}

	links := s.src.Links()
	f.Links = make([]Segment, 0, len(links))
	for _, l := range links {
		src, tgt := s.src.Node(l.Source), s.src.Node(l.Target)
		if src == nil || tgt == nil {
			continue
		}
		f.Links = append(f.Links, NewSegment(l, src, tgt))
	}
	return f
}

// Bounds returns the bounding box of the frame's nodes.
func (f Frame) Bounds() (minX, minY, maxX, maxY float64) {
	for i, n := range f.Nodes {
		if i == 0 {
			minX, maxX, minY, maxY = n.X, n.X, n.Y, n.Y
			continue
		}
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
		minY = min(minY, n.Y)
		maxY = max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}

// ReadFrame decodes a frame written by [WriteFrame].
func ReadFrame(r io.Reader) (Frame, error) {
	var f Frame
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Frame{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode frame")
	}
	return f, nil
}

// WriteFrame encodes f as indented JSON.
func WriteFrame(w io.Writer, f Frame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
