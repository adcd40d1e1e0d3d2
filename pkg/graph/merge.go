package graph

// MergeResult reports what a [State.Merge] call appended.
type MergeResult struct {
	// AddedNodes lists the addresses of nodes that were new to the state.
	AddedNodes []string
	// AddedLinks lists the links that were appended, synthesized or not.
	AddedLinks []Link
	// Synthesized is true when the subgraph had no links and links were
	// generated from the triggering node instead.
	Synthesized bool
	// Dangling lists links dropped because an endpoint is not in the state.
	Dangling []Link
}

// Changed reports whether the merge appended anything.
func (r MergeResult) Changed() bool {
	return len(r.AddedNodes) > 0 || len(r.AddedLinks) > 0
}

// Merge reconciles sub into the state in place.
//
// Nodes are merged first: a node whose address is already present is skipped
// entirely (the existing node wins, no field-level merge); new nodes are
// copied in. Links follow:
//
//   - If sub carries links, each one is appended unless its ordered
//     (source, target) pair already exists.
//   - If sub carries no links and trigger is non-nil, a link
//     trigger→node labelled [DefaultLinkLabel] is synthesized for every node
//     of sub other than the trigger itself, with the same pair check.
//
// Links whose endpoints are absent after the node phase are not appended and
// are reported in [MergeResult.Dangling]. Merging the same subgraph twice is
// a no-op the second time. trigger is never modified.
func (s *State) Merge(sub Subgraph, trigger *Node) MergeResult {
	var res MergeResult

	for _, n := range sub.Nodes {
		if _, exists := s.index[n.Address]; exists {
			continue
		}
		s.addNode(n.Clone())
		res.AddedNodes = append(res.AddedNodes, n.Address)
	}

	if len(sub.Links) > 0 {
		for _, l := range sub.Links {
			s.mergeLink(l, &res)
		}
		return res
	}

	if trigger == nil {
		return res
	}
	res.Synthesized = true
	for _, n := range sub.Nodes {
		if n.Address == trigger.Address {
			continue
		}
		s.mergeLink(Link{Source: trigger.Address, Target: n.Address, Label: DefaultLinkLabel}, &res)
	}
	return res
}

func (s *State) mergeLink(l Link, res *MergeResult) {
	if _, exists := s.linkIndex[l.Key()]; exists {
		return
	}
	if s.index[l.Source] == nil || s.index[l.Target] == nil {
		res.Dangling = append(res.Dangling, l)
		return
	}
	s.addLink(l)
	res.AddedLinks = append(res.AddedLinks, l)
}
