package brackets

// Kind identifies the bracket structure of a tournament or category.
type Kind string

const (
	KindSingleElimination Kind = "SingleElimination"
	KindDoubleElimination Kind = "DoubleElimination"
	KindRoundRobin        Kind = "RoundRobin"
	KindSwiss             Kind = "Swiss"
	KindGroupStage        Kind = "GroupStage"
)

// Well-known node ids of the double elimination finals.
const (
	GrandFinalNodeID      = "GF1"
	GrandFinalResetNodeID = "GF2"
)

// Settings carries per-bracket configuration, persisted as JSONB next to the
// graph. The points formula feeds the standings calculator.
type Settings struct {
	PointsWin        int  `json:"points_win"`
	PointsDraw       int  `json:"points_draw"`
	PointsLoss       int  `json:"points_loss"`
	DoubleRoundRobin bool `json:"double_round_robin,omitempty"`
}

// DefaultSettings returns the standard 3/1/0 points formula.
func DefaultSettings() Settings {
	return Settings{PointsWin: 3, PointsDraw: 1, PointsLoss: 0}
}

// Entrant is the immutable participant snapshot the generator reads. The
// slice order passed to a generator is the single source of truth for
// round-1 pairing.
type Entrant struct {
	ID   int
	Name string
}

// Node is one potential or scheduled match within a bracket. Position is
// 1-based within the round. NextID, when present, names the node the winner
// advances to; in elimination brackets that node is at round+1, position
// ceil(position/2) within the same bracket side. LoserNextID is only set on
// winners-bracket nodes of a double elimination and names the losers-bracket
// node the loser drops to. A node with both participant slots permanently
// empty is never created: byes collapse at generation time.
type Node struct {
	ID            string  `json:"node_id"`
	Round         int     `json:"round"`
	Position      int     `json:"position"`
	P1ID          *int    `json:"participant1_id,omitempty"`
	P1Name        *string `json:"participant1_name,omitempty"`
	P2ID          *int    `json:"participant2_id,omitempty"`
	P2Name        *string `json:"participant2_name,omitempty"`
	WinnerID      *int    `json:"winner_id,omitempty"`
	NextID        *string `json:"next_node_id,omitempty"`
	NextSlot      int     `json:"next_slot,omitempty"`
	LoserNextID   *string `json:"loser_next_node_id,omitempty"`
	LoserNextSlot int     `json:"loser_next_slot,omitempty"`
}

// HasParticipant reports whether at least one participant slot is filled.
func (n *Node) HasParticipant() bool {
	return n.P1ID != nil || n.P2ID != nil
}

// SetSlot fills the given participant slot (1 or 2).
func (n *Node) SetSlot(slot int, id int, name string) {
	switch slot {
	case 1:
		n.P1ID, n.P1Name = &id, &name
	case 2:
		n.P2ID, n.P2Name = &id, &name
	}
}

// DoubleEliminationGraph splits a double elimination bracket into its three
// sides. Winners and Losers rounds are numbered independently, each starting
// at 1. GrandFinalReset is part of the graph from generation but only becomes
// a playable match when the losers-bracket champion wins the first grand
// final.
type DoubleEliminationGraph struct {
	Winners         []*Node `json:"winners"`
	Losers          []*Node `json:"losers"`
	GrandFinal      *Node   `json:"grand_final"`
	GrandFinalReset *Node   `json:"grand_final_reset"`
}

// Graph is the tagged union of node collections a generator produces.
// Exactly one variant matching Kind is populated.
type Graph struct {
	Kind              Kind                    `json:"kind"`
	SingleElimination []*Node                 `json:"single_elimination,omitempty"`
	RoundRobin        []*Node                 `json:"round_robin,omitempty"`
	DoubleElimination *DoubleEliminationGraph `json:"double_elimination,omitempty"`
}

// Nodes returns every node of the graph in a deterministic order:
// by round then position, winners side before losers side, finals last.
func (g *Graph) Nodes() []*Node {
	switch g.Kind {
	case KindSingleElimination:
		return g.SingleElimination
	case KindRoundRobin:
		return g.RoundRobin
	case KindDoubleElimination:
		de := g.DoubleElimination
		if de == nil {
			return nil
		}
		nodes := make([]*Node, 0, len(de.Winners)+len(de.Losers)+2)
		nodes = append(nodes, de.Winners...)
		nodes = append(nodes, de.Losers...)
		if de.GrandFinal != nil {
			nodes = append(nodes, de.GrandFinal)
		}
		if de.GrandFinalReset != nil {
			nodes = append(nodes, de.GrandFinalReset)
		}
		return nodes
	}
	return nil
}

// Find returns the node with the given id, or nil.
func (g *Graph) Find(id string) *Node {
	for _, n := range g.Nodes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// IsLosersNode reports whether the id names a losers-bracket node.
func (g *Graph) IsLosersNode(id string) bool {
	if g.Kind != KindDoubleElimination || g.DoubleElimination == nil {
		return false
	}
	for _, n := range g.DoubleElimination.Losers {
		if n.ID == id {
			return true
		}
	}
	return false
}

// FinalNode returns the node whose completion can decide the bracket: the
// last-round node for single elimination, the first grand final for double
// elimination. Round robin brackets have no single deciding node.
func (g *Graph) FinalNode() *Node {
	switch g.Kind {
	case KindSingleElimination:
		var final *Node
		for _, n := range g.SingleElimination {
			if final == nil || n.Round > final.Round {
				final = n
			}
		}
		return final
	case KindDoubleElimination:
		if g.DoubleElimination != nil {
			return g.DoubleElimination.GrandFinal
		}
	}
	return nil
}
