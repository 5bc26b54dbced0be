package kuhn5

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/kuhn5/cards"
	"github.com/timpalpant/kuhn5/gamestate"
)

// SimplexTolerance is the slack allowed when checking that an explicit
// pair of complementary probabilities sums to one.
const SimplexTolerance = 1e-9

// Strategy is one player's behavior strategy. For each card and each
// decision node the player owns, it holds the probability of taking the
// aggressive action (Bet or Call). The passive action (Check or Fold)
// always has the complementary probability, so it is never stored.
type Strategy struct {
	player gamestate.Player
	// probs[card.Index()][node] is the probability of the aggressive action.
	// Entries for nodes owned by the opponent are always zero.
	probs [][gamestate.NumDecisionNodes]float64
}

// Cell addresses a single probability within a Strategy.
type Cell struct {
	Card cards.Card
	Node gamestate.DecisionNode
}

func (c Cell) String() string {
	return fmt.Sprintf("%v@%v", c.Node, c.Card)
}

// Pair is an explicit distribution over the two actions at a decision node.
type Pair struct {
	Aggressive float64
	Passive    float64
}

// NewStrategy returns the strategy for an n-card deck in which the given
// player always takes the passive action.
func NewStrategy(player gamestate.Player, n int) *Strategy {
	if n < 0 {
		n = 0
	}

	return &Strategy{
		player: player,
		probs:  make([][gamestate.NumDecisionNodes]float64, n),
	}
}

// NewStrategyFromPairs builds a strategy from explicit action pairs,
// one row per card in ascending rank. Pairs at nodes the player does not
// own are ignored. Each owned pair must lie in [0, 1] and sum to one.
func NewStrategyFromPairs(player gamestate.Player, rows [][gamestate.NumDecisionNodes]Pair) (*Strategy, error) {
	s := NewStrategy(player, len(rows))
	for i, row := range rows {
		card := cards.Card(i + 1)
		for _, node := range gamestate.NodesOwnedBy(player) {
			pair := row[node]
			if !isProbability(pair.Aggressive) || !isProbability(pair.Passive) {
				return nil, errors.Wrapf(ErrInvalidStrategy,
					"%v %v: probabilities (%v, %v) outside [0, 1]",
					player, Cell{card, node}, pair.Aggressive, pair.Passive)
			}

			if sum := pair.Aggressive + pair.Passive; math.Abs(sum-1) > SimplexTolerance {
				return nil, errors.Wrapf(ErrInvalidStrategy,
					"%v %v: %v and %v sum to %v",
					player, Cell{card, node}, node.Aggressive(), node.Passive(), sum)
			}

			s.set(card, node, pair.Aggressive)
		}
	}

	return s, nil
}

// Player returns the player this strategy belongs to.
func (s *Strategy) Player() gamestate.Player {
	return s.player
}

// NumCards returns the size of the deck this strategy was built for.
func (s *Strategy) NumCards() int {
	return len(s.probs)
}

// Nodes returns the decision nodes this strategy covers.
func (s *Strategy) Nodes() []gamestate.DecisionNode {
	return gamestate.NodesOwnedBy(s.player)
}

// Cells returns every cell of the strategy: cards ascending, then nodes
// in canonical order.
func (s *Strategy) Cells() []Cell {
	nodes := s.Nodes()
	result := make([]Cell, 0, s.NumCards()*len(nodes))
	for _, card := range cards.Deck(s.NumCards()) {
		for _, node := range nodes {
			result = append(result, Cell{card, node})
		}
	}

	return result
}

// Aggressive returns the probability of betting or calling with the given
// card at the given node.
func (s *Strategy) Aggressive(card cards.Card, node gamestate.DecisionNode) float64 {
	return s.probs[card.Index()][node]
}

// Passive returns the probability of checking or folding with the given
// card at the given node.
func (s *Strategy) Passive(card cards.Card, node gamestate.DecisionNode) float64 {
	return 1 - s.Aggressive(card, node)
}

// Probability returns the probability of taking the given action with
// the given card at the given node. It is zero for actions that are not
// available at the node.
func (s *Strategy) Probability(card cards.Card, node gamestate.DecisionNode, action gamestate.Action) float64 {
	switch action {
	case node.Aggressive():
		return s.Aggressive(card, node)
	case node.Passive():
		return s.Passive(card, node)
	default:
		return 0
	}
}

// SetAggressive sets the probability of betting or calling with the
// given card at the given node.
func (s *Strategy) SetAggressive(card cards.Card, node gamestate.DecisionNode, p float64) error {
	if card < 1 || int(card) > s.NumCards() {
		return errors.Wrapf(ErrInvalidStrategy, "card %v not in a %d-card deck", card, s.NumCards())
	}

	if node.Owner() != s.player {
		return errors.Wrapf(ErrInvalidStrategy, "%v does not act at %v", s.player, node)
	}

	if !isProbability(p) {
		return errors.Wrapf(ErrInvalidStrategy, "%v %v: probability %v outside [0, 1]",
			s.player, Cell{card, node}, p)
	}

	s.set(card, node, p)
	return nil
}

func (s *Strategy) set(card cards.Card, node gamestate.DecisionNode, p float64) {
	s.probs[card.Index()][node] = p
}

// Get returns the aggressive probability at the given cell.
func (s *Strategy) Get(c Cell) float64 {
	return s.Aggressive(c.Card, c.Node)
}

// Validate checks that every stored probability lies in [0, 1] and that
// nothing is stored for nodes the player does not own.
func (s *Strategy) Validate() error {
	for i, row := range s.probs {
		card := cards.Card(i + 1)
		for _, node := range gamestate.AllDecisionNodes() {
			p := row[node]
			if node.Owner() != s.player {
				if p != 0 {
					return errors.Wrapf(ErrInvalidStrategy, "%v has probability %v at %v owned by %v",
						s.player, p, Cell{card, node}, node.Owner())
				}
				continue
			}

			if !isProbability(p) {
				return errors.Wrapf(ErrInvalidStrategy, "%v %v: probability %v outside [0, 1]",
					s.player, Cell{card, node}, p)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the strategy.
func (s *Strategy) Clone() *Strategy {
	probs := make([][gamestate.NumDecisionNodes]float64, len(s.probs))
	copy(probs, s.probs)
	return &Strategy{player: s.player, probs: probs}
}

// Equal returns true if both strategies belong to the same player and hold
// bit-identical probabilities.
func (s *Strategy) Equal(other *Strategy) bool {
	if s.player != other.player || len(s.probs) != len(other.probs) {
		return false
	}

	for i := range s.probs {
		if s.probs[i] != other.probs[i] {
			return false
		}
	}

	return true
}

// MaxAbsDiff returns the largest absolute difference between corresponding
// probabilities of two strategies for the same player and deck.
func (s *Strategy) MaxAbsDiff(other *Strategy) float64 {
	if s.player != other.player || len(s.probs) != len(other.probs) {
		return math.Inf(1)
	}

	result := 0.0
	for i := range s.probs {
		for node := range s.probs[i] {
			result = math.Max(result, math.Abs(s.probs[i][node]-other.probs[i][node]))
		}
	}

	return result
}

func (s *Strategy) String() string {
	var sb strings.Builder
	sb.WriteString(s.player.String())
	sb.WriteString("{")
	for i, cell := range s.Cells() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %.4f", cell, s.Get(cell))
	}
	sb.WriteString("}")
	return sb.String()
}

// MarshalBinary implements encoding.BinaryMarshaler.
// The layout is the player (1 byte), the number of cards (2 bytes) and then
// the IEEE 754 bits of every probability, card-major.
func (s *Strategy) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 3, 3+8*gamestate.NumDecisionNodes*len(s.probs))
	buf[0] = byte(s.player)
	binary.LittleEndian.PutUint16(buf[1:], uint16(len(s.probs)))
	var word [8]byte
	for _, row := range s.probs {
		for _, p := range row {
			binary.LittleEndian.PutUint64(word[:], math.Float64bits(p))
			buf = append(buf, word[:]...)
		}
	}

	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Strategy) UnmarshalBinary(buf []byte) error {
	if len(buf) < 3 {
		return errors.Errorf("strategy buffer too short: %d bytes", len(buf))
	}

	player := gamestate.Player(buf[0])
	if player != gamestate.Player1 && player != gamestate.Player2 {
		return errors.Wrapf(ErrInvalidStrategy, "unknown player %d", buf[0])
	}

	n := int(binary.LittleEndian.Uint16(buf[1:]))
	buf = buf[3:]
	if len(buf) != 8*gamestate.NumDecisionNodes*n {
		return errors.Errorf("strategy buffer has %d probability bytes, expected %d",
			len(buf), 8*gamestate.NumDecisionNodes*n)
	}

	result := NewStrategy(player, n)
	for i := range result.probs {
		for node := range result.probs[i] {
			result.probs[i][node] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
			buf = buf[8:]
		}
	}

	if err := result.Validate(); err != nil {
		return err
	}

	*s = *result
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
