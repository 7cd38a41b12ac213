package types

import (
	"sort"

	"github.com/cbodonnell/tycoon/pkg/board"
)

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cash      int    `json:"cash"`
	Position  int    `json:"position"`
	InJail    bool   `json:"inJail"`
	JailRolls int    `json:"jailRolls"`
	Bankrupt  bool   `json:"bankrupt"`
	Connected bool   `json:"connected"`
	// Properties is the sorted set of owned space indexes
	Properties []int `json:"properties"`
	// JailCards holds the deck each kept get-out-of-jail card came from
	JailCards []board.DeckKind `json:"jailCards,omitempty"`
}

func NewPlayer(id, name string, cash int) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		Cash:       cash,
		Connected:  true,
		Properties: []int{},
	}
}

func (p *Player) Clone() *Player {
	c := *p
	c.Properties = append([]int{}, p.Properties...)
	c.JailCards = append([]board.DeckKind(nil), p.JailCards...)
	return &c
}

// Owns reports whether space is in the player's property set.
func (p *Player) Owns(space int) bool {
	i := sort.SearchInts(p.Properties, space)
	return i < len(p.Properties) && p.Properties[i] == space
}

func (p *Player) addProperty(space int) {
	if p.Owns(space) {
		return
	}
	p.Properties = append(p.Properties, space)
	sort.Ints(p.Properties)
}

func (p *Player) removeProperty(space int) {
	i := sort.SearchInts(p.Properties, space)
	if i < len(p.Properties) && p.Properties[i] == space {
		p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
	}
}
