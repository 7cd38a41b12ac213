package types

// PropertyState is the mutable part of an ownable space.
type PropertyState struct {
	Space int `json:"space"`
	// Owner is the owning player id; empty means the bank
	Owner     string `json:"owner,omitempty"`
	Level     int    `json:"level"`
	Mortgaged bool   `json:"mortgaged"`
}

// TransferProperty moves ownership of a space, keeping the player property
// sets in step with the property records. An empty to returns it to the bank.
func (g *GameState) TransferProperty(space int, to string) {
	prop, ok := g.Properties[space]
	if !ok {
		return
	}
	if prev := g.Player(prop.Owner); prev != nil {
		prev.removeProperty(space)
	}
	prop.Owner = to
	if next := g.Player(to); next != nil {
		next.addProperty(space)
	}
}
