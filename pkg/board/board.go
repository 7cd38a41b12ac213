package board

import "fmt"

// Size is the number of spaces on the board.
const Size = 40

// SpaceKind identifies what happens when a player lands on a space.
type SpaceKind string

const (
	SpaceKindGo             SpaceKind = "GO"
	SpaceKindProperty       SpaceKind = "PROPERTY"
	SpaceKindRailroad       SpaceKind = "RAILROAD"
	SpaceKindUtility        SpaceKind = "UTILITY"
	SpaceKindTax            SpaceKind = "TAX"
	SpaceKindChance         SpaceKind = "CHANCE"
	SpaceKindCommunityChest SpaceKind = "COMMUNITY_CHEST"
	SpaceKindJail           SpaceKind = "JAIL"
	SpaceKindFreeParking    SpaceKind = "FREE_PARKING"
	SpaceKindGoToJail       SpaceKind = "GO_TO_JAIL"
)

// Group is a colour group id. Railroads and utilities have their own group.
type Group string

const (
	GroupBrown     Group = "BROWN"
	GroupLightBlue Group = "LIGHT_BLUE"
	GroupPink      Group = "PINK"
	GroupOrange    Group = "ORANGE"
	GroupRed       Group = "RED"
	GroupYellow    Group = "YELLOW"
	GroupGreen     Group = "GREEN"
	GroupDarkBlue  Group = "DARK_BLUE"
	GroupRailroad  Group = "RAILROAD"
	GroupUtility   Group = "UTILITY"
)

// MaxLevel is the highest improvement level; level 5 is a hotel.
const MaxLevel = 5

type Space struct {
	Index int       `json:"index"`
	Name  string    `json:"name"`
	Kind  SpaceKind `json:"kind"`
	Group Group     `json:"group,omitempty"`
	Price int       `json:"price,omitempty"`
	// Rent is indexed by improvement level for streets (0..5)
	// and by number of railroads owned minus one for railroads.
	Rent      []int `json:"rent,omitempty"`
	HouseCost int   `json:"houseCost,omitempty"`
	// Tax is the amount charged when landing on a tax space.
	Tax int `json:"tax,omitempty"`
}

// Ownable reports whether the space can be bought.
func (s Space) Ownable() bool {
	return s.Kind == SpaceKindProperty || s.Kind == SpaceKindRailroad || s.Kind == SpaceKindUtility
}

// Buildable reports whether houses can be built on the space.
func (s Space) Buildable() bool {
	return s.Kind == SpaceKindProperty
}

// MortgageValue is half of the list price.
func (s Space) MortgageValue() int {
	return s.Price / 2
}

// UnmortgageCost is the mortgage value plus ten percent interest.
func (s Space) UnmortgageCost() int {
	return s.MortgageValue() * 11 / 10
}

// Board is the static, read-only description of the playing board.
type Board struct {
	spaces [Size]Space
	groups map[Group][]int
}

// New builds a board from a list of spaces. Every index 0..Size-1
// must be described exactly once.
func New(spaces []Space) (*Board, error) {
	if len(spaces) != Size {
		return nil, fmt.Errorf("board must have %d spaces, got %d", Size, len(spaces))
	}
	b := &Board{
		groups: make(map[Group][]int),
	}
	seen := make(map[int]bool, Size)
	for _, s := range spaces {
		if s.Index < 0 || s.Index >= Size {
			return nil, fmt.Errorf("space %q has out of range index %d", s.Name, s.Index)
		}
		if seen[s.Index] {
			return nil, fmt.Errorf("space index %d described twice", s.Index)
		}
		if s.Ownable() && (s.Price <= 0 || s.Group == "") {
			return nil, fmt.Errorf("ownable space %d must have a price and group", s.Index)
		}
		if s.Buildable() && (len(s.Rent) != MaxLevel+1 || s.HouseCost <= 0) {
			return nil, fmt.Errorf("property %d must have %d rents and a house cost", s.Index, MaxLevel+1)
		}
		seen[s.Index] = true
		b.spaces[s.Index] = s
	}
	for i := 0; i < Size; i++ {
		if b.spaces[i].Ownable() {
			g := b.spaces[i].Group
			b.groups[g] = append(b.groups[g], i)
		}
	}
	return b, nil
}

// Space returns the space at index i. It panics when i is out of range.
func (b *Board) Space(i int) Space {
	return b.spaces[i]
}

// Valid reports whether i is a board index.
func (b *Board) Valid(i int) bool {
	return i >= 0 && i < Size
}

// GroupMembers returns the space indexes of a group, in board order.
func (b *Board) GroupMembers(g Group) []int {
	return b.groups[g]
}

// Ownable returns every ownable space index in board order.
func (b *Board) Ownable() []int {
	var out []int
	for i := 0; i < Size; i++ {
		if b.spaces[i].Ownable() {
			out = append(out, i)
		}
	}
	return out
}

// NextOfKind returns the first space of the given kind strictly after from,
// wrapping around the board.
func (b *Board) NextOfKind(from int, kind SpaceKind) int {
	for step := 1; step <= Size; step++ {
		i := (from + step) % Size
		if b.spaces[i].Kind == kind {
			return i
		}
	}
	return from
}

// JailIndex returns the index of the jail space.
func (b *Board) JailIndex() int {
	for i := 0; i < Size; i++ {
		if b.spaces[i].Kind == SpaceKindJail {
			return i
		}
	}
	return 0
}
