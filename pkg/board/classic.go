package board

var railroadRent = []int{25, 50, 100, 200}

var classicSpaces = []Space{
	{Index: 0, Name: "GO", Kind: SpaceKindGo},
	{Index: 1, Name: "Mediterranean Avenue", Kind: SpaceKindProperty, Group: GroupBrown, Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, HouseCost: 50},
	{Index: 2, Name: "Community Chest", Kind: SpaceKindCommunityChest},
	{Index: 3, Name: "Baltic Avenue", Kind: SpaceKindProperty, Group: GroupBrown, Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, HouseCost: 50},
	{Index: 4, Name: "Income Tax", Kind: SpaceKindTax, Tax: 200},
	{Index: 5, Name: "Reading Railroad", Kind: SpaceKindRailroad, Group: GroupRailroad, Price: 200, Rent: railroadRent},
	{Index: 6, Name: "Oriental Avenue", Kind: SpaceKindProperty, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50},
	{Index: 7, Name: "Chance", Kind: SpaceKindChance},
	{Index: 8, Name: "Vermont Avenue", Kind: SpaceKindProperty, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50},
	{Index: 9, Name: "Connecticut Avenue", Kind: SpaceKindProperty, Group: GroupLightBlue, Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, HouseCost: 50},
	{Index: 10, Name: "Jail / Just Visiting", Kind: SpaceKindJail},
	{Index: 11, Name: "St. Charles Place", Kind: SpaceKindProperty, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, HouseCost: 100},
	{Index: 12, Name: "Electric Company", Kind: SpaceKindUtility, Group: GroupUtility, Price: 150},
	{Index: 13, Name: "States Avenue", Kind: SpaceKindProperty, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, HouseCost: 100},
	{Index: 14, Name: "Virginia Avenue", Kind: SpaceKindProperty, Group: GroupPink, Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, HouseCost: 100},
	{Index: 15, Name: "Pennsylvania Railroad", Kind: SpaceKindRailroad, Group: GroupRailroad, Price: 200, Rent: railroadRent},
	{Index: 16, Name: "St. James Place", Kind: SpaceKindProperty, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, HouseCost: 100},
	{Index: 17, Name: "Community Chest", Kind: SpaceKindCommunityChest},
	{Index: 18, Name: "Tennessee Avenue", Kind: SpaceKindProperty, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, HouseCost: 100},
	{Index: 19, Name: "New York Avenue", Kind: SpaceKindProperty, Group: GroupOrange, Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, HouseCost: 100},
	{Index: 20, Name: "Free Parking", Kind: SpaceKindFreeParking},
	{Index: 21, Name: "Kentucky Avenue", Kind: SpaceKindProperty, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, HouseCost: 150},
	{Index: 22, Name: "Chance", Kind: SpaceKindChance},
	{Index: 23, Name: "Indiana Avenue", Kind: SpaceKindProperty, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, HouseCost: 150},
	{Index: 24, Name: "Illinois Avenue", Kind: SpaceKindProperty, Group: GroupRed, Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, HouseCost: 150},
	{Index: 25, Name: "B & O Railroad", Kind: SpaceKindRailroad, Group: GroupRailroad, Price: 200, Rent: railroadRent},
	{Index: 26, Name: "Atlantic Avenue", Kind: SpaceKindProperty, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, HouseCost: 150},
	{Index: 27, Name: "Ventnor Avenue", Kind: SpaceKindProperty, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, HouseCost: 150},
	{Index: 28, Name: "Water Works", Kind: SpaceKindUtility, Group: GroupUtility, Price: 150},
	{Index: 29, Name: "Marvin Gardens", Kind: SpaceKindProperty, Group: GroupYellow, Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, HouseCost: 150},
	{Index: 30, Name: "Go To Jail", Kind: SpaceKindGoToJail},
	{Index: 31, Name: "Pacific Avenue", Kind: SpaceKindProperty, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200},
	{Index: 32, Name: "North Carolina Avenue", Kind: SpaceKindProperty, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200},
	{Index: 33, Name: "Community Chest", Kind: SpaceKindCommunityChest},
	{Index: 34, Name: "Pennsylvania Avenue", Kind: SpaceKindProperty, Group: GroupGreen, Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, HouseCost: 200},
	{Index: 35, Name: "Short Line", Kind: SpaceKindRailroad, Group: GroupRailroad, Price: 200, Rent: railroadRent},
	{Index: 36, Name: "Chance", Kind: SpaceKindChance},
	{Index: 37, Name: "Park Place", Kind: SpaceKindProperty, Group: GroupDarkBlue, Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, HouseCost: 200},
	{Index: 38, Name: "Luxury Tax", Kind: SpaceKindTax, Tax: 100},
	{Index: 39, Name: "Boardwalk", Kind: SpaceKindProperty, Group: GroupDarkBlue, Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, HouseCost: 200},
}

// Classic returns the standard forty-space board.
func Classic() *Board {
	b, err := New(classicSpaces)
	if err != nil {
		panic(err)
	}
	return b
}
