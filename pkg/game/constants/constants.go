package constants

const (
	// MinPlayers is the number of seated players required to start a game
	MinPlayers = 2
	// MaxPlayers is the maximum number of players in a session
	MaxPlayers = 4
	// StartingCash is the balance every player starts with
	StartingCash = 1500
	// GoSalary is credited when a move passes or lands on GO
	GoSalary = 200
	// JailBail is the fee to leave jail
	JailBail = 50
	// MaxJailRolls is the number of failed doubles attempts before bail is forced
	MaxJailRolls = 3
	// MaxDoublesStreak sends a player to jail when reached
	MaxDoublesStreak = 3
	// UtilitySingleMultiplier multiplies the dice total when one utility is owned
	UtilitySingleMultiplier = 4
	// UtilityPairMultiplier multiplies the dice total when both utilities are owned
	UtilityPairMultiplier = 10
	// NearestUtilityMultiplier is used by the "advance to nearest utility" card
	NearestUtilityMultiplier = 10
	// NearestRailroadRentFactor is used by the "advance to nearest railroad" card
	NearestRailroadRentFactor = 2
	// MaxNameLength bounds display names
	MaxNameLength = 32
)
