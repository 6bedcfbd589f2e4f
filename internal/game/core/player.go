package core

// Resource caps. A player holding MaxObelisks obelisks has won.
const (
	MaxWalls    uint8 = 10
	MaxBarracks uint8 = 10
	MaxObelisks uint8 = 10

	// DefenseDuration is the number of rounds a Defend action keeps walls doubled.
	DefenseDuration uint8 = 2
)

// Player holds one participant's resources.
// Busy and Sieged are only meaningful while a round is being resolved.
type Player struct {
	Soldiers uint32
	Walls    uint8
	Barracks uint8
	Obelisks uint8
	Defense  uint8 // rounds of active defense left (0, 1 or 2)

	Busy   bool // attacked or recruited this round, so the garrison cannot repel a siege
	Sieged bool // successfully besieged this round, so no structure can be built

	Victories int
	Defeats   int
}

// NewPlayer returns a player with the standard starting resources.
func NewPlayer() Player {
	return NewPlayerWithValues(1, 1, 1, 1, 0)
}

// NewPlayerWithValues returns a player with the given resources and empty counters.
func NewPlayerWithValues(walls uint8, soldiers uint32, barracks, obelisks, defense uint8) Player {
	return Player{
		Soldiers: soldiers,
		Walls:    walls,
		Barracks: barracks,
		Obelisks: obelisks,
		Defense:  defense,
	}
}

// Won reports whether the player reached the obelisk cap.
func (p Player) Won() bool { return p.Obelisks == MaxObelisks }

// Lost reports whether the player has no obelisk left.
func (p Player) Lost() bool { return p.Obelisks == 0 }

// CanPlay reports whether the player may still choose actions.
func (p Player) CanPlay() bool { return !p.Lost() && !p.Won() }

// IsDefending reports whether the defense buff is active.
func (p Player) IsDefending() bool { return p.Defense > 0 }

// WallMultiplier is 2 while defending and 1 otherwise.
func (p Player) WallMultiplier() uint32 {
	if p.IsDefending() {
		return 2
	}
	return 1
}

// EffectiveWalls is the number of attacking soldiers the walls can absorb.
func (p Player) EffectiveWalls() uint32 {
	return uint32(p.Walls) * p.WallMultiplier()
}

// Strength is the total number of soldiers an attacker must exceed to besiege the player,
// assuming the garrison is free to fight.
func (p Player) Strength() uint32 {
	return p.EffectiveWalls() + p.Soldiers
}

// Equal compares resources only. The per-round flags and the victory counters are ignored.
func (p Player) Equal(other Player) bool {
	return p.Soldiers == other.Soldiers &&
		p.Walls == other.Walls &&
		p.Defense == other.Defense &&
		p.Barracks == other.Barracks &&
		p.Obelisks == other.Obelisks
}

// ClonePlayers returns an independent copy of a state.
func ClonePlayers(players []Player) []Player {
	clone := make([]Player, len(players))
	copy(clone, players)
	return clone
}

// AnyWon reports whether some player has reached the obelisk cap.
func AnyWon(players []Player) bool {
	for _, p := range players {
		if p.Won() {
			return true
		}
	}
	return false
}

// CountPlaying returns how many players can still act.
func CountPlaying(players []Player) int {
	n := 0
	for _, p := range players {
		if p.CanPlay() {
			n++
		}
	}
	return n
}
