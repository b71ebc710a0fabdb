package models

// Attribute pairs a base value with the current value that combat
// temporarily modifies. Outside an active combat boost Current never
// exceeds Base.
type Attribute struct {
	Base    int `json:"base"`
	Current int `json:"current"`
}

// Regenerate restores the current value to its base between combats.
func (a *Attribute) Regenerate() {
	a.Current = a.Base
}

// Player is the canonical roster record for one connection in a room.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`

	IsAdmin      bool `json:"isAdmin"`
	IsActive     bool `json:"isActive"`
	HasAbandoned bool `json:"hasAbandoned"`
	IsVirtual    bool `json:"isVirtual"`

	Health  Attribute `json:"health"`
	Speed   Attribute `json:"speed"`
	Attack  Attribute `json:"attack"`
	Defense Attribute `json:"defense"`

	// Dice sides for the combat rolls, assigned at character creation.
	AttackDie  int `json:"attackDie"`
	DefenseDie int `json:"defenseDie"`

	// Position is the tile index the player stands on, -1 before spawn.
	Position int `json:"position"`

	Inventory []string    `json:"inventory"`
	Stats     PlayerStats `json:"stats"`
}

// NewPlayer creates a roster record with the default character sheet: four
// points in every attribute, an attacking d6 and a defending d4.
func NewPlayer(id, name, avatar string) *Player {
	four := Attribute{Base: 4, Current: 4}
	return &Player{
		ID:         id,
		Name:       name,
		Avatar:     avatar,
		Health:     four,
		Speed:      four,
		Attack:     four,
		Defense:    four,
		AttackDie:  6,
		DefenseDie: 4,
		Position:   -1,
	}
}

// Regenerate restores every combat attribute to its base value.
func (p *Player) Regenerate() {
	p.Health.Regenerate()
	p.Speed.Regenerate()
	p.Attack.Regenerate()
	p.Defense.Regenerate()
}

// InGame reports whether the player still participates in the turn order.
func (p *Player) InGame() bool {
	return !p.HasAbandoned
}

// PlayerStats accumulates one player's figures across the match. The two
// sets are recorders; the wire payload carries only their derived values.
type PlayerStats struct {
	Combats         int `json:"combats"`
	Escapes         int `json:"escapes"`
	Wins            int `json:"wins"`
	Losses          int `json:"losses"`
	HealthLost      int `json:"healthLost"`
	HealthInflicted int `json:"healthInflicted"`

	uniqueItems  map[string]struct{}
	tilesVisited map[int]struct{}
}

// RecordItem counts an item once no matter how often it is picked up.
func (s *PlayerStats) RecordItem(itemID string) {
	if s.uniqueItems == nil {
		s.uniqueItems = make(map[string]struct{})
	}
	s.uniqueItems[itemID] = struct{}{}
}

// RecordTile counts a tile once no matter how often it is crossed.
func (s *PlayerStats) RecordTile(index int) {
	if s.tilesVisited == nil {
		s.tilesVisited = make(map[int]struct{})
	}
	s.tilesVisited[index] = struct{}{}
}

// UniqueItems returns the number of distinct items collected.
func (s *PlayerStats) UniqueItems() int {
	return len(s.uniqueItems)
}

// VisitedPercent returns the share of the map this player has crossed,
// 0 when the map has no tiles.
func (s *PlayerStats) VisitedPercent(totalTiles int) float64 {
	if totalTiles == 0 {
		return 0
	}
	return 100 * float64(len(s.tilesVisited)) / float64(totalTiles)
}
