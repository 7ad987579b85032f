package models

// CatalogData is the external configuration source's view of the world:
// id-keyed definition maps for every entity kind. The engine reconciles its
// state against it by diffing key sets.
type CatalogData struct {
	Kids         map[string]*Kid         `json:"kids"`
	Parents      map[string]*Parent      `json:"parents"`
	Chores       map[string]*Chore       `json:"chores"`
	Badges       map[string]*Badge       `json:"badges"`
	Rewards      map[string]*Reward      `json:"rewards"`
	Penalties    map[string]*Penalty     `json:"penalties"`
	Bonuses      map[string]*Bonus       `json:"bonuses"`
	Achievements map[string]*Achievement `json:"achievements"`
	Challenges   map[string]*Challenge   `json:"challenges"`
}
