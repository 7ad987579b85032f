package models

// Reward is redeemable by a kid for points; redemption waits for parent
// approval before any points are deducted.
type Reward struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Cost        float64 `json:"cost"`
}

// Penalty deducts points when applied. Points is the magnitude; the engine
// applies it as a negative delta.
type Penalty struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Points      float64 `json:"points"`
}

// Bonus grants points when applied.
type Bonus struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Points      float64 `json:"points"`
}
