package domain

// Tier is a named productivity milestone derived solely from a user's
// lifetime harvested-todo count.
type Tier struct {
	Name      string
	Threshold int // minimum lifetime count for this tier
}

// Tiers lists the fixed progression in ascending order. The thresholds are
// a constant lookup table, not a configurable policy.
var Tiers = []Tier{
	{Name: "Young Toad", Threshold: 0},
	{Name: "Pond Hopper", Threshold: 10},
	{Name: "Lily Pad Master", Threshold: 25},
	{Name: "Swamp Lord", Threshold: 50},
	{Name: "Toad King", Threshold: 100},
	{Name: "Ancient Toad", Threshold: 250},
}

// Rank describes where a lifetime count sits in the tier progression.
// NextTier is nil at the terminal tier, and RemainingToNext is zero there.
type Rank struct {
	Tier            Tier
	NextTier        *Tier
	RemainingToNext int
}

// RankForCount maps a lifetime completed count to its tier. It is pure and
// deterministic; negative counts clamp to zero.
func RankForCount(count int) Rank {
	if count < 0 {
		count = 0
	}

	idx := 0
	for i, t := range Tiers {
		if count >= t.Threshold {
			idx = i
		}
	}

	rank := Rank{Tier: Tiers[idx]}
	if idx+1 < len(Tiers) {
		next := Tiers[idx+1]
		rank.NextTier = &next
		rank.RemainingToNext = next.Threshold - count
	}
	return rank
}
