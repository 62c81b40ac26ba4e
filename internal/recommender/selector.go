package recommender

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultSlotSize is the per-slot target count for a daily menu.
const DefaultSlotSize = 8

// recencyPenalty is subtracted from the effective score of foods the
// user consumed or rated highly within the recency window.
const recencyPenalty = 0.15

// DefaultRecencyWindow is how far back consumption counts against a
// food during selection.
const DefaultRecencyWindow = 7 * 24 * time.Hour

// groupCapFraction limits how much of a slot one food group may fill.
const groupCapFraction = 0.45

// Selector picks a diverse subset of ranked candidates for one slot.
type Selector struct {
	recencyWindow time.Duration
}

// NewSelector returns a selector with the given recency window;
// non-positive durations use the default.
func NewSelector(window time.Duration) *Selector {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	return &Selector{recencyWindow: window}
}

// RecentFoods returns the set of foods the user consumed or rated 4+
// within the selector's window, relative to now.
func (s *Selector) RecentFoods(feedback []FeedbackRecord, now time.Time) map[uuid.UUID]bool {
	cutoff := now.Add(-s.recencyWindow)
	recent := make(map[uuid.UUID]bool)
	for _, rec := range feedback {
		if !rec.Consumed && rec.Rating < 4 {
			continue
		}
		when := rec.FeedbackAt
		if when.IsZero() {
			when = rec.Date
		}
		if when.After(cutoff) {
			recent[rec.FoodID] = true
		}
	}
	return recent
}

// Select picks up to target candidates for one slot. The top raw
// scorer is always taken first; later picks use an effective score
// that penalizes recently consumed foods, and no food group may exceed
// its cap during the constrained pass. If the constrained pass falls
// short, backfill ignores group and recency so the result always has
// min(target, len(candidates)) items.
func (s *Selector) Select(candidates []RankedCandidate, target int, recent map[uuid.UUID]bool) []RankedCandidate {
	if target <= 0 || len(candidates) == 0 {
		return nil
	}

	byScore := make([]RankedCandidate, len(candidates))
	copy(byScore, candidates)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].TotalScore > byScore[j].TotalScore
	})

	groupCap := int(math.Ceil(groupCapFraction * float64(target)))
	if groupCap < 1 {
		groupCap = 1
	}

	selected := make([]RankedCandidate, 0, target)
	taken := make(map[uuid.UUID]bool)
	groupCount := make(map[string]int)

	take := func(c RankedCandidate) {
		selected = append(selected, c)
		taken[c.Food.ID] = true
		groupCount[c.Food.FoodGroup]++
	}

	// The best raw scorer is exempt from every constraint.
	take(byScore[0])

	// Constrained pass over the remainder, ordered by effective score.
	rest := make([]RankedCandidate, 0, len(byScore)-1)
	for _, c := range byScore[1:] {
		rest = append(rest, c)
	}
	effective := func(c RankedCandidate) float64 {
		score := c.TotalScore
		if recent[c.Food.ID] {
			score -= recencyPenalty
		}
		return score
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return effective(rest[i]) > effective(rest[j])
	})

	for _, c := range rest {
		if len(selected) >= target {
			break
		}
		if taken[c.Food.ID] || groupCount[c.Food.FoodGroup] >= groupCap {
			continue
		}
		take(c)
	}

	// Backfill in raw score order until the target is met.
	for _, c := range byScore {
		if len(selected) >= target {
			break
		}
		if taken[c.Food.ID] {
			continue
		}
		take(c)
	}

	return selected
}
