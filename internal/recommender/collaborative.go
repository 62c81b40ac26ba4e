package recommender

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// DefaultNeighborCount is the k used when none is configured.
const DefaultNeighborCount = 5

// neutralCFScore is assigned by every cold-start fallback path.
const neutralCFScore = 0.5

// fallbackSampleSize bounds the arbitrary sample returned when no
// ratings exist at all.
const fallbackSampleSize = 50

// CollaborativeFilter scores foods by similarity to what
// physiologically similar users rated highly. The index is in-memory
// and rebuilt per call.
type CollaborativeFilter struct {
	k int
}

// NewCollaborativeFilter returns a filter over the k nearest
// neighbors; k defaults to DefaultNeighborCount when non-positive.
func NewCollaborativeFilter(k int) *CollaborativeFilter {
	if k <= 0 {
		k = DefaultNeighborCount
	}
	return &CollaborativeFilter{k: k}
}

// ProfileVector builds the 7-dimensional feature vector for one user:
// normalized BMI, normalized age, activity ordinal, a 3-slot medical
// one-hot and the historical mean rating scaled to [0,1].
func ProfileVector(p NeighborProfile, meanRating float64) [7]float64 {
	var v [7]float64
	v[0] = normalize(p.User.BMI(), 18.5, 30)
	v[1] = normalize(float64(p.User.Age), 18, 80)
	v[2] = activityOrdinals[p.User.ActivityLevel]
	switch p.Condition {
	case ConditionDiabetes:
		v[3] = 1
	case ConditionHypertension:
		v[4] = 1
	case ConditionObesity:
		v[5] = 1
	}
	v[6] = meanRating / 5
	return v
}

func normalize(value, min, max float64) float64 {
	return clamp((value-min)/(max-min), 0, 1)
}

// Scores returns cf scores in [0,1] keyed by food ID for the target
// user. Cold-start conditions (population smaller than k, target
// absent from the population, or target with no ratings) fall back to
// population-wide top-rated foods at a neutral score; with no ratings
// anywhere, a bounded arbitrary sample of the candidates is used
// instead. The fallback never fails.
func (cf *CollaborativeFilter) Scores(
	target uuid.UUID,
	population []NeighborProfile,
	feedback []FeedbackRecord,
	candidates []FoodItem,
) map[uuid.UUID]float64 {
	ratingsByUser := groupRatings(feedback)

	if len(population) < cf.k {
		return cf.fallback(feedback, candidates)
	}

	targetIdx := -1
	vectors := make([][7]float64, len(population))
	for i, p := range population {
		vectors[i] = ProfileVector(p, meanRating(ratingsByUser[p.User.ID]))
		if p.User.ID == target {
			targetIdx = i
		}
	}
	if targetIdx < 0 || len(ratingsByUser[target]) == 0 {
		return cf.fallback(feedback, candidates)
	}

	neighbors := cf.nearest(vectors, targetIdx)

	// Collect foods the neighbors rated highly.
	type tally struct {
		sum   float64
		count int
	}
	liked := make(map[uuid.UUID]*tally)
	for _, idx := range neighbors {
		uid := population[idx].User.ID
		for _, rec := range ratingsByUser[uid] {
			if rec.Rating < 4 {
				continue
			}
			t := liked[rec.FoodID]
			if t == nil {
				t = &tally{}
				liked[rec.FoodID] = t
			}
			t.sum += float64(rec.Rating)
			t.count++
		}
	}
	if len(liked) == 0 {
		return cf.fallback(feedback, candidates)
	}

	scores := make(map[uuid.UUID]float64, len(liked))
	for foodID, t := range liked {
		scores[foodID] = t.sum / float64(t.count) / 5
	}
	return scores
}

// nearest returns the indexes of the k nearest neighbors of the target
// vector by cosine distance, excluding the target itself.
func (cf *CollaborativeFilter) nearest(vectors [][7]float64, targetIdx int) []int {
	type dist struct {
		idx int
		d   float64
	}
	dists := make([]dist, 0, len(vectors)-1)
	for i := range vectors {
		if i == targetIdx {
			continue
		}
		dists = append(dists, dist{idx: i, d: 1 - cosineSimilarity(vectors[targetIdx], vectors[i])})
	}
	sort.Slice(dists, func(a, b int) bool {
		if dists[a].d != dists[b].d {
			return dists[a].d < dists[b].d
		}
		return dists[a].idx < dists[b].idx
	})
	if len(dists) > cf.k {
		dists = dists[:cf.k]
	}
	out := make([]int, len(dists))
	for i, d := range dists {
		out[i] = d.idx
	}
	return out
}

// fallback scores population-wide top-rated foods at the neutral
// score, or an arbitrary bounded sample of the candidates when no
// ratings exist anywhere.
func (cf *CollaborativeFilter) fallback(feedback []FeedbackRecord, candidates []FoodItem) map[uuid.UUID]float64 {
	type tally struct {
		sum   float64
		count int
	}
	rated := make(map[uuid.UUID]*tally)
	for _, rec := range feedback {
		if rec.Rating == 0 {
			continue
		}
		t := rated[rec.FoodID]
		if t == nil {
			t = &tally{}
			rated[rec.FoodID] = t
		}
		t.sum += float64(rec.Rating)
		t.count++
	}

	scores := make(map[uuid.UUID]float64)
	if len(rated) > 0 {
		type avg struct {
			id uuid.UUID
			v  float64
		}
		avgs := make([]avg, 0, len(rated))
		for id, t := range rated {
			avgs = append(avgs, avg{id: id, v: t.sum / float64(t.count)})
		}
		sort.Slice(avgs, func(i, j int) bool {
			if avgs[i].v != avgs[j].v {
				return avgs[i].v > avgs[j].v
			}
			return avgs[i].id.String() < avgs[j].id.String()
		})
		if len(avgs) > fallbackSampleSize {
			avgs = avgs[:fallbackSampleSize]
		}
		for _, a := range avgs {
			scores[a.id] = neutralCFScore
		}
		return scores
	}

	for i, food := range candidates {
		if i >= fallbackSampleSize {
			break
		}
		scores[food.ID] = neutralCFScore
	}
	return scores
}

func groupRatings(feedback []FeedbackRecord) map[uuid.UUID][]FeedbackRecord {
	out := make(map[uuid.UUID][]FeedbackRecord)
	for _, rec := range feedback {
		if rec.Rating == 0 {
			continue
		}
		out[rec.UserID] = append(out[rec.UserID], rec)
	}
	return out
}

func meanRating(recs []FeedbackRecord) float64 {
	if len(recs) == 0 {
		return 0
	}
	var sum float64
	for _, r := range recs {
		sum += float64(r.Rating)
	}
	return sum / float64(len(recs))
}

func cosineSimilarity(a, b [7]float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
