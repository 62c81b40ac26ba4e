package recommender

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func neighbor(age int, weight, height float64, cond MedicalCondition) NeighborProfile {
	return NeighborProfile{
		User: UserProfile{
			ID: uuid.New(), Age: age, WeightKg: weight, HeightCm: height,
			Gender: GenderMale, ActivityLevel: ActivityModerate,
		},
		Condition: cond,
	}
}

func TestProfileVectorEncoding(t *testing.T) {
	p := neighbor(30, 80, 175, ConditionDiabetes)
	v := ProfileVector(p, 4.0)

	// BMI 26.1 normalized within [18.5, 30].
	assert.InDelta(t, (26.122-18.5)/(30-18.5), v[0], 0.01)
	assert.InDelta(t, (30.0-18)/(80-18), v[1], 0.001)
	assert.InDelta(t, 0.5, v[2], 0.001)
	assert.Equal(t, 1.0, v[3])
	assert.Equal(t, 0.0, v[4])
	assert.Equal(t, 0.0, v[5])
	assert.InDelta(t, 0.8, v[6], 0.001)
}

func TestScoresColdStartSmallPopulation(t *testing.T) {
	cf := NewCollaborativeFilter(5)
	target := uuid.New()
	population := []NeighborProfile{neighbor(30, 80, 175, ConditionNone)}

	likedFood := uuid.New()
	feedback := []FeedbackRecord{
		{UserID: population[0].User.ID, FoodID: likedFood, Rating: 5},
	}

	scores := cf.Scores(target, population, feedback, nil)
	assert.Equal(t, neutralCFScore, scores[likedFood])
}

func TestScoresColdStartNoRatingsUsesCandidateSample(t *testing.T) {
	cf := NewCollaborativeFilter(5)
	candidates := make([]FoodItem, 60)
	for i := range candidates {
		candidates[i] = FoodItem{ID: uuid.New()}
	}

	scores := cf.Scores(uuid.New(), nil, nil, candidates)
	assert.Len(t, scores, fallbackSampleSize)
	for _, s := range scores {
		assert.Equal(t, neutralCFScore, s)
	}
}

func TestScoresUsesNeighborRatings(t *testing.T) {
	cf := NewCollaborativeFilter(2)

	target := neighbor(30, 80, 175, ConditionObesity)
	similar := neighbor(31, 82, 176, ConditionObesity)
	alsoSimilar := neighbor(29, 78, 174, ConditionObesity)
	distant := neighbor(75, 45, 150, ConditionNone)
	population := []NeighborProfile{target, similar, alsoSimilar, distant}

	liked := uuid.New()
	disliked := uuid.New()
	distantPick := uuid.New()
	feedback := []FeedbackRecord{
		{UserID: target.User.ID, FoodID: uuid.New(), Rating: 3},
		{UserID: similar.User.ID, FoodID: liked, Rating: 5},
		{UserID: alsoSimilar.User.ID, FoodID: liked, Rating: 4},
		{UserID: alsoSimilar.User.ID, FoodID: disliked, Rating: 2},
		{UserID: distant.User.ID, FoodID: distantPick, Rating: 5},
	}

	scores := cf.Scores(target.User.ID, population, feedback, nil)

	assert.InDelta(t, 4.5/5, scores[liked], 0.001)
	assert.NotContains(t, scores, disliked)
}

func TestScoresDeterministic(t *testing.T) {
	cf := NewCollaborativeFilter(3)
	population := []NeighborProfile{
		neighbor(25, 60, 165, ConditionNone),
		neighbor(35, 70, 170, ConditionNone),
		neighbor(45, 80, 175, ConditionDiabetes),
		neighbor(55, 90, 180, ConditionHypertension),
	}
	target := population[0].User.ID
	food := uuid.New()
	feedback := []FeedbackRecord{
		{UserID: target, FoodID: uuid.New(), Rating: 4},
		{UserID: population[1].User.ID, FoodID: food, Rating: 5},
		{UserID: population[2].User.ID, FoodID: food, Rating: 4},
	}

	first := cf.Scores(target, population, feedback, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, cf.Scores(target, population, feedback, nil))
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := [7]float64{1, 0, 0, 0, 0, 0, 0}
	b := [7]float64{1, 0, 0, 0, 0, 0, 0}
	c := [7]float64{0, 1, 0, 0, 0, 0, 0}
	var zero [7]float64

	assert.InDelta(t, 1.0, cosineSimilarity(a, b), 0.0001)
	assert.InDelta(t, 0.0, cosineSimilarity(a, c), 0.0001)
	assert.Equal(t, 0.0, cosineSimilarity(a, zero))
}
