package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/saostartar/diet-recommendation-app/internal/models"
	"github.com/saostartar/diet-recommendation-app/internal/recommender"
	"gorm.io/gorm"
)

var ErrFoodNotFound = errors.New("food not found")

// FoodService serves the read-mostly food catalog and handles catalog
// imports.
type FoodService struct {
	db       *gorm.DB
	keywords *recommender.KeywordSet
}

var _ IFoodService = (*FoodService)(nil)

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db, keywords: recommender.DefaultKeywords()}
}

// GetFood loads one catalog entry.
func (s *FoodService) GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	var food models.Food
	err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load food: %w", err)
	}
	return &food, nil
}

// SearchFoods matches the query against food names, paginated.
func (s *FoodService) SearchFoods(ctx context.Context, query string, limit, offset int) ([]*models.Food, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var foods []models.Food
	q := s.db.WithContext(ctx).Order("name")
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if err := q.Limit(limit).Offset(offset).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to search foods: %w", err)
	}
	out := make([]*models.Food, len(foods))
	for i := range foods {
		out[i] = &foods[i]
	}
	return out, nil
}

// AttachImage stores the uploaded photo URL on the catalog entry.
func (s *FoodService) AttachImage(ctx context.Context, id uuid.UUID, url string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Food{}).
		Where("id = ?", id).
		Update("image_url", url)
	if res.Error != nil {
		return fmt.Errorf("failed to attach image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	return nil
}

// FoodsByCalorieBand returns foods with known calories inside the
// band, used to widen underfilled meal slots.
func (s *FoodService) FoodsByCalorieBand(ctx context.Context, minCal, maxCal float64) ([]*models.Food, error) {
	var foods []models.Food
	if err := s.db.WithContext(ctx).
		Where("calories IS NOT NULL AND calories >= ? AND calories <= ?", minCal, maxCal).
		Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to query calorie band: %w", err)
	}
	out := make([]*models.Food, len(foods))
	for i := range foods {
		out[i] = &foods[i]
	}
	return out, nil
}

// ImportCSV loads catalog rows from the given file, tagging allergen
// flags from the name where the source data leaves them unset. Rows
// with an empty name are skipped. Returns the number of imported rows.
func (s *FoodService) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return 0, errors.New("catalog file has no name column")
	}

	imported := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("failed to read catalog row: %w", err)
		}

		food := s.rowToFood(cols, record)
		if food == nil {
			continue
		}
		if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
			return imported, fmt.Errorf("failed to insert %q: %w", food.Name, err)
		}
		imported++
	}
	return imported, nil
}

func (s *FoodService) rowToFood(cols map[string]int, record []string) *models.Food {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}
	num := func(name string) *float64 {
		raw := field(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil {
			return nil
		}
		return &v
	}
	flag := func(name string) bool {
		switch strings.ToLower(field(name)) {
		case "1", "true", "yes", "ya":
			return true
		}
		return false
	}

	name := field("name")
	if name == "" {
		return nil
	}

	food := &models.Food{
		ID:          uuid.New(),
		Name:        name,
		FoodGroup:   field("food_group"),
		FoodStatus:  field("food_status"),
		MealSlot:    field("meal_slot"),
		Calories:    num("calories"),
		Protein:     num("protein"),
		Carbs:       num("carbohydrates"),
		Fat:         num("fat"),
		Fiber:       num("dietary_fiber"),
		SodiumMg:    num("sodium"),
		PotassiumMg: num("potassium"),
		CalciumMg:   num("calcium"),
		IronMg:      num("iron"),
		ZincMg:      num("zinc"),
		VitaminCMg:  num("vitamin_c"),

		IsVegetarian:    flag("is_vegetarian"),
		IsHalal:         field("is_halal") == "" || flag("is_halal"),
		ContainsDairy:   flag("contains_dairy"),
		ContainsNuts:    flag("contains_nuts"),
		ContainsSeafood: flag("contains_seafood"),
		ContainsEggs:    flag("contains_eggs"),
		ContainsSoy:     flag("contains_soy"),
	}
	s.tagFromName(food)
	return food
}

// tagFromName fills allergen flags the source data left unset, using
// the name vocabulary. Tagging only ever adds restrictions.
func (s *FoodService) tagFromName(food *models.Food) {
	lower := strings.ToLower(food.Name)
	contains := func(words []string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	if !food.ContainsDairy && contains(s.keywords.Dairy) {
		food.ContainsDairy = true
	}
	if !food.ContainsNuts && contains(s.keywords.Nuts) {
		food.ContainsNuts = true
	}
	if !food.ContainsSeafood && contains(s.keywords.Seafood) {
		food.ContainsSeafood = true
	}
	if !food.ContainsEggs && contains(s.keywords.Eggs) {
		food.ContainsEggs = true
	}
	if !food.ContainsSoy && contains(s.keywords.Soy) {
		food.ContainsSoy = true
	}
	if food.IsHalal && contains(s.keywords.NonHalal) {
		food.IsHalal = false
	}
	if food.IsVegetarian && (contains(s.keywords.Meat) || contains(s.keywords.Seafood)) {
		food.IsVegetarian = false
	}
}
