package recommender

import "strings"

// KeywordSet is the versioned vocabulary used for medical exclusion,
// slot classification and allergen detection. Keeping these as data
// rather than scattered constants lets tests and locale changes swap
// them without touching logic.
type KeywordSet struct {
	Version string

	Breakfast   []string
	LunchDinner []string
	Snack       []string
	Drink       []string

	Fried []string
	Sweet []string
	Salty []string
	Raw   []string

	Dairy   []string
	Nuts    []string
	Seafood []string
	Eggs    []string
	Soy     []string
	NonHalal []string
	Meat     []string
}

// DefaultKeywords returns the vocabulary shipped with the Indonesian
// food catalog.
func DefaultKeywords() *KeywordSet {
	return &KeywordSet{
		Version: "id-v1",

		Breakfast: []string{
			"telur", "roti", "bubur", "oatmeal", "sereal", "granola", "susu", "yogurt",
			"pancake", "wafel", "lontong", "nasi uduk", "nasi kuning",
			"havermout", "muesli", "sandwich", "croissant",
		},
		LunchDinner: []string{
			"nasi", "mie", "bihun", "pasta", "sup", "soto", "gulai", "kari", "bakso",
			"sayur", "tumis", "ayam", "daging", "ikan", "udang", "tahu", "tempe",
			"goreng", "bakar", "pepes", "rendang", "opor", "semur", "capcay", "lodeh",
			"rawon", "gudeg", "pempek", "sate", "kwetiau", "iga", "buntut",
		},
		Snack: []string{
			"kue", "coklat", "permen", "biskuit", "keripik", "kerupuk", "buah", "jelly",
			"wafer", "cookies", "puding", "risoles", "gorengan", "martabak",
			"pisang goreng", "bakwan", "onde-onde", "klepon", "lemper", "lumpia", "bolu",
			"brownie", "batagor", "siomay", "cilok", "cireng", "kacang", "nastar", "pastel",
		},
		Drink: []string{"kopi", "teh", "jus", "es", "sirup", "minuman"},

		Fried: []string{"goreng", "keripik", "gorengan"},
		Sweet: []string{"manis", "gula", "sirup"},
		Salty: []string{"asin", "dendeng", "keripik"},
		Raw:   []string{"mentah"},

		Dairy: []string{
			"susu", "keju", "yogurt", "krim", "mentega", "margarin", "whey", "dadih", "custard",
		},
		Nuts: []string{
			"kacang", "mete", "almond", "kenari", "kemiri", "hazelnut", "walnut", "kwaci",
		},
		Seafood: []string{
			"ikan", "udang", "cumi", "kerang", "kepiting", "lobster", "seafood",
			"cakalang", "tuna", "tongkol", "kakap", "laut", "teri", "bandeng",
			"lele", "mujair", "pindang", "belut", "tenggiri", "kembung",
		},
		Eggs: []string{"telur", "dadar", "omelette", "mayones"},
		Soy: []string{
			"kedelai", "tahu", "tempe", "kecap", "tauco", "oncom",
		},
		NonHalal: []string{
			"babi", "bacon", "ham", "pork", "arak", "alkohol", "wine", "bir", "tuak", "anggur",
		},
		Meat: []string{"daging", "ayam", "sapi", "kambing", "bebek"},
	}
}

// containsAny reports whether the lowercased name contains any of the
// given keywords.
func containsAny(nameLower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(nameLower, w) {
			return true
		}
	}
	return false
}

// MatchesPreferences applies the hard dietary and allergy filter. A
// food passes only when it violates none of the active constraints.
// Allergen checks combine the catalog flags with name keywords, since
// catalog tagging is known to be incomplete.
func MatchesPreferences(food FoodItem, prefs []Preference, kw *KeywordSet) bool {
	if len(prefs) == 0 {
		return true
	}
	name := strings.ToLower(food.Name)
	for _, p := range prefs {
		switch p {
		case PrefVegetarian:
			if !food.IsVegetarian {
				return false
			}
		case PrefHalal:
			if !food.IsHalal || containsAny(name, kw.NonHalal) {
				return false
			}
		case PrefDairyFree:
			if food.ContainsDairy || containsAny(name, kw.Dairy) {
				return false
			}
		case PrefNutFree:
			if food.ContainsNuts || containsAny(name, kw.Nuts) {
				return false
			}
		case PrefSeafoodFree:
			if food.ContainsSeafood || containsAny(name, kw.Seafood) {
				return false
			}
		case PrefEggFree:
			if food.ContainsEggs || containsAny(name, kw.Eggs) {
				return false
			}
		case PrefSoyFree:
			if food.ContainsSoy || containsAny(name, kw.Soy) {
				return false
			}
		}
	}
	return true
}
