package graph

// Category 食材類別
type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryVegetable Category = "vegetable"
	CategoryGrain     Category = "grain"
	CategoryDairy     Category = "dairy"
	CategorySpice     Category = "spice"
	CategoryOil       Category = "oil"
	CategoryHerb      Category = "herb"
	CategoryAromatic  Category = "aromatic"
	CategoryFat       Category = "fat"
	CategoryUnknown   Category = "unknown"
)

// Relation 食材關係種類
type Relation string

const (
	RelationSubstitution  Relation = "substitution"
	RelationComplementary Relation = "complementary"
	RelationCategory      Relation = "category"
)

// Substitute 帶權重的替代規則
type Substitute struct {
	Name   string
	Weight float64
}

// BaseData 圖的靜態來源資料：類別表、替代規則與互補配對
type BaseData struct {
	Categories    map[Category][]string
	Substitutions map[string][]Substitute
	Complementary [][2]string
}

// DefaultBaseData 返回預設的食材關係資料
func DefaultBaseData() *BaseData {
	return &BaseData{
		Categories: map[Category][]string{
			CategoryProtein: {
				"chicken", "turkey", "beef", "pork", "lamb", "fish",
				"tofu", "tempeh", "eggs", "beans", "lentils",
			},
			CategoryVegetable: {
				"onion", "shallot", "leek", "tomato", "carrot", "potato",
				"bell pepper", "broccoli", "zucchini", "mushrooms",
			},
			CategoryAromatic: {
				"garlic", "garlic powder", "ginger", "green onions",
			},
			CategoryGrain: {
				"rice", "pasta", "noodles", "bread", "quinoa", "oats",
				"flour", "couscous",
			},
			CategoryDairy: {
				"milk", "almond milk", "soy milk", "oat milk", "coconut milk",
				"cheese", "yogurt", "cream",
			},
			CategoryFat: {
				"butter", "margarine",
			},
			CategoryOil: {
				"olive oil", "vegetable oil", "coconut oil",
			},
			CategorySpice: {
				"salt", "pepper", "cumin", "paprika", "turmeric", "chili powder",
			},
			CategoryHerb: {
				"basil", "oregano", "thyme", "parsley", "cilantro", "mint",
				"rosemary", "sage", "dill", "marjoram",
			},
		},
		Substitutions: map[string][]Substitute{
			"chicken": {{"turkey", 0.9}, {"tofu", 0.6}, {"mushrooms", 0.4}},
			"beef":    {{"pork", 0.8}, {"lamb", 0.8}, {"mushrooms", 0.5}},
			"fish":    {{"chicken", 0.7}, {"tofu", 0.6}, {"tempeh", 0.5}},
			"milk":    {{"almond milk", 0.8}, {"soy milk", 0.8}, {"oat milk", 0.8}, {"coconut milk", 0.7}},
			"butter":  {{"olive oil", 0.7}, {"coconut oil", 0.7}, {"margarine", 0.9}},
			"cream":   {{"yogurt", 0.6}, {"coconut milk", 0.6}},
			"onion":   {{"shallot", 0.9}, {"leek", 0.7}, {"garlic", 0.6}},
			"garlic":  {{"garlic powder", 0.8}, {"onion", 0.6}, {"shallot", 0.7}, {"ginger", 0.5}},
			"rice":    {{"quinoa", 0.8}, {"pasta", 0.8}, {"couscous", 0.7}},
			"pasta":   {{"noodles", 0.9}, {"rice", 0.8}, {"quinoa", 0.7}},
			"basil":   {{"oregano", 0.7}, {"thyme", 0.7}, {"parsley", 0.6}},
			"oregano": {{"basil", 0.7}, {"thyme", 0.7}, {"marjoram", 0.8}},
		},
		Complementary: [][2]string{
			{"tomato", "basil"},
			{"tomato", "oregano"},
			{"garlic", "onion"},
			{"cheese", "pasta"},
			{"rice", "beans"},
			{"chicken", "rosemary"},
			{"potato", "rosemary"},
			{"eggs", "cheese"},
			{"ginger", "garlic"},
		},
	}
}
