package image

import (
	"sort"
	"strings"
	"sync"

	"flavorgraph/internal/pkg/common"
)

// Service 食譜圖片選擇服務
//
// 以策展好的關鍵字對照表挑選 Unsplash 圖片，
// 依序嘗試：完整名稱比對 → 名稱關鍵字比對（長關鍵字優先）→
// 食材關鍵字比對 → 菜系後備圖。結果以名稱為鍵緩存。
type Service struct {
	keywords []string
	table    map[string]string

	mu    sync.RWMutex
	cache map[string]string
}

// NewService 創建圖片選擇服務
func NewService() *Service {
	table := defaultImageTable()
	keywords := make([]string, 0, len(table))
	for keyword := range table {
		keywords = append(keywords, keyword)
	}
	// 長關鍵字優先，同長度按字典序保持穩定
	sort.Slice(keywords, func(i, j int) bool {
		if len(keywords[i]) != len(keywords[j]) {
			return len(keywords[i]) > len(keywords[j])
		}
		return keywords[i] < keywords[j]
	})

	return &Service{
		keywords: keywords,
		table:    table,
		cache:    make(map[string]string),
	}
}

// RecipeImage 為食譜挑選圖片 URL
func (s *Service) RecipeImage(name, cuisine string, ingredients []string) string {
	key := common.NormalizeIngredient(name)

	s.mu.RLock()
	if url, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return url
	}
	s.mu.RUnlock()

	url := s.lookup(key, cuisine, ingredients)

	s.mu.Lock()
	s.cache[key] = url
	s.mu.Unlock()
	return url
}

func (s *Service) lookup(name, cuisine string, ingredients []string) string {
	if url, ok := s.table[name]; ok {
		return url
	}

	for _, keyword := range s.keywords {
		if strings.Contains(name, keyword) {
			return s.table[keyword]
		}
	}

	joined := strings.ToLower(strings.Join(ingredients, " "))
	for _, keyword := range []string{"chicken", "fish", "egg", "rice", "pasta", "beef", "tofu"} {
		if strings.Contains(joined, keyword) {
			if url, ok := s.table[keyword]; ok {
				return url
			}
		}
	}

	return s.cuisineFallback(strings.ToLower(cuisine))
}

func (s *Service) cuisineFallback(cuisine string) string {
	switch {
	case strings.Contains(cuisine, "chinese"), strings.Contains(cuisine, "japanese"), strings.Contains(cuisine, "thai"):
		return s.table["default_asian"]
	case strings.Contains(cuisine, "italian"), strings.Contains(cuisine, "mediterranean"):
		return s.table["default_italian"]
	case strings.Contains(cuisine, "indian"):
		return s.table["default_indian"]
	default:
		return s.table["default"]
	}
}

// defaultImageTable 關鍵字到 Unsplash 圖片的對照表（無需 API key 的固定 URL）
func defaultImageTable() map[string]string {
	return map[string]string{
		"fried rice":      "https://images.unsplash.com/photo-1603133872878-684f208fb84b?w=600&h=400&fit=crop",
		"rice":            "https://images.unsplash.com/photo-1516684732162-798a0062be99?w=600&h=400&fit=crop",
		"fried chicken":   "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=600&h=400&fit=crop&q=80",
		"grilled chicken": "https://images.unsplash.com/photo-1604503468506-a8da13d82791?w=600&h=400&fit=crop&q=80",
		"chicken curry":   "https://images.unsplash.com/photo-1565557623262-b51c2513a641?w=600&h=400&fit=crop&q=80",
		"chicken":         "https://images.unsplash.com/photo-1598103442097-8b74394b95c6?w=600&h=400&fit=crop&q=80",
		"curry":           "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=600&h=400&fit=crop",
		"pasta":           "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?w=600&h=400&fit=crop",
		"pizza":           "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=600&h=400&fit=crop",
		"soup":            "https://images.unsplash.com/photo-1547592166-23ac45744acd?w=600&h=400&fit=crop",
		"salad":           "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=600&h=400&fit=crop",
		"noodles":         "https://images.unsplash.com/photo-1612929633738-8fe44f7ec841?w=600&h=400&fit=crop",
		"fish":            "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?w=600&h=400&fit=crop",
		"beef":            "https://images.unsplash.com/photo-1544025162-d76694265947?w=600&h=400&fit=crop",
		"tofu":            "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=600&h=400&fit=crop",
		"egg":             "https://images.unsplash.com/photo-1482049016688-2d3e1b311543?w=600&h=400&fit=crop",
		"pancakes":        "https://images.unsplash.com/photo-1528207776546-365bb710ee93?w=600&h=400&fit=crop",
		"stew":            "https://images.unsplash.com/photo-1547592180-85f173990554?w=600&h=400&fit=crop",
		"sandwich":        "https://images.unsplash.com/photo-1553909489-cd47e0907980?w=600&h=400&fit=crop",
		"default_asian":   "https://images.unsplash.com/photo-1617093727343-374698b1b08d?w=600&h=400&fit=crop",
		"default_italian": "https://images.unsplash.com/photo-1498579150354-977475b7ea0b?w=600&h=400&fit=crop",
		"default_indian":  "https://images.unsplash.com/photo-1585937421612-70a008356fbe?w=600&h=400&fit=crop",
		"default":         "https://images.unsplash.com/photo-1504674900247-0877df9cc836?w=600&h=400&fit=crop",
	}
}
