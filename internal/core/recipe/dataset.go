package recipe

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"flavorgraph/internal/pkg/common"

	"go.uber.org/zap"
)

// DatasetProvider 本地 CSV 食譜資料集
//
// 欄位：id, name, ingredients, cuisine, difficulty, tags, prep_time, cook_time, servings, image_url。
// ingredients 與 tags 以分號分隔。載入一次後常駐記憶體，作為外部 API 都不可用時的後備來源。
type DatasetProvider struct {
	recipes []Recipe
	byID    map[string]Recipe
}

// NewDatasetProvider 載入 CSV 資料集；檔案不存在時返回空資料集，不視為錯誤
func NewDatasetProvider(path string) (*DatasetProvider, error) {
	p := &DatasetProvider{byID: make(map[string]Recipe)}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			common.LogWarn("食譜資料集不存在，使用空資料集", zap.String("path", path))
			return p, nil
		}
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	for i, row := range rows {
		if i == 0 || len(row) < 6 {
			continue
		}
		rec := Recipe{
			ID:          strings.TrimSpace(row[0]),
			Name:        strings.TrimSpace(row[1]),
			Ingredients: splitList(row[2]),
			Cuisine:     strings.ToLower(strings.TrimSpace(row[3])),
			Difficulty:  strings.ToLower(strings.TrimSpace(row[4])),
			Tags:        splitList(row[5]),
		}
		if len(row) > 6 {
			rec.PrepTime, _ = strconv.Atoi(strings.TrimSpace(row[6]))
		}
		if len(row) > 7 {
			rec.CookTime, _ = strconv.Atoi(strings.TrimSpace(row[7]))
		}
		if len(row) > 8 {
			rec.Servings, _ = strconv.Atoi(strings.TrimSpace(row[8]))
		}
		if len(row) > 9 {
			rec.ImageURL = strings.TrimSpace(row[9])
		}
		if rec.ID == "" || rec.Name == "" {
			continue
		}
		p.recipes = append(p.recipes, rec)
		p.byID[rec.ID] = rec
	}

	common.LogInfo("食譜資料集載入完成",
		zap.String("path", path),
		zap.Int("count", len(p.recipes)),
	)
	return p, nil
}

// Name 資料來源名稱
func (p *DatasetProvider) Name() string {
	return "dataset"
}

// Count 資料集筆數
func (p *DatasetProvider) Count() int {
	return len(p.recipes)
}

// SearchRecipes 依條件在記憶體中篩選
//
// 有食材時保留至少包含一個可用食材的食譜；
// 有關鍵字時做名稱子字串比對；菜系與飲食標籤則是硬過濾。
func (p *DatasetProvider) SearchRecipes(ctx context.Context, query PoolQuery) ([]Recipe, error) {
	available := common.StringSet(common.NormalizeIngredients(query.Ingredients))

	var out []Recipe
	for _, rec := range p.recipes {
		if query.Cuisine != "" && !strings.EqualFold(rec.Cuisine, query.Cuisine) {
			continue
		}
		if query.Diet != "" && !hasTag(rec.Tags, query.Diet) {
			continue
		}
		if query.Query != "" && !strings.Contains(strings.ToLower(rec.Name), strings.ToLower(query.Query)) {
			continue
		}
		if len(available) > 0 && !usesAny(rec.Ingredients, available) {
			continue
		}
		out = append(out, rec)
		if query.Limit > 0 && len(out) >= query.Limit {
			break
		}
	}
	return out, nil
}

// GetRecipeByID 依 id 查詢
func (p *DatasetProvider) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	if rec, ok := p.byID[id]; ok {
		return &rec, nil
	}
	return nil, common.ErrRecipeNotFound
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

func usesAny(ingredients []string, available map[string]struct{}) bool {
	for _, ing := range ingredients {
		if _, ok := available[common.NormalizeIngredient(ing)]; ok {
			return true
		}
	}
	return false
}
