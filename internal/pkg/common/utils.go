package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizeIngredient 正規化食材名稱（小寫、去除前後空白）
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeIngredients 正規化食材列表，去除空值與重複項，保留輸入順序
func NormalizeIngredients(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		norm := NormalizeIngredient(name)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// StringSet 將字符串切片轉換為集合
func StringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
