package common

import "errors"

// 業務錯誤（哨兵值，供 errors.Is 判斷）
var (
	// ErrRecipeNotFound 外部食譜來源找不到指定 ID 的食譜
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrMissingGapTarget 差距分析缺少目標食譜 ID
	ErrMissingGapTarget = errors.New("target recipe id is required for gap analysis")

	// ErrCacheDisabled 快取已禁用或未命中
	ErrCacheDisabled = errors.New("cache disabled")
)
