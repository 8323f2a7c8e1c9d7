package dashboard

import (
	"sort"

	"jobtrack-go/internal/storage/models"
)

// 关键词表现的划分阈值（回复率%）
const (
	highPerformerThreshold = 70.0
	lowPerformerThreshold  = 50.0
)

// KeywordAnalysis 关键词表现分析结果
type KeywordAnalysis struct {
	TopByResponse  []models.KeywordPerformance `json:"top_keywords_by_response"`
	HighPerformers []models.KeywordPerformance `json:"high_performers"`
	LowPerformers  []models.KeywordPerformance `json:"low_performers"`
}

// AnalyzeKeywords 按回复率排序并划分高低表现关键词
func AnalyzeKeywords(keywords []models.KeywordPerformance) KeywordAnalysis {
	var analysis KeywordAnalysis
	if len(keywords) == 0 {
		return analysis
	}

	sorted := make([]models.KeywordPerformance, len(keywords))
	copy(sorted, keywords)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ResponseRate > sorted[j].ResponseRate
	})

	analysis.TopByResponse = sorted
	for _, kw := range sorted {
		if kw.ResponseRate >= highPerformerThreshold {
			analysis.HighPerformers = append(analysis.HighPerformers, kw)
		}
		if kw.ResponseRate < lowPerformerThreshold {
			analysis.LowPerformers = append(analysis.LowPerformers, kw)
		}
	}
	return analysis
}
