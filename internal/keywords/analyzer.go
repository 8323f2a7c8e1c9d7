package keywords

import (
	"regexp"
	"sort"
	"strings"

	"jobtrack-go/internal/storage/models"
)

// 关键词词库。固定词表匹配，不做NLP。
var (
	technicalKeywords = []string{
		// 编程语言
		"python", "javascript", "typescript", "java", "c++", "c#", "go", "golang",
		"rust", "ruby", "php", "swift", "kotlin", "scala", "r", "matlab",
		// 前端
		"react", "vue", "angular", "svelte", "next.js", "nuxt", "redux",
		"html", "css", "sass", "tailwind", "webpack", "vite",
		// 后端
		"node.js", "express", "django", "flask", "fastapi", "spring", "spring boot",
		".net", "asp.net", "rails", "laravel",
		// 数据库
		"postgresql", "postgres", "mysql", "mongodb", "redis", "cassandra",
		"dynamodb", "elasticsearch", "oracle", "sql server", "sqlite",
		// 云与DevOps
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "k8s",
		"terraform", "ansible", "jenkins", "gitlab", "github actions", "circleci", "ci/cd",
		// 数据与机器学习
		"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "spark",
		"hadoop", "airflow", "kafka", "machine learning", "deep learning",
		"nlp", "computer vision",
		// 移动端
		"ios", "android", "react native", "flutter",
		// 其他
		"git", "linux", "graphql", "rest", "restful", "api", "microservices",
		"agile", "scrum",
	}

	leadershipKeywords = []string{
		"leadership", "mentor", "mentoring", "coach", "coaching", "lead", "leading",
		"manage", "management", "team lead", "tech lead", "technical lead",
		"collaboration", "communication", "stakeholder", "cross-functional",
		"drive", "initiative", "ownership", "influence", "strategic",
	}

	domainKeywords = []string{
		"architecture", "design", "system design", "scalability", "performance",
		"optimization", "security", "testing", "debugging", "troubleshooting",
		"api design", "database design", "distributed systems", "microservices",
	}
)

var (
	wordPattern       = regexp.MustCompile(`\b\w+(?:[.\-/+#]\w+)*\b`)
	experiencePattern = regexp.MustCompile(`\d+\+?\s*(?:years?|yrs?)(?:\s+of)?\s+experience`)
	bulletItemPattern = regexp.MustCompile(`^[•\-*\d.]+\s*(.+)`)

	requiredHeaderPattern = regexp.MustCompile(`^(?:required\s*skills?|requirements?|qualifications?|must have|you have)`)
	niceHeaderPattern     = regexp.MustCompile(`^(?:nice\s*to\s*have|preferred|bonus|plus|optional|desired)`)
	neutralHeaderPattern  = regexp.MustCompile(`^(?:responsibilities|about|benefits)`)
)

// Analysis 职位描述的完整分析结果
type Analysis struct {
	TechnicalSkills   []string           `json:"technical_skills"`
	LeadershipSkills  []string           `json:"leadership_skills"`
	DomainExpertise   []string           `json:"domain_expertise"`
	RequiredSkills    []string           `json:"required_skills"`
	NiceToHaveSkills  []string           `json:"nice_to_have_skills"`
	ATSKeywords       []string           `json:"ats_keywords"`
	KeywordFrequency  map[string]int     `json:"keyword_frequency"`
	KeywordImportance map[string]float64 `json:"keyword_importance"`
}

// Analyze 对职位描述执行全部分析
func Analyze(text string) Analysis {
	if strings.TrimSpace(text) == "" {
		return Analysis{}
	}

	required, niceToHave := CategorizeRequirements(text)
	return Analysis{
		TechnicalSkills:   matchVocabulary(text, technicalKeywords),
		LeadershipSkills:  matchVocabulary(text, leadershipKeywords),
		DomainExpertise:   matchVocabulary(text, domainKeywords),
		RequiredSkills:    required,
		NiceToHaveSkills:  niceToHave,
		ATSKeywords:       ATSKeywords(text),
		KeywordFrequency:  Frequency(text),
		KeywordImportance: Importance(text),
	}
}

// Extract 提取文本中命中词库的关键词和经验年限短语，结果去重排序
func Extract(text string) []string {
	if text == "" {
		return nil
	}
	textLower := strings.ToLower(text)

	seen := make(map[string]struct{})
	var keywords []string
	add := func(kw string) {
		if _, ok := seen[kw]; !ok {
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}

	for _, vocab := range [][]string{technicalKeywords, leadershipKeywords, domainKeywords} {
		for _, keyword := range vocab {
			if strings.Contains(textLower, keyword) {
				add(keyword)
			}
		}
	}
	for _, match := range experiencePattern.FindAllString(textLower, -1) {
		add(match)
	}

	sort.Strings(keywords)
	return keywords
}

// Categorize 把关键词映射到存储层的类别枚举
func Categorize(keyword string) models.KeywordCategory {
	lower := strings.ToLower(keyword)
	for _, kw := range leadershipKeywords {
		if lower == kw {
			return models.KeywordSoftSkill
		}
	}
	for _, kw := range domainKeywords {
		if lower == kw {
			return models.KeywordDomain
		}
	}
	return models.KeywordTechnicalSkill
}

// Frequency 统计词库关键词在文本中的出现次数
func Frequency(text string) map[string]int {
	if text == "" {
		return nil
	}
	textLower := strings.ToLower(text)

	wordCounts := make(map[string]int)
	for _, word := range wordPattern.FindAllString(textLower, -1) {
		wordCounts[word]++
	}

	frequency := make(map[string]int)
	for _, vocab := range [][]string{technicalKeywords, leadershipKeywords, domainKeywords} {
		for _, keyword := range vocab {
			// 多词短语和带点/斜杠的词无法按单词计数，改用子串计数
			if strings.ContainsAny(keyword, " ./") {
				if count := strings.Count(textLower, keyword); count > 0 {
					frequency[keyword] = count
				}
				continue
			}
			if count := wordCounts[keyword]; count > 0 {
				frequency[keyword] = count
			}
		}
	}

	// 高频信号词即便不在词库中也保留
	for _, word := range []string{"experience", "required", "preferred", "skills", "knowledge"} {
		if count := wordCounts[word]; count > 0 {
			frequency[word] = count
		}
	}
	return frequency
}

// ATSKeywords 按出现频率倒序返回提取到的关键词
func ATSKeywords(text string) []string {
	keywords := Extract(text)
	frequency := Frequency(text)

	sort.SliceStable(keywords, func(i, j int) bool {
		return frequency[keywords[i]] > frequency[keywords[j]]
	})
	return keywords
}

// Importance 计算关键词重要度（0到1）。
// 基础分是归一化频率，出现在required段落附近或开头200字符内时加权。
func Importance(text string) map[string]float64 {
	frequency := Frequency(text)
	if len(frequency) == 0 {
		return nil
	}

	maxFreq := 0
	for _, count := range frequency {
		if count > maxFreq {
			maxFreq = count
		}
	}

	textLower := strings.ToLower(text)
	head := textLower
	if len(head) > 200 {
		head = head[:200]
	}

	importance := make(map[string]float64, len(frequency))
	for keyword, count := range frequency {
		score := float64(count) / float64(maxFreq)

		requiredNear := regexp.MustCompile(`(?:required|must have)[\s\S]{0,200}\b` + regexp.QuoteMeta(keyword) + `\b`)
		if requiredNear.MatchString(textLower) {
			score *= 1.5
		}
		if strings.Contains(head, keyword) {
			score *= 1.3
		}
		if score > 1.0 {
			score = 1.0
		}
		importance[keyword] = score
	}
	return importance
}

// CategorizeRequirements 把要求划分为必须项和加分项。
// 优先按段落标题识别，找不到明确段落时退回到句式启发。
func CategorizeRequirements(text string) (required, niceToHave []string) {
	if text == "" {
		return nil, nil
	}

	inRequired, inNice := false, false
	for _, line := range strings.Split(text, "\n") {
		lineLower := strings.ToLower(strings.TrimSpace(line))

		switch {
		case requiredHeaderPattern.MatchString(lineLower):
			inRequired, inNice = true, false
			continue
		case niceHeaderPattern.MatchString(lineLower):
			inRequired, inNice = false, true
			continue
		case neutralHeaderPattern.MatchString(lineLower):
			inRequired, inNice = false, false
			continue
		}

		if m := bulletItemPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			item := strings.TrimSpace(m[1])
			if len(item) <= 5 {
				continue
			}
			if inRequired {
				required = append(required, item)
			} else if inNice {
				niceToHave = append(niceToHave, item)
			}
		}
	}

	if len(required) > 0 || len(niceToHave) > 0 {
		return required, niceToHave
	}

	// 无明确段落，按句式启发
	requiredPatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+\+?\s*years?\s+(?:of\s+)?experience\s+(?:with|in)\s+[^\n.,]+`),
		regexp.MustCompile(`(?i)strong\s+(?:knowledge|understanding|experience)\s+(?:of|with|in)\s+[^\n.,]+`),
		regexp.MustCompile(`(?i)must\s+have\s+[^\n.,]+`),
		regexp.MustCompile(`(?i)required[:\s]+[^\n.,]+`),
	}
	nicePatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)nice\s+to\s+have[:\s]+[^\n.,]+`),
		regexp.MustCompile(`(?i)preferred[:\s]+[^\n.,]+`),
		regexp.MustCompile(`(?i)bonus[:\s]+[^\n.,]+`),
		regexp.MustCompile(`(?i)familiarity\s+with\s+[^\n.,]+`),
	}

	for _, pattern := range requiredPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if match = strings.TrimSpace(match); match != "" {
				required = append(required, match)
			}
		}
	}
	for _, pattern := range nicePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if match = strings.TrimSpace(match); match != "" {
				niceToHave = append(niceToHave, match)
			}
		}
	}
	return required, niceToHave
}

// matchVocabulary 返回文本中命中的词库关键词，排序去重
func matchVocabulary(text string, vocab []string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, keyword := range vocab {
		if strings.Contains(textLower, keyword) {
			found = append(found, keyword)
		}
	}
	sort.Strings(found)
	return found
}
