package types

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionSummary 个人总结章节
	SectionSummary SectionType = "summary"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "experience"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "education"
	// SectionSkills 技能章节
	SectionSkills SectionType = "skills"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "projects"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "certifications"
	// SectionPublications 论文/出版物章节
	SectionPublications SectionType = "publications"
	// SectionUnstructured 未识别内容章节（原样保留，不丢弃）
	SectionUnstructured SectionType = "unstructured"
)

// CanonicalSectionOrder 章节的规范优先级顺序。
// 章节识别的平局裁决和markdown渲染顺序都以此为准。
var CanonicalSectionOrder = []SectionType{
	SectionSummary,
	SectionExperience,
	SectionProjects,
	SectionEducation,
	SectionSkills,
	SectionCertifications,
	SectionPublications,
}

// RawDocument 从PDF中按页提取的原始文本，生成后不可变
type RawDocument struct {
	SourcePath string   // 源文件路径
	Pages      []string // 每页的文本，按文档顺序
	CharCount  int      // 所有页的字符总数
}

// FullText 返回以空行连接的全文
func (d *RawDocument) FullText() string {
	switch len(d.Pages) {
	case 0:
		return ""
	case 1:
		return d.Pages[0]
	}
	text := d.Pages[0]
	for _, page := range d.Pages[1:] {
		text += "\n\n" + page
	}
	return text
}

// ContactInfo 联系人信息，每个字段都可以为空
type ContactInfo struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Email    string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
}

// IsEmpty 所有字段均未提取到时返回true
func (c ContactInfo) IsEmpty() bool {
	return c == ContactInfo{}
}

// SectionSpan 一个被识别章节的原始文本区间
type SectionSpan struct {
	Type    SectionType // 规范章节类型
	Header  string      // 文档中实际出现的标题行
	Content string      // 标题行之后到下一个标题行之前的文本
}

// SectionMap 章节区间集合，保持文档顺序
type SectionMap struct {
	Spans        []SectionSpan // 按文档顺序排列的已识别章节
	Unstructured string        // 未落入任何识别章节的文本，原样保留
}

// Get 返回指定类型的章节内容，未找到时ok为false
func (m *SectionMap) Get(t SectionType) (string, bool) {
	for _, span := range m.Spans {
		if span.Type == t {
			return span.Content, true
		}
	}
	return "", false
}

// Has 判断是否识别出了指定章节
func (m *SectionMap) Has(t SectionType) bool {
	_, ok := m.Get(t)
	return ok
}

// DateRange 一段起止日期，End为"Present"表示至今
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ExperienceEntry 一条工作经历
type ExperienceEntry struct {
	Title   string    `json:"title,omitempty"`
	Company string    `json:"company,omitempty"`
	Dates   DateRange `json:"dates"`
	Bullets []string  `json:"bullets,omitempty"`
	// RawText 无法解析的块原样保留在这里，而不是被丢弃
	RawText string `json:"raw_text,omitempty"`
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	Degree      string    `json:"degree,omitempty"`
	Institution string    `json:"institution,omitempty"`
	Dates       DateRange `json:"dates"`
	GPA         string    `json:"gpa,omitempty"`
	RawText     string    `json:"raw_text,omitempty"`
}

// SkillGroup 一组技能，Category可以为空（未分类技能）
type SkillGroup struct {
	Category string   `json:"category,omitempty"`
	Skills   []string `json:"skills"`
}

// ParsedResume 整份简历的结构化解析结果。
// 除原始文本外所有字段都是可选的：缺失章节对应空列表/空串，绝不报错。
type ParsedResume struct {
	Contact    ContactInfo       `json:"contact"`
	Summary    string            `json:"summary,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	Skills     []SkillGroup      `json:"skills,omitempty"`
	Sections   SectionMap        `json:"-"`
	RawText    string            `json:"raw_text,omitempty"`
}
