package parser

import (
	"strings"

	"gopkg.in/yaml.v3"

	"jobtrack-go/internal/types"
)

// 渲染时各章节的标题，按规范顺序输出
var sectionTitles = map[types.SectionType]string{
	types.SectionSummary:        "Summary",
	types.SectionExperience:     "Experience",
	types.SectionProjects:       "Projects",
	types.SectionEducation:      "Education",
	types.SectionSkills:         "Skills",
	types.SectionCertifications: "Certifications",
	types.SectionPublications:   "Publications",
}

// RenderMarkdown 把解析结果渲染为YAML frontmatter + markdown正文。
// 字段顺序和章节顺序固定，同一份ParsedResume渲染结果字节级一致。
func RenderMarkdown(resume *types.ParsedResume) (string, error) {
	var b strings.Builder

	frontmatter, err := renderFrontmatter(resume.Contact)
	if err != nil {
		return "", err
	}
	b.WriteString(frontmatter)
	b.WriteString("\n")

	for _, section := range types.CanonicalSectionOrder {
		body := renderSection(resume, section)
		if body == "" {
			continue
		}
		b.WriteString("\n## ")
		b.WriteString(sectionTitles[section])
		b.WriteString("\n\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	// 未识别内容原样附在最后，不丢弃
	if leftover := strings.TrimSpace(resume.Sections.Unstructured); leftover != "" {
		b.WriteString("\n## Other\n\n")
		b.WriteString(leftover)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// renderFrontmatter 只输出非空的联系人字段，顺序固定：
// name, title, email, phone, linkedin, github
func renderFrontmatter(contact types.ContactInfo) (string, error) {
	var b strings.Builder
	b.WriteString("---\n")
	if !contact.IsEmpty() {
		data, err := yaml.Marshal(contact)
		if err != nil {
			return "", err
		}
		b.Write(data)
	}
	b.WriteString("---\n")
	return b.String(), nil
}

func renderSection(resume *types.ParsedResume, section types.SectionType) string {
	switch section {
	case types.SectionSummary:
		return strings.TrimSpace(resume.Summary)
	case types.SectionExperience:
		return renderExperience(resume.Experience)
	case types.SectionEducation:
		return renderEducation(resume.Education)
	case types.SectionSkills:
		return renderSkills(resume.Skills)
	default:
		// 其余章节不做结构化，渲染原始区间
		content, _ := resume.Sections.Get(section)
		return strings.TrimSpace(content)
	}
}

func renderExperience(entries []types.ExperienceEntry) string {
	var parts []string
	for _, entry := range entries {
		var b strings.Builder
		if heading := renderHeading(entry.Title, entry.Company); heading != "" {
			b.WriteString(heading)
		}
		if dates := renderDates(entry.Dates); dates != "" {
			b.WriteString(dates)
		}
		for _, bullet := range entry.Bullets {
			b.WriteString("- " + bullet + "\n")
		}
		if entry.RawText != "" {
			b.WriteString(entry.RawText + "\n")
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func renderEducation(entries []types.EducationEntry) string {
	var parts []string
	for _, entry := range entries {
		var b strings.Builder
		if heading := renderHeading(entry.Degree, entry.Institution); heading != "" {
			b.WriteString(heading)
		}
		if dates := renderDates(entry.Dates); dates != "" {
			b.WriteString(dates)
		}
		if entry.GPA != "" {
			b.WriteString("GPA: " + entry.GPA + "\n")
		}
		if entry.RawText != "" {
			b.WriteString(entry.RawText + "\n")
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func renderSkills(groups []types.SkillGroup) string {
	var lines []string
	for _, group := range groups {
		joined := strings.Join(group.Skills, ", ")
		if group.Category != "" {
			lines = append(lines, "**"+group.Category+":** "+joined)
		} else {
			lines = append(lines, joined)
		}
	}
	return strings.Join(lines, "\n")
}

func renderHeading(primary, secondary string) string {
	switch {
	case primary != "" && secondary != "":
		return "### " + primary + " | " + secondary + "\n"
	case primary != "":
		return "### " + primary + "\n"
	case secondary != "":
		return "### " + secondary + "\n"
	}
	return ""
}

func renderDates(dates types.DateRange) string {
	switch {
	case dates.Start != "" && dates.End != "":
		return "*" + dates.Start + " - " + dates.End + "*\n"
	case dates.Start != "":
		return "*" + dates.Start + "*\n"
	case dates.End != "":
		return "*" + dates.End + "*\n"
	}
	return ""
}
