package scorer

import "strings"

// SectionHint 规范章节名及其检测别名
// 检测采用子串包含而非词边界匹配，宁可误报也不漏报，结果仅用于提示。
type SectionHint struct {
	Name    string
	Aliases []string
}

// Vocabulary 评分引擎使用的全部静态词表
// 进程启动时构造一次，之后只读；通过依赖注入传给引擎，测试可按需替换。
type Vocabulary struct {
	// roleOrder 角色档案的展示顺序
	roleOrder []string
	// RoleKeywords 角色名 -> 关键词有序集合，任何档案都不为空
	RoleKeywords map[string][]string
	// ActionVerbs 动作动词表，用于影响力信号检测
	ActionVerbs []string
	// CertWords 证书相关词表
	CertWords []string
	// EduWords 学历相关词表
	EduWords []string
	// ClassicSections 经典方案的七段章节目录
	ClassicSections []SectionHint
	// CompactSections 研究版方案的五段章节目录
	CompactSections []SectionHint
}

// DefaultVocabulary 返回内置词表
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{
		roleOrder: []string{
			"General / Fresher",
			"Data Analyst",
			"Business Analyst",
			"Digital Marketing",
			"Project Management",
			"UI/UX Design",
			"Software Developer",
		},
		RoleKeywords: map[string][]string{
			"General / Fresher": {
				"project", "internship", "team", "lead", "communication", "problem solving", "python", "excel",
				"sql", "presentation", "achievement", "award", "certification",
			},
			"Data Analyst": {
				"excel", "sql", "python", "pandas", "power bi", "tableau", "dax", "visualization", "dashboard",
				"etl", "statistics", "a/b testing", "business intelligence", "insights", "kpi", "data cleaning",
			},
			"Business Analyst": {
				"requirements", "user stories", "process mapping", "stakeholder", "jira", "confluence", "bpmn",
				"use case", "gap analysis", "brd", "frd", "acceptance criteria", "sql", "reporting", "kpi",
			},
			"Digital Marketing": {
				"seo", "sem", "google ads", "meta ads", "content", "copywriting", "email marketing", "crm",
				"analytics", "utm", "landing page", "roi", "cpc", "ctr", "campaign", "canva",
			},
			"Project Management": {
				"pmp", "agile", "scrum", "kanban", "jira", "risk", "stakeholder", "timeline", "budget",
				"milestone", "scope", "resources", "status report", "dependencies", "deliverables",
			},
			"UI/UX Design": {
				"figma", "wireframe", "prototype", "user research", "usability", "interaction design", "ui kit",
				"persona", "journey map", "design system", "accessibility", "heuristics", "visual design",
			},
			"Software Developer": {
				"python", "java", "javascript", "react", "node", "api", "microservices", "docker", "git",
				"testing", "ci/cd", "design patterns", "oop", "algorithm", "data structures",
			},
		},
		ActionVerbs: []string{
			"led", "built", "created", "developed", "designed", "launched", "optimized", "reduced", "increased", "improved",
			"automated", "migrated", "enhanced", "analysed", "analyzed", "implemented", "managed", "delivered", "deployed",
			"streamlined", "orchestrated", "scaled", "architected", "spearheaded", "boosted", "transformed",
		},
		CertWords: []string{
			"certified", "certificate", "coursera", "udemy", "pl-300", "pmp", "six sigma", "itil", "aws", "azure", "gcp",
			"google analytics", "meta", "hubspot", "scrum",
		},
		EduWords: []string{
			"b.e", "btech", "b.tech", "bsc", "b.sc", "msc", "m.sc", "mca", "bca", "mba",
			"bachelor", "master", "degree", "college", "university",
		},
		ClassicSections: []SectionHint{
			{Name: "Summary/Objectives", Aliases: []string{"summary", "objective", "profile"}},
			{Name: "Experience", Aliases: []string{"experience", "work experience", "professional experience", "employment"}},
			{Name: "Projects", Aliases: []string{"projects", "project experience"}},
			{Name: "Education", Aliases: []string{"education", "academics"}},
			{Name: "Skills", Aliases: []string{"skills", "technical skills"}},
			{Name: "Certifications", Aliases: []string{"certifications", "certificates", "licenses"}},
			{Name: "Achievements", Aliases: []string{"awards", "achievements", "accomplishments"}},
		},
		CompactSections: []SectionHint{
			{Name: "Summary/Objectives", Aliases: []string{"summary", "objective", "profile"}},
			{Name: "Experience", Aliases: []string{"experience", "work experience", "professional experience", "employment"}},
			{Name: "Education", Aliases: []string{"education", "academics", "university", "college"}},
			{Name: "Skills", Aliases: []string{"skills", "technical skills"}},
			{Name: "Certifications", Aliases: []string{"certifications", "licenses", "certificates"}},
		},
	}
	return v
}

// NewVocabulary 在内置词表的基础上应用角色关键词覆盖
// 覆盖只替换命中的角色，空关键词列表会被忽略以保证档案非空。
func NewVocabulary(roleOverrides map[string][]string) *Vocabulary {
	v := DefaultVocabulary()
	for role, words := range roleOverrides {
		cleaned := make([]string, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				cleaned = append(cleaned, w)
			}
		}
		if len(cleaned) == 0 {
			continue
		}
		if _, known := v.RoleKeywords[role]; !known {
			v.roleOrder = append(v.roleOrder, role)
		}
		v.RoleKeywords[role] = cleaned
	}
	return v
}

// RoleNames 返回角色档案名称，顺序稳定
func (v *Vocabulary) RoleNames() []string {
	names := make([]string, len(v.roleOrder))
	copy(names, v.roleOrder)
	return names
}

// RoleProfile 按名称取角色关键词集合，未知角色回退到通用档案
func (v *Vocabulary) RoleProfile(name string) []string {
	if words, ok := v.RoleKeywords[name]; ok {
		return words
	}
	return v.RoleKeywords["General / Fresher"]
}

// Sections 按目录名选择章节目录
func (v *Vocabulary) Sections(catalog string) []SectionHint {
	if catalog == SectionCatalogCompact {
		return v.CompactSections
	}
	return v.ClassicSections
}
