package scorer

import "resume-score-go/internal/constants"

// KeywordPolicy 关键词计分策略
type KeywordPolicy int

const (
	// KeywordFlatRate 每个命中关键词按12词满覆盖基线折算固定分值
	KeywordFlatRate KeywordPolicy = iota
	// KeywordCoverageBlend 覆盖率与绝对命中数的混合计分
	KeywordCoverageBlend
)

// EducationShape 学历/证书分项的计分形态
type EducationShape int

const (
	// EducationWeighted edu_hits*2 + min(cert_hits,3)*2, 上限10
	EducationWeighted EducationShape = iota
	// EducationCompact (edu_hits>0 ? 3 : 0) + min(cert_hits,2), 上限5
	EducationCompact
)

// 章节目录选择
const (
	SectionCatalogClassic = "classic"
	SectionCatalogCompact = "compact"
)

// 分项类目名，写入breakdown与线索记录
const (
	CategoryStructure  = "Structure"
	CategoryKeywords   = "Keywords"
	CategoryImpact     = "Impact"
	CategoryEducation  = "Education/Certs"
	CategoryATS        = "ATS"
	CategoryFormatting = "Formatting"
	CategoryJD         = "JD Similarity"
)

// WeightScheme 一套完整的计分方案：类目上限、公式常数、词数区间与建议文案
// 历史上存在两代权重，这里以命名配置的方式同时保留，而不是分叉两套代码。
type WeightScheme struct {
	Name string

	// 章节检测
	SectionBand    float64 // 章节分项总预算，均分到目录内每个章节
	SectionCatalog string

	// 关键词
	KeywordBand         float64
	KeywordPolicy       KeywordPolicy
	FoundThreshold      int     // flat-rate: 命中数低于该值时给出缺词建议
	CoverageThreshold   float64 // blend: 覆盖率低于该值时给出缺词建议
	MissingKeywordLimit int     // 建议中列出的缺失关键词上限

	// 影响力信号: impact = min(band, base + min(nums,numCap)*numW + min(verbs,verbCap)*verbW)
	ImpactBand float64
	ImpactBase float64
	NumCap     int
	NumWeight  float64
	VerbCap    int
	VerbWeight float64

	// 学历/证书
	EducationBand  float64
	EducationShape EducationShape

	// ATS基础项
	ATSBand float64

	// 词数区间; FormatBand为0时只给建议不计分
	FormatBand     float64
	IdealWordsMin  int
	IdealWordsMax  int
	FormatMidpoint float64

	// JD相似度; JDBand为0时整段跳过
	JDBand          float64
	JDMinWords      int
	JDLowSimilarity float64

	// 建议列表上限
	MaxSuggestions int

	// 各阶段的建议文案，两代方案的措辞略有差异
	SuggestQuantify  string
	SuggestVerbs     string
	SuggestEducation string
	SuggestCerts     string
	SuggestEmail     string
	SuggestPhone     string
	SuggestGraphics  string // 为空表示该方案不提示特殊字符比例
	SuggestConcise   string
	SuggestPasteJD   string
	SuggestTailorJD  string
}

// ClassicScheme 经典方案: Structure 20 / Keywords 30 / Impact 20 / Education 10 / ATS 10 / Formatting 10
func ClassicScheme() WeightScheme {
	return WeightScheme{
		Name:           constants.SchemeClassic,
		SectionBand:    20,
		SectionCatalog: SectionCatalogClassic,

		KeywordBand:         30,
		KeywordPolicy:       KeywordFlatRate,
		FoundThreshold:      8,
		MissingKeywordLimit: 8,

		ImpactBand: 20,
		ImpactBase: 10,
		NumCap:     5,
		NumWeight:  2,
		VerbCap:    5,
		VerbWeight: 1.5,

		EducationBand:  10,
		EducationShape: EducationWeighted,

		ATSBand: 10,

		FormatBand:     10,
		IdealWordsMin:  350,
		IdealWordsMax:  900,
		FormatMidpoint: 600,

		MaxSuggestions: 8,

		SuggestQuantify:  "Quantify achievements (%, ₹, numbers) to show impact.",
		SuggestVerbs:     "Start bullet points with strong action verbs (Led, Built, Improved...).",
		SuggestEducation: "Add Education details (degree, college, year).",
		SuggestCerts:     "List relevant certifications (PMP, PL-300, Google, Meta, etc.).",
		SuggestEmail:     "Add a professional email address in header.",
		SuggestPhone:     "Add a valid phone number with country code.",
		SuggestConcise:   "Keep resume concise (1–2 pages; ~600–800 words recommended).",
	}
}

// ResearchScheme 研究版方案: JD 35 / Keywords 25 / Structure 15 / Impact 15 / ATS 10 / Education 5
func ResearchScheme() WeightScheme {
	return WeightScheme{
		Name:           constants.SchemeResearch,
		SectionBand:    15,
		SectionCatalog: SectionCatalogCompact,

		KeywordBand:         25,
		KeywordPolicy:       KeywordCoverageBlend,
		CoverageThreshold:   0.5,
		MissingKeywordLimit: 10,

		ImpactBand: 15,
		ImpactBase: 0,
		NumCap:     6,
		NumWeight:  1.8,
		VerbCap:    6,
		VerbWeight: 0.9,

		EducationBand:  5,
		EducationShape: EducationCompact,

		ATSBand: 10,

		// 研究版不为词数计分，只在区间外给出建议
		FormatBand:     0,
		IdealWordsMin:  300,
		IdealWordsMax:  900,
		FormatMidpoint: 600,

		JDBand:          35,
		JDMinWords:      20,
		JDLowSimilarity: 0.25,

		MaxSuggestions: 10,

		SuggestQuantify:  "Quantify achievements with numbers (%, ₹, users, time saved).",
		SuggestVerbs:     "Start bullets with strong action verbs (Led, Built, Improved...).",
		SuggestEducation: "Include Education (degree, college, year).",
		SuggestCerts:     "Add relevant certifications (PMP, PL-300, Google/Meta, etc.).",
		SuggestEmail:     "Add a professional email in the header.",
		SuggestPhone:     "Add a valid phone number with country code.",
		SuggestGraphics:  "Avoid heavy graphics/tables; use simple text formatting.",
		SuggestConcise:   "Keep resume ~1–2 pages (approx. 600–800 words).",
		SuggestPasteJD:   "Paste a Job Description to improve match scoring.",
		SuggestTailorJD:  "Tailor content to the job description—add specific tools/skills from the JD.",
	}
}

// SchemeByName 按名称取计分方案，未知名称回退到经典方案
func SchemeByName(name string) (WeightScheme, bool) {
	switch name {
	case constants.SchemeClassic:
		return ClassicScheme(), true
	case constants.SchemeResearch:
		return ResearchScheme(), true
	default:
		return ClassicScheme(), false
	}
}
