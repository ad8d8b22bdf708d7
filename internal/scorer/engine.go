package scorer

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"resume-score-go/internal/types"
)

var (
	// numberPattern 量化信号: 连续数字, 可跟 '%' 或 'k'
	numberPattern = regexp.MustCompile(`(?i)\b\d+[%k]?\b`)
	// emailPattern 宽松的邮箱匹配
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// phonePattern 可选国家码 + 10位号码
	phonePattern = regexp.MustCompile(`\b(\+?\d{1,3}[-\s]?)?\d{10}\b`)
	// bulletPattern 行首项目符号或任意位置的 •
	bulletPattern = regexp.MustCompile(`(\n[-•·])|•`)
)

// allowedPunct ATS特殊字符比例检查中视为正常的标点
const allowedPunct = ".,;:-()/&+%"

// Engine 简历评分引擎
// 纯函数式的单趟流水线: 归一化 → 章节检测 → 关键词 → 影响力 → ATS → 学历 →
// (可选)JD相似度 → 聚合 → 建议去重截断。引擎自身无状态，词表与方案注入后只读，
// 并发调用无需任何协调。
type Engine struct {
	vocab  *Vocabulary
	scheme WeightScheme
}

// NewEngine 创建评分引擎
func NewEngine(vocab *Vocabulary, scheme WeightScheme) *Engine {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Engine{vocab: vocab, scheme: scheme}
}

// Scheme 返回引擎使用的计分方案
func (e *Engine) Scheme() WeightScheme {
	return e.scheme
}

// Score 对一次请求评分
// 对任意输入都有定义：空文本得到全零的分项明细而不是错误。
func (e *Engine) Score(req *types.ScoringRequest) *types.ScoreReport {
	s := e.scheme
	lower := strings.ToLower(req.Text)
	wordCount := len(strings.Fields(lower))

	categories := make(map[string]float64)
	var suggestions []string

	// 1) 章节检测
	sectionPoints, sectionTips := e.scoreSections(lower)
	categories[CategoryStructure] = sectionPoints
	suggestions = append(suggestions, sectionTips...)

	// 2) 关键词覆盖
	kwPoints, kwTips := e.scoreKeywords(lower, req.TargetRole, req.ExtraKeywords)
	categories[CategoryKeywords] = kwPoints
	suggestions = append(suggestions, kwTips...)

	// 3) 影响力信号
	impactPoints, impactTips := e.scoreImpact(lower)
	categories[CategoryImpact] = impactPoints
	suggestions = append(suggestions, impactTips...)

	// 4) ATS基础项
	atsPoints, atsTips := e.scoreATS(lower, req.Text)
	categories[CategoryATS] = atsPoints
	suggestions = append(suggestions, atsTips...)

	// 5) 学历/证书
	eduPoints, eduTips := e.scoreEducation(lower)
	categories[CategoryEducation] = eduPoints
	suggestions = append(suggestions, eduTips...)

	// 6) JD相似度（仅研究版方案启用）
	if s.JDBand > 0 {
		jdPoints, jdTips := e.scoreJDSimilarity(req.Text, req.JobDescription)
		categories[CategoryJD] = jdPoints
		suggestions = append(suggestions, jdTips...)
	}

	// 7) 词数/排版
	fmtPoints, fmtTips := e.scoreFormatting(wordCount)
	if s.FormatBand > 0 {
		categories[CategoryFormatting] = fmtPoints
	}
	suggestions = append(suggestions, fmtTips...)

	// 空输入仍给出改进建议, 但分项明细全部归零
	// (影响力基础分与空文本的特殊字符比例检查都不应让空简历得分)
	if wordCount == 0 {
		for name := range categories {
			categories[name] = 0
		}
	}

	// 8) 聚合: 总分即各分项之和，各分项已各自封顶，不再额外归一化
	var total float64
	for _, pts := range categories {
		total += pts
	}

	return &types.ScoreReport{
		Total:  round1(total),
		Scheme: s.Name,
		Breakdown: types.ScoreBreakdown{
			Categories: categories,
			WordCount:  wordCount,
		},
		Suggestions: dedupeAndCap(suggestions, s.MaxSuggestions),
	}
}

// scoreSections 章节预算均分到目录内每个章节，命中一个得一份
func (e *Engine) scoreSections(lower string) (float64, []string) {
	sections := e.vocab.Sections(e.scheme.SectionCatalog)
	share := e.scheme.SectionBand / float64(len(sections))

	var points float64
	var tips []string
	for _, sec := range sections {
		hit := false
		for _, alias := range sec.Aliases {
			if strings.Contains(lower, alias) {
				hit = true
				break
			}
		}
		if hit {
			points += share
		} else {
			tips = append(tips, fmt.Sprintf("Add a clear “%s” section.", sec.Name))
		}
	}
	return round1(points), tips
}

// scoreKeywords 关键词覆盖计分
// 角色词表与附加关键词合并去重后做成员测试：列表里的重复项不会被重复计数。
func (e *Engine) scoreKeywords(lower, role, extraKeywords string) (float64, []string) {
	s := e.scheme
	merged := mergeKeywords(e.vocab.RoleProfile(role), extraKeywords)
	found := containsAny(lower, merged)

	var points float64
	needMissingTip := false
	switch s.KeywordPolicy {
	case KeywordFlatRate:
		points = math.Min(float64(len(found))*(s.KeywordBand/12), s.KeywordBand)
		needMissingTip = len(found) < s.FoundThreshold
	case KeywordCoverageBlend:
		coverage := float64(len(found)) / float64(len(merged))
		points = math.Min(s.KeywordBand, round1(coverage*s.KeywordBand+math.Min(float64(len(found)), 12)))
		needMissingTip = coverage < s.CoverageThreshold
	}

	var tips []string
	if needMissingTip {
		missing := missingKeywords(merged, found, s.MissingKeywordLimit)
		targetRole := role
		if targetRole == "" {
			targetRole = "General / Fresher"
		}
		switch s.KeywordPolicy {
		case KeywordFlatRate:
			tips = append(tips, fmt.Sprintf("Include more role keywords (target: %s). Missing examples: %s",
				targetRole, strings.Join(missing, ", ")))
		case KeywordCoverageBlend:
			tips = append(tips, fmt.Sprintf("Add relevant %s keywords (e.g., %s).",
				targetRole, strings.Join(missing, ", ")))
		}
	}
	return round1(points), tips
}

// scoreImpact 量化数字与动作动词的影响力计分
func (e *Engine) scoreImpact(lower string) (float64, []string) {
	s := e.scheme
	nums := len(numberPattern.FindAllString(lower, -1))
	verbs := len(containsAny(lower, e.vocab.ActionVerbs))

	points := math.Min(s.ImpactBand,
		s.ImpactBase+
			math.Min(float64(nums), float64(s.NumCap))*s.NumWeight+
			math.Min(float64(verbs), float64(s.VerbCap))*s.VerbWeight)

	var tips []string
	if nums < 3 {
		tips = append(tips, s.SuggestQuantify)
	}
	if verbs < 3 {
		tips = append(tips, s.SuggestVerbs)
	}
	return round1(points), tips
}

// scoreATS ATS基础项: 邮箱+3 电话+3 项目符号>=5 +2 特殊字符比例<5% +2
func (e *Engine) scoreATS(lower, original string) (float64, []string) {
	s := e.scheme
	emailOK := emailPattern.MatchString(lower)
	phoneOK := phonePattern.MatchString(lower)
	bullets := len(bulletPattern.FindAllString(original, -1))
	ratio := specialCharRatio(original)

	var points float64
	if emailOK {
		points += 3
	}
	if phoneOK {
		points += 3
	}
	if bullets >= 5 {
		points += 2
	}
	if ratio < 0.05 {
		points += 2
	}
	points = math.Min(points, s.ATSBand)

	var tips []string
	if !emailOK {
		tips = append(tips, s.SuggestEmail)
	}
	if !phoneOK {
		tips = append(tips, s.SuggestPhone)
	}
	if s.SuggestGraphics != "" && ratio >= 0.05 {
		tips = append(tips, s.SuggestGraphics)
	}
	return round1(points), tips
}

// scoreEducation 学历与证书词命中计分
func (e *Engine) scoreEducation(lower string) (float64, []string) {
	s := e.scheme
	eduHits := len(containsAny(lower, e.vocab.EduWords))
	certHits := len(containsAny(lower, e.vocab.CertWords))

	var points float64
	switch s.EducationShape {
	case EducationWeighted:
		points = math.Min(float64(eduHits)*2+math.Min(float64(certHits), 3)*2, s.EducationBand)
	case EducationCompact:
		if eduHits > 0 {
			points = 3
		}
		points += math.Min(float64(certHits), 2)
		points = math.Min(points, s.EducationBand)
	}

	var tips []string
	if eduHits == 0 {
		tips = append(tips, s.SuggestEducation)
	}
	if certHits == 0 {
		tips = append(tips, s.SuggestCerts)
	}
	return round1(points), tips
}

// scoreJDSimilarity JD相似度分项, 文本长度不足时不计分只给建议
func (e *Engine) scoreJDSimilarity(text, jobDescription string) (float64, []string) {
	s := e.scheme
	if len(strings.Fields(jobDescription)) <= s.JDMinWords {
		return 0, []string{s.SuggestPasteJD}
	}

	sim := DocumentSimilarity(text, jobDescription)
	points := math.Min(s.JDBand, round1(sim*s.JDBand))
	var tips []string
	if sim < s.JDLowSimilarity {
		tips = append(tips, s.SuggestTailorJD)
	}
	return points, tips
}

// scoreFormatting 理想词数区间内满分, 区间外按偏离中点线性扣分并保底为0
func (e *Engine) scoreFormatting(wordCount int) (float64, []string) {
	s := e.scheme
	inRange := wordCount >= s.IdealWordsMin && wordCount <= s.IdealWordsMax

	var points float64
	if s.FormatBand > 0 {
		if inRange {
			points = s.FormatBand
		} else {
			points = math.Max(0, s.FormatBand-math.Abs(float64(wordCount)-s.FormatMidpoint)/100)
		}
	}

	var tips []string
	if !inRange {
		tips = append(tips, s.SuggestConcise)
	}
	return round1(points), tips
}

// containsAny 返回在文本中以子串形式出现的词, 保持词表顺序且去重
func containsAny(lower string, words []string) []string {
	var found []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}
	return found
}

// mergeKeywords 合并角色词表与逗号分隔的附加关键词, 小写化并去重
func mergeKeywords(roleWords []string, extraKeywords string) []string {
	merged := make([]string, 0, len(roleWords)+4)
	seen := make(map[string]struct{}, len(roleWords)+4)
	add := func(w string) {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return
		}
		if _, dup := seen[w]; dup {
			return
		}
		seen[w] = struct{}{}
		merged = append(merged, w)
	}
	for _, w := range roleWords {
		add(w)
	}
	if extraKeywords != "" {
		for _, w := range strings.Split(extraKeywords, ",") {
			add(w)
		}
	}
	return merged
}

// missingKeywords 计算差集, 按字母序排序并截断
func missingKeywords(all, found []string, limit int) []string {
	foundSet := make(map[string]struct{}, len(found))
	for _, w := range found {
		foundSet[w] = struct{}{}
	}
	var missing []string
	for _, w := range all {
		if _, ok := foundSet[w]; !ok {
			missing = append(missing, w)
		}
	}
	sort.Strings(missing)
	if len(missing) > limit {
		missing = missing[:limit]
	}
	return missing
}

// specialCharRatio 非字母数字、非空白且不在允许标点内的字符占比
func specialCharRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	total := 0
	special := 0
	for _, ch := range text {
		total++
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || unicode.IsSpace(ch) {
			continue
		}
		if strings.ContainsRune(allowedPunct, ch) {
			continue
		}
		special++
	}
	return float64(special) / float64(total)
}

// dedupeAndCap 建议去重(保留首次出现的位置)并截断
func dedupeAndCap(suggestions []string, limit int) []string {
	cleaned := make([]string, 0, len(suggestions))
	seen := make(map[string]struct{}, len(suggestions))
	for _, sug := range suggestions {
		if _, dup := seen[sug]; dup {
			continue
		}
		seen[sug] = struct{}{}
		cleaned = append(cleaned, sug)
	}
	if limit > 0 && len(cleaned) > limit {
		cleaned = cleaned[:limit]
	}
	return cleaned
}

// round1 四舍五入到一位小数
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
