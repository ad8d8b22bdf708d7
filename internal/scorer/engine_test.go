package scorer

import (
	"strings"
	"testing"

	"resume-score-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleResume 覆盖章节、关键词、量化数字、动作动词与联系方式的典型简历文本
const sampleResume = `John Doe
Email: john.doe@example.com
Phone: +91 9876543210

Summary
Backend developer with 4 years of experience.

Experience
• Led migration of services to Golang microservices, reduced latency by 40%
• Built REST API handling 5000 requests per second with Redis cache
• Improved CI pipeline with Docker and Kubernetes, saved 30% build time
• Designed PostgreSQL schema for 10 million rows
• Automated deployment scripts, launched 3 internal tools

Projects
Developed a gRPC concurrency-heavy data pipeline on AWS.

Education
B.Tech in Computer Science, 2019

Skills
Golang, SQL, REST API, Docker, Kubernetes, Redis, PostgreSQL, gRPC, AWS, Linux, Git, concurrency

Certifications
AWS Certified Developer, Coursera Go specialization

Achievements
Won internal hackathon`

func TestEngineScoreBounds(t *testing.T) {
	texts := []string{
		"",
		"short note",
		sampleResume,
		strings.Repeat("golang docker kubernetes 95% improved ", 500),
	}
	for _, schemeName := range []string{"classic", "research"} {
		scheme, ok := SchemeByName(schemeName)
		require.True(t, ok)
		engine := NewEngine(DefaultVocabulary(), scheme)

		for _, text := range texts {
			report := engine.Score(&types.ScoringRequest{Text: text, TargetRole: "Backend Developer"})
			assert.GreaterOrEqual(t, report.Total, 0.0, "总分不应为负")
			assert.LessOrEqual(t, report.Total, 100.0, "总分不应超过100")

			// 各分项不得超过方案中对应的预算
			var sum float64
			for _, pts := range report.Breakdown.Categories {
				assert.GreaterOrEqual(t, pts, 0.0)
				sum += pts
			}
			assert.InDelta(t, sum, report.Total, 0.11, "总分应为各分项之和")
		}
	}
}

func TestEngineScoreEmptyText(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())
	report := engine.Score(&types.ScoringRequest{Text: ""})

	assert.Equal(t, 0.0, report.Total, "空文本应得零分")
	assert.Equal(t, 0, report.Breakdown.WordCount)
	for name, pts := range report.Breakdown.Categories {
		assert.Equal(t, 0.0, pts, "空文本分项 %s 应为零", name)
	}
	assert.NotEmpty(t, report.Suggestions, "空文本应给出改进建议")
}

func TestEngineScoreDeterministic(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ResearchScheme())
	req := &types.ScoringRequest{
		Text:       sampleResume,
		TargetRole: "Backend Developer",
	}

	first := engine.Score(req)
	second := engine.Score(req)
	assert.Equal(t, first.Total, second.Total, "相同输入应得到相同总分")
	assert.Equal(t, first.Breakdown.Categories, second.Breakdown.Categories)
	assert.Equal(t, first.Suggestions, second.Suggestions)
}

func TestEngineKeywordMonotonicity(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())
	base := "Experienced engineer looking for new opportunities."
	enriched := base + " Skilled in golang, sql, docker, kubernetes and rest api."

	baseRep := engine.Score(&types.ScoringRequest{Text: base, TargetRole: "Backend Developer"})
	richRep := engine.Score(&types.ScoringRequest{Text: enriched, TargetRole: "Backend Developer"})

	assert.Greater(t,
		richRep.Breakdown.Categories[CategoryKeywords],
		baseRep.Breakdown.Categories[CategoryKeywords],
		"补充角色关键词后关键词分项应提升")
}

func TestEngineKeywordDuplicatesNotDoubleCounted(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())
	text := "Proficient in golang development."

	once := engine.Score(&types.ScoringRequest{
		Text: text, TargetRole: "Backend Developer", ExtraKeywords: "golang",
	})
	thrice := engine.Score(&types.ScoringRequest{
		Text: text, TargetRole: "Backend Developer", ExtraKeywords: "golang, golang, Golang",
	})
	assert.Equal(t,
		once.Breakdown.Categories[CategoryKeywords],
		thrice.Breakdown.Categories[CategoryKeywords],
		"重复的附加关键词不应重复计分")
}

func TestEngineExtraKeywordsExpandPool(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())
	text := "Worked extensively with terraform and ansible infrastructure."

	without := engine.Score(&types.ScoringRequest{Text: text, TargetRole: "Backend Developer"})
	with := engine.Score(&types.ScoringRequest{
		Text: text, TargetRole: "Backend Developer", ExtraKeywords: "terraform, ansible",
	})
	assert.Greater(t,
		with.Breakdown.Categories[CategoryKeywords],
		without.Breakdown.Categories[CategoryKeywords])
}

func TestEngineClassicHasNoJDCategory(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())
	report := engine.Score(&types.ScoringRequest{
		Text:           sampleResume,
		TargetRole:     "Backend Developer",
		JobDescription: strings.Repeat("golang backend microservices ", 20),
	})

	_, hasJD := report.Breakdown.Categories[CategoryJD]
	assert.False(t, hasJD, "经典方案不包含JD相似度分项")
	_, hasFmt := report.Breakdown.Categories[CategoryFormatting]
	assert.True(t, hasFmt, "经典方案包含排版分项")
}

func TestEngineResearchJDCategory(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ResearchScheme())

	// JD太短: 分项为0并提示粘贴完整JD
	short := engine.Score(&types.ScoringRequest{
		Text: sampleResume, TargetRole: "Backend Developer", JobDescription: "golang needed",
	})
	assert.Equal(t, 0.0, short.Breakdown.Categories[CategoryJD])
	assert.Contains(t, short.Suggestions, ResearchScheme().SuggestPasteJD)

	// JD与简历高度相关: 分项应为正
	long := engine.Score(&types.ScoringRequest{
		Text:       sampleResume,
		TargetRole: "Backend Developer",
		JobDescription: "We are hiring a backend developer experienced in Golang microservices, " +
			"Docker, Kubernetes, Redis, PostgreSQL and REST API design. " +
			"You will build concurrency heavy data pipelines on AWS.",
	})
	assert.Greater(t, long.Breakdown.Categories[CategoryJD], 0.0)
	assert.LessOrEqual(t, long.Breakdown.Categories[CategoryJD], ResearchScheme().JDBand)

	_, hasFmt := long.Breakdown.Categories[CategoryFormatting]
	assert.False(t, hasFmt, "研究版方案不包含排版分项")
}

func TestEngineSuggestionsDedupedAndCapped(t *testing.T) {
	for _, scheme := range []WeightScheme{ClassicScheme(), ResearchScheme()} {
		engine := NewEngine(DefaultVocabulary(), scheme)
		report := engine.Score(&types.ScoringRequest{Text: "nothing useful here"})

		assert.LessOrEqual(t, len(report.Suggestions), scheme.MaxSuggestions,
			"建议数不应超过方案上限")
		seen := make(map[string]struct{})
		for _, sug := range report.Suggestions {
			_, dup := seen[sug]
			assert.False(t, dup, "建议不应重复: %s", sug)
			seen[sug] = struct{}{}
		}
	}
}

func TestEngineATSSignals(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())

	contact := "Contact: jane@example.com or call 9876543210 during working hours.\n" +
		"• one\n• two\n• three\n• four\n• five\n" +
		"Additional plain prose describing professional experience in software development " +
		"and related engineering work across several teams and years of practice."
	report := engine.Score(&types.ScoringRequest{Text: contact})
	assert.Equal(t, 10.0, report.Breakdown.Categories[CategoryATS],
		"邮箱+电话+项目符号+干净文本应拿满ATS分")

	bare := engine.Score(&types.ScoringRequest{Text: "plain text without contact details"})
	assert.Equal(t, 2.0, bare.Breakdown.Categories[CategoryATS],
		"仅特殊字符比例达标时应得2分")
	assert.Contains(t, bare.Suggestions, ClassicScheme().SuggestEmail)
	assert.Contains(t, bare.Suggestions, ClassicScheme().SuggestPhone)
}

func TestEngineEducationShapes(t *testing.T) {
	text := "B.Tech graduate, holds AWS certification and PMP certified, also GCP and Azure certificates."

	classic := NewEngine(DefaultVocabulary(), ClassicScheme()).
		Score(&types.ScoringRequest{Text: text})
	assert.LessOrEqual(t, classic.Breakdown.Categories[CategoryEducation], ClassicScheme().EducationBand)
	assert.Greater(t, classic.Breakdown.Categories[CategoryEducation], 0.0)

	research := NewEngine(DefaultVocabulary(), ResearchScheme()).
		Score(&types.ScoringRequest{Text: text})
	assert.LessOrEqual(t, research.Breakdown.Categories[CategoryEducation], ResearchScheme().EducationBand)
	assert.Greater(t, research.Breakdown.Categories[CategoryEducation], 0.0)
}

func TestEngineFormattingBand(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())

	ideal := strings.Repeat("word ", 500)
	report := engine.Score(&types.ScoringRequest{Text: ideal})
	assert.Equal(t, 10.0, report.Breakdown.Categories[CategoryFormatting],
		"理想词数区间内应得满分")

	tooLong := strings.Repeat("word ", 2000)
	longRep := engine.Score(&types.ScoringRequest{Text: tooLong})
	assert.Equal(t, 0.0, longRep.Breakdown.Categories[CategoryFormatting],
		"严重超长时排版分应扣到0")
	assert.Contains(t, longRep.Suggestions, ClassicScheme().SuggestConcise)
}

func TestEngineUnknownRoleFallsBack(t *testing.T) {
	engine := NewEngine(DefaultVocabulary(), ClassicScheme())
	text := "Strong communication and leadership, solved problems in team projects using Excel."

	unknown := engine.Score(&types.ScoringRequest{Text: text, TargetRole: "Basket Weaver"})
	general := engine.Score(&types.ScoringRequest{Text: text, TargetRole: "General / Fresher"})
	assert.Equal(t,
		general.Breakdown.Categories[CategoryKeywords],
		unknown.Breakdown.Categories[CategoryKeywords],
		"未知角色应回退到通用词表")
}

func TestSpecialCharRatio(t *testing.T) {
	assert.Equal(t, 0.0, specialCharRatio(""))
	assert.Equal(t, 0.0, specialCharRatio("clean text, with (allowed) marks: 100%"))
	assert.Greater(t, specialCharRatio("@@@###$$$"), 0.5)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.3, round1(1.25))
	assert.Equal(t, 1.2, round1(1.24))
	assert.Equal(t, 0.0, round1(0.04))
}

func TestEngineSectionAliasIndependence(t *testing.T) {
	vocab := DefaultVocabulary()
	engine := NewEngine(vocab, ClassicScheme())

	for _, sec := range vocab.Sections(SectionCatalogClassic) {
		var want float64
		for i, alias := range sec.Aliases {
			rep := engine.Score(&types.ScoringRequest{Text: "intro text\n" + alias + "\nsome details"})
			got := rep.Breakdown.Categories[CategoryStructure]
			assert.Greater(t, got, 0.0, "章节 %s 的别名 %q 应被识别", sec.Name, alias)
			if i == 0 {
				want = got
			} else {
				assert.Equal(t, want, got, "章节 %s 的各别名得分应一致", sec.Name)
			}
		}
	}
}
