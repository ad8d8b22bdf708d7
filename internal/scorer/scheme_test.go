package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemeBandsSumToHundred(t *testing.T) {
	classic := ClassicScheme()
	assert.Equal(t, 100.0,
		classic.SectionBand+classic.KeywordBand+classic.ImpactBand+
			classic.EducationBand+classic.ATSBand+classic.FormatBand+classic.JDBand,
		"经典方案各分项预算之和应为100")

	research := ResearchScheme()
	assert.Equal(t, 100.0,
		research.SectionBand+research.KeywordBand+research.ImpactBand+
			research.EducationBand+research.ATSBand+research.FormatBand+research.JDBand,
		"研究版方案各分项预算之和应为100")
}

func TestSchemeByName(t *testing.T) {
	classic, ok := SchemeByName("classic")
	assert.True(t, ok)
	assert.Equal(t, "classic", classic.Name)

	research, ok := SchemeByName("research")
	assert.True(t, ok)
	assert.Equal(t, "research", research.Name)

	// 未知名称回退到经典方案
	fallback, ok := SchemeByName("v99")
	assert.False(t, ok)
	assert.Equal(t, "classic", fallback.Name)
}

func TestSchemeShapes(t *testing.T) {
	classic := ClassicScheme()
	assert.Equal(t, KeywordFlatRate, classic.KeywordPolicy)
	assert.Equal(t, EducationWeighted, classic.EducationShape)
	assert.Equal(t, SectionCatalogClassic, classic.SectionCatalog)
	assert.Zero(t, classic.JDBand, "经典方案不含JD相似度分项")
	assert.Empty(t, classic.SuggestGraphics)

	research := ResearchScheme()
	assert.Equal(t, KeywordCoverageBlend, research.KeywordPolicy)
	assert.Equal(t, EducationCompact, research.EducationShape)
	assert.Equal(t, SectionCatalogCompact, research.SectionCatalog)
	assert.Zero(t, research.FormatBand, "研究版方案不含排版分项")
	assert.NotEmpty(t, research.SuggestGraphics)
	assert.NotEmpty(t, research.SuggestPasteJD)
}
