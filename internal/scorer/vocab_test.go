package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabularyComplete(t *testing.T) {
	v := DefaultVocabulary()

	roles := v.RoleNames()
	assert.Len(t, roles, 7, "默认词表应覆盖7个目标角色")
	for _, role := range roles {
		profile := v.RoleProfile(role)
		assert.NotEmpty(t, profile, "角色 %s 的关键词表不应为空", role)
		for _, kw := range profile {
			assert.Equal(t, strings.ToLower(kw), kw, "关键词应为小写: %s", kw)
		}
	}

	assert.NotEmpty(t, v.ActionVerbs)
	assert.NotEmpty(t, v.CertWords)
	assert.NotEmpty(t, v.EduWords)
}

func TestRoleProfileFallback(t *testing.T) {
	v := DefaultVocabulary()
	fallback := v.RoleProfile("No Such Role")
	general := v.RoleProfile("General / Fresher")
	assert.Equal(t, general, fallback, "未知角色应回退到通用词表")
}

func TestSectionsCatalogs(t *testing.T) {
	v := DefaultVocabulary()

	classic := v.Sections(SectionCatalogClassic)
	assert.Len(t, classic, 7)
	compact := v.Sections(SectionCatalogCompact)
	assert.Len(t, compact, 5)

	// 未知目录名回退到经典目录
	assert.Equal(t, classic, v.Sections("unknown"))

	for _, sec := range append(classic, compact...) {
		require.NotEmpty(t, sec.Aliases, "章节 %s 必须至少有一个别名", sec.Name)
		for _, alias := range sec.Aliases {
			assert.Equal(t, strings.ToLower(alias), alias, "别名应为小写: %s", alias)
		}
	}
}

func TestNewVocabularyOverrides(t *testing.T) {
	v := NewVocabulary(map[string][]string{
		"Backend Developer": {"  Zig  ", "RUST", "", "zig"},
		"Platform Engineer": {"terraform", "pulumi"},
	})

	// 覆盖既有角色: 小写化、去空白、丢弃空串
	backend := v.RoleProfile("Backend Developer")
	assert.Contains(t, backend, "zig")
	assert.Contains(t, backend, "rust")
	assert.NotContains(t, backend, "")

	// 新增角色追加到角色列表
	assert.Contains(t, v.RoleNames(), "Platform Engineer")
	assert.Equal(t, []string{"terraform", "pulumi"}, v.RoleProfile("Platform Engineer"))

	// 默认词表不受覆盖影响
	assert.NotContains(t, DefaultVocabulary().RoleProfile("Backend Developer"), "zig")
}
