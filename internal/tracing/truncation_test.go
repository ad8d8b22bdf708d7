package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPII(t *testing.T) {
	assert.Equal(t, "", MaskPII(""))
	assert.Equal(t, "*", MaskPII("a"))
	assert.Equal(t, "张*", MaskPII("张三"))
	assert.Equal(t, "王*明", MaskPII("王小明"))

	masked := MaskPII("jane.doe@example.com")
	assert.True(t, strings.HasPrefix(masked, "ja"))
	assert.True(t, strings.HasSuffix(masked, "om"))
	assert.NotContains(t, masked, "example")

	masked = MaskPII("13812345678")
	assert.Equal(t, "13*******78", masked)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))

	long := strings.Repeat("x", 300)
	truncated := TruncateString(long, DefaultMaxLength)
	assert.LessOrEqual(t, len([]rune(truncated)), DefaultMaxLength)
	assert.Contains(t, truncated, "...")
}

func TestSafeAttributeValue(t *testing.T) {
	// 敏感字段名应触发掩码
	assert.NotEqual(t, "jane.doe@example.com", SafeAttributeValue("lead.email", "jane.doe@example.com", DefaultMaxLength))
	assert.NotEqual(t, "13812345678", SafeAttributeValue("candidate_phone", "13812345678", DefaultMaxLength))

	// 非敏感字段原样透传
	assert.Equal(t, "backend", SafeAttributeValue("target_role", "backend", DefaultMaxLength))
}
