package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadBreakdown(t *testing.T) {
	breakdown, err := FloatMapToJSON(map[string]float64{
		"Structure": 17.1,
		"Keywords":  25.0,
	})
	require.NoError(t, err)

	lead := &Lead{BreakdownJSON: breakdown}
	parsed, err := lead.Breakdown()
	require.NoError(t, err)
	assert.Equal(t, 17.1, parsed["Structure"])
	assert.Equal(t, 25.0, parsed["Keywords"])

	// 空明细应返回空map而不是错误
	empty := &Lead{}
	parsed, err = empty.Breakdown()
	require.NoError(t, err)
	assert.Empty(t, parsed)

	// nil map 序列化为空对象
	nilJSON, err := FloatMapToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(nilJSON))
}
