package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentSimilarityIdenticalTexts(t *testing.T) {
	text := "golang backend developer building microservices with docker and kubernetes"
	sim := DocumentSimilarity(text, text)
	assert.InDelta(t, 1.0, sim, 1e-9, "相同文本的余弦相似度应为1")
}

func TestDocumentSimilarityDisjointTexts(t *testing.T) {
	sim := DocumentSimilarity(
		"python pandas numpy machine learning",
		"plumbing carpentry welding masonry",
	)
	assert.Equal(t, 0.0, sim, "无共同词汇的文本相似度应为0")
}

func TestDocumentSimilarityEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, DocumentSimilarity("", "some job description text"))
	assert.Equal(t, 0.0, DocumentSimilarity("some resume text", ""))
	assert.Equal(t, 0.0, DocumentSimilarity("", ""))
}

func TestDocumentSimilarityStopWordsIgnored(t *testing.T) {
	// 仅停用词的文本在分词后为空
	assert.Equal(t, 0.0, DocumentSimilarity("the and of to in", "docker kubernetes"))
}

func TestDocumentSimilarityDeterministic(t *testing.T) {
	a := "senior golang engineer with redis postgresql experience"
	b := "hiring a golang engineer familiar with postgresql"
	first := DocumentSimilarity(a, b)
	second := DocumentSimilarity(a, b)
	assert.Equal(t, first, second, "相同输入应得到相同相似度")
	assert.Greater(t, first, 0.0)
	assert.LessOrEqual(t, first, 1.0)
}

func TestDocumentSimilarityPartialOverlap(t *testing.T) {
	resume := "golang developer docker kubernetes redis"
	related := "golang developer position requiring docker"
	unrelated := "pastry chef baking croissants daily"

	assert.Greater(t,
		DocumentSimilarity(resume, related),
		DocumentSimilarity(resume, unrelated),
		"相关JD的相似度应高于无关JD")
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Led a Go-lang team of 25 engineers!")
	// 单字符词与停用词被过滤, 连字符按非词字符切分
	assert.Contains(t, tokens, "led")
	assert.Contains(t, tokens, "lang")
	assert.Contains(t, tokens, "engineers")
	assert.Contains(t, tokens, "25")
	assert.NotContains(t, tokens, "a")
	assert.NotContains(t, tokens, "of")
}
