package scorer

import (
	"math"
	"regexp"
	"strings"
)

// 两文档TF-IDF余弦相似度
// 语料仅由简历文本与JD文本两篇文档构成，计算完全本地、确定，不依赖任何外部模型。

// tokenPattern 取长度>=2的连续词字符作为词元
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// englishStopWords 英文停用词，构建向量前剔除
var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
		"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "an",
		"and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around",
		"as", "at", "back", "be", "became", "because", "become", "becomes", "becoming", "been",
		"before", "beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "both",
		"bottom", "but", "by", "call", "can", "cannot", "could", "did", "do", "does",
		"doing", "done", "down", "due", "during", "each", "eight", "either", "eleven", "else",
		"elsewhere", "empty", "enough", "etc", "even", "ever", "every", "everyone", "everything", "everywhere",
		"except", "few", "fifteen", "fifty", "first", "five", "for", "former", "formerly", "forty",
		"found", "four", "from", "front", "full", "further", "get", "give", "go", "had",
		"has", "have", "he", "hence", "her", "here", "hereafter", "hereby", "herein", "hereupon",
		"hers", "herself", "him", "himself", "his", "how", "however", "hundred", "i", "if",
		"in", "indeed", "instead", "into", "is", "it", "its", "itself", "keep", "last",
		"latter", "latterly", "least", "less", "many", "may", "me", "meanwhile", "might", "mine",
		"more", "moreover", "most", "mostly", "move", "much", "must", "my", "myself", "name",
		"namely", "neither", "never", "nevertheless", "next", "nine", "no", "nobody", "none", "noone",
		"nor", "not", "nothing", "now", "nowhere", "of", "off", "often", "on", "once",
		"one", "only", "onto", "or", "other", "others", "otherwise", "our", "ours", "ourselves",
		"out", "over", "own", "part", "per", "perhaps", "please", "put", "rather", "re",
		"same", "see", "seem", "seemed", "seeming", "seems", "serious", "several", "she", "should",
		"since", "six", "sixty", "so", "some", "somehow", "someone", "something", "sometime", "sometimes",
		"somewhere", "still", "such", "take", "ten", "than", "that", "the", "their", "them",
		"themselves", "then", "thence", "there", "thereafter", "thereby", "therefore", "therein", "thereupon", "these",
		"they", "third", "this", "those", "though", "three", "through", "throughout", "thru", "thus",
		"to", "together", "too", "top", "toward", "towards", "twelve", "twenty", "two", "under",
		"until", "up", "upon", "us", "very", "via", "was", "we", "well", "were",
		"what", "whatever", "when", "whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein",
		"whereupon", "wherever", "whether", "which", "while", "whither", "who", "whoever", "whole", "whom",
		"whose", "why", "will", "with", "within", "without", "would", "yet", "you", "your",
		"yours", "yourself", "yourselves",
	}
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

// tokenize 小写化后切词并剔除停用词
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, stop := englishStopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// termFrequencies 统计词频
func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// DocumentSimilarity 计算两篇文本的TF-IDF余弦相似度, 结果落在[0,1]
// IDF采用平滑形式 ln((1+n)/(1+df))+1 (n=2)，向量做L2归一化后取点积。
// 任一文本分词后为空时返回0。相同输入必然得到相同结果。
func DocumentSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	tfA := termFrequencies(tokensA)
	tfB := termFrequencies(tokensB)

	// 合并全量词表并计算文档频率
	vocab := make([]string, 0, len(tfA)+len(tfB))
	seen := make(map[string]struct{}, len(tfA)+len(tfB))
	for t := range tfA {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			vocab = append(vocab, t)
		}
	}
	for t := range tfB {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			vocab = append(vocab, t)
		}
	}

	const docCount = 2.0
	vecA := make([]float64, len(vocab))
	vecB := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0.0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		idf := math.Log((1+docCount)/(1+df)) + 1
		vecA[i] = tfA[term] * idf
		vecB[i] = tfB[term] * idf
	}

	l2Normalize(vecA)
	l2Normalize(vecB)
	return cosineSimilarity(vecA, vecB)
}

// l2Normalize 就地将向量归一化到单位长度
func l2Normalize(v []float64) {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
}

// cosineSimilarity 计算两个向量的余弦相似度
func cosineSimilarity(v1, v2 []float64) float64 {
	if len(v1) != len(v2) {
		return 0
	}

	var dotProduct float64
	var norm1 float64
	var norm2 float64

	for i := 0; i < len(v1); i++ {
		dotProduct += v1[i] * v2[i]
		norm1 += v1[i] * v1[i]
		norm2 += v2[i] * v2[i]
	}

	// 避免除以零
	if norm1 == 0 || norm2 == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(norm1) * math.Sqrt(norm2))
}
