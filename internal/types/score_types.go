package types

// ScoringRequest 一次评分请求的输入
// 每次提交构造一个实例，评分调用内部消费后即丢弃，核心不保留任何跨请求状态。
type ScoringRequest struct {
	// Text 已抽取的简历纯文本
	Text string
	// TargetRole 目标岗位名称，未知岗位回退到通用档案
	TargetRole string
	// ExtraKeywords 调用方附加关键词，逗号分隔，仅对本次请求生效
	ExtraKeywords string
	// JobDescription 可选的岗位描述文本
	JobDescription string
}

// ScoreBreakdown 按类目的分项得分
type ScoreBreakdown struct {
	// Categories 类目名到分项得分的映射，每项落在 [0, 类目上限] 内
	Categories map[string]float64 `json:"categories"`
	// WordCount 简历词数
	WordCount int `json:"word_count"`
}

// ScoreReport 一次评分的完整输出
type ScoreReport struct {
	// Total 总分，等于各分项之和，不做额外归一化
	Total float64 `json:"total"`
	// Scheme 使用的计分方案名
	Scheme string `json:"scheme"`
	// Breakdown 分项明细
	Breakdown ScoreBreakdown `json:"breakdown"`
	// Suggestions 去重后的改进建议，按流水线阶段顺序排列并截断
	Suggestions []string `json:"suggestions"`
}

// LeadScoredEvent 评分完成后发往消息队列的线索事件
type LeadScoredEvent struct {
	SubmissionUUID string             `json:"submission_uuid"`
	Timestamp      string             `json:"timestamp"` // ISO-8601 秒级精度
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	TargetRole     string             `json:"target_role"`
	ExtraKeywords  string             `json:"extra_keywords"`
	Score          float64            `json:"score"`
	Scheme         string             `json:"scheme"`
	Breakdown      map[string]float64 `json:"breakdown"`
	WordCount      int                `json:"word_count"`
	SourceChannel  string             `json:"source_channel"`
	OriginalPath   string             `json:"original_path,omitempty"` // MinIO中的原始文件路径
}
