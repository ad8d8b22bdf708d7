package constants

import "time"

const (
	// 应用级常量
	ServiceName    = "resume-score-go"
	ServiceVersion = "1.0.0"

	// SchemeClassic 经典计分方案（Structure 20 / Keywords 30 / Impact 20 / Education 10 / ATS 10 / Formatting 10）
	SchemeClassic = "classic"
	// SchemeResearch 研究版计分方案（JD 35 / Keywords 25 / Structure 15 / Impact 15 / ATS 10 / Education 5）
	SchemeResearch = "research"

	// DefaultRole 未指定目标岗位时使用的角色档案
	DefaultRole = "General / Fresher"

	// DefaultSourceChannel 默认来源渠道
	DefaultSourceChannel = "web_upload"

	// DefaultMaxFileSizeMB 上传文件大小上限（MB）
	DefaultMaxFileSizeMB = 5

	// ScoreCacheDuration 评分结果缓存过期时间
	ScoreCacheDuration = 24 * time.Hour

	// LeadTimestampLayout 线索时间戳格式, ISO-8601 秒级精度
	LeadTimestampLayout = "2006-01-02T15:04:05"
)
