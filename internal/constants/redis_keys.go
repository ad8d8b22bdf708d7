package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// FileModulePrefix 文件模块
	FileModulePrefix = "file"
	// ScoreModulePrefix 评分模块
	ScoreModulePrefix = "score"

	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityReport 评分报告实体
	EntityReport = "report"

	// KeyFileMD5Set 文件MD5集合，用于快速去重 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet

	// KeyScoreReport 按原始文件MD5缓存的评分报告 (STRING, JSON)
	// 格式: app:score:report:{md5}
	KeyScoreReport = AppPrefix + ":" + ScoreModulePrefix + ":" + EntityReport + ":%s"
)
