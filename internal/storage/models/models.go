package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Lead 评分线索表
// 只追加不更新: 每次完成的评分请求落一条记录，后台读取用于导出与查看。
type Lead struct {
	LeadID         uint64         `gorm:"primaryKey;autoIncrement"`
	SubmissionUUID string         `gorm:"type:char(36);not null;uniqueIndex:idx_leads_submission_uuid"`
	SubmittedAt    time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_leads_submitted_at"`
	Name           string         `gorm:"type:varchar(255)"`
	Email          string         `gorm:"type:varchar(255);index:idx_leads_email"`
	Phone          string         `gorm:"type:varchar(50)"`
	TargetRole     string         `gorm:"type:varchar(100)"`
	ExtraKeywords  string         `gorm:"type:text"`
	Score          float64        `gorm:"type:float;not null"`
	Scheme         string         `gorm:"type:varchar(20);not null"`
	BreakdownJSON  datatypes.JSON `gorm:"type:json"`
	WordCount      int            `gorm:"type:int"`
	SourceChannel  string         `gorm:"type:varchar(100)"`
	OriginalPath   string         `gorm:"type:varchar(1024)"`
	CreatedAt      time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
}

func (Lead) TableName() string {
	return "leads"
}

// Breakdown 反序列化分项明细
func (l *Lead) Breakdown() (map[string]float64, error) {
	breakdown := make(map[string]float64)
	if len(l.BreakdownJSON) == 0 {
		return breakdown, nil
	}
	if err := json.Unmarshal(l.BreakdownJSON, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// FloatMapToJSON 将分项明细序列化为datatypes.JSON
func FloatMapToJSON(m map[string]float64) (datatypes.JSON, error) {
	if m == nil {
		return datatypes.JSON("{}"), nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
