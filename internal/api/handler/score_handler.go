package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resume-score-go/internal/config"
	"resume-score-go/internal/constants"
	"resume-score-go/internal/extractor"
	"resume-score-go/internal/logger"
	"resume-score-go/internal/scorer"
	storage2 "resume-score-go/internal/storage"
	"resume-score-go/internal/storage/models"
	"resume-score-go/internal/types"
	"resume-score-go/pkg/utils"

	"github.com/gofrs/uuid/v5"
)

// ScoreHandler 评分处理器，负责协调一次简历评分的完整流程
type ScoreHandler struct {
	cfg       *config.Config
	storage   *storage2.Storage // 聚合的storage实例，任何组件都可能为nil
	extractor extractor.TextExtractor
	vocab     *scorer.Vocabulary
	engines   map[string]*scorer.Engine // 按方案名预构建，方案是静态的
}

// NewScoreHandler 创建一个新的评分处理器
func NewScoreHandler(
	cfg *config.Config,
	storage *storage2.Storage,
	textExtractor extractor.TextExtractor,
) *ScoreHandler {
	vocab := scorer.DefaultVocabulary()
	if len(cfg.Scoring.RoleKeywords) > 0 {
		vocab = scorer.NewVocabulary(cfg.Scoring.RoleKeywords)
	}

	engines := make(map[string]*scorer.Engine, 2)
	for _, name := range []string{constants.SchemeClassic, constants.SchemeResearch} {
		scheme, _ := scorer.SchemeByName(name)
		engines[name] = scorer.NewEngine(vocab, scheme)
	}

	return &ScoreHandler{
		cfg:       cfg,
		storage:   storage,
		extractor: textExtractor,
		vocab:     vocab,
		engines:   engines,
	}
}

// ScoreSubmission 一次评分提交的表单字段
type ScoreSubmission struct {
	Filename       string
	Name           string
	Email          string
	Phone          string
	TargetRole     string
	ExtraKeywords  string
	JobDescription string
	Scheme         string
	SourceChannel  string
}

// ScoreSubmissionResponse 评分提交响应
type ScoreSubmissionResponse struct {
	SubmissionUUID string             `json:"submission_uuid"`
	Status         string             `json:"status"`
	Report         *types.ScoreReport `json:"report"`
}

// HandleScoreSubmission 处理一次简历评分提交
// 评分核心是同步的；MinIO归档、结果缓存和线索事件发布都是尽力而为，
// 任何存储组件缺失或失败都不影响评分结果的返回。
func (h *ScoreHandler) HandleScoreSubmission(ctx context.Context, fileBytes []byte, sub ScoreSubmission) (*ScoreSubmissionResponse, error) {
	fileMD5Hex := utils.CalculateMD5(fileBytes)

	// 文件MD5去重：命中且有缓存结果时直接返回，避免重复解析
	var md5Recorded bool
	if h.storage != nil && h.storage.Redis != nil {
		exists, err := h.storage.Redis.CheckAndAddFileMD5(ctx, fileMD5Hex)
		if err != nil {
			// Redis不可用时去重失效但评分照常进行
			logger.Warn().
				Err(err).
				Str("md5", fileMD5Hex).
				Msg("查询Redis文件MD5 Set失败，跳过去重")
		} else if exists {
			if report, cacheErr := h.storage.Redis.GetCachedScoreReport(ctx, fileMD5Hex); cacheErr == nil {
				logger.Info().
					Str("md5", fileMD5Hex).
					Str("filename", sub.Filename).
					Msg("检测到重复的文件MD5，返回缓存的评分结果")
				return &ScoreSubmissionResponse{
					Status: "DUPLICATE_FILE_CACHED",
					Report: report,
				}, nil
			}
			// 缓存已过期则重新评分，MD5已在Set中无需再记录
		} else {
			md5Recorded = true
		}
	}

	// 提取文本；失败时回收刚写入的MD5记录，修复后的重新提交不应被去重拦截
	text, err := h.extractor.Extract(ctx, fileBytes, sub.Filename)
	if err != nil {
		if md5Recorded {
			if rmErr := h.storage.Redis.RemoveFileMD5(ctx, fileMD5Hex); rmErr != nil {
				logger.Warn().
					Err(rmErr).
					Str("md5", fileMD5Hex).
					Msg("提取失败后回收文件MD5记录失败")
			}
		}
		return nil, err
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	engine, schemeName := h.engineFor(sub.Scheme)
	report := engine.Score(&types.ScoringRequest{
		Text:           text,
		TargetRole:     sub.TargetRole,
		ExtraKeywords:  sub.ExtraKeywords,
		JobDescription: sub.JobDescription,
	})

	sourceChannel := sub.SourceChannel
	if sourceChannel == "" {
		sourceChannel = constants.DefaultSourceChannel
	}

	// 以下均为尽力而为的旁路操作
	var originalPath string
	if h.storage != nil && h.storage.MinIO != nil {
		ext := filepath.Ext(utils.SanitizeFilename(sub.Filename))
		if ext == "" {
			ext = ".pdf"
		}
		objectKey, _, upErr := h.storage.MinIO.UploadOriginalFile(ctx, submissionUUID, ext, fileBytes)
		if upErr != nil {
			logger.Warn().
				Err(upErr).
				Str("submission_uuid", submissionUUID).
				Msg("归档原始文件到MinIO失败")
		} else {
			originalPath = objectKey
		}
	}

	if h.storage != nil && h.storage.Redis != nil {
		if cacheErr := h.storage.Redis.CacheScoreReport(ctx, fileMD5Hex, report); cacheErr != nil {
			logger.Warn().
				Err(cacheErr).
				Str("md5", fileMD5Hex).
				Msg("缓存评分结果失败")
		}
	}

	if h.storage != nil && h.storage.RabbitMQ != nil {
		event := &types.LeadScoredEvent{
			SubmissionUUID: submissionUUID,
			Timestamp:      time.Now().Format(constants.LeadTimestampLayout),
			Name:           sub.Name,
			Email:          sub.Email,
			Phone:          sub.Phone,
			TargetRole:     sub.TargetRole,
			ExtraKeywords:  sub.ExtraKeywords,
			Score:          report.Total,
			Scheme:         schemeName,
			Breakdown:      report.Breakdown.Categories,
			WordCount:      report.Breakdown.WordCount,
			SourceChannel:  sourceChannel,
			OriginalPath:   originalPath,
		}
		if pubErr := h.storage.RabbitMQ.PublishLeadScored(ctx, event); pubErr != nil {
			logger.Warn().
				Err(pubErr).
				Str("submission_uuid", submissionUUID).
				Msg("发布线索事件到RabbitMQ失败")
		}
	}

	return &ScoreSubmissionResponse{
		SubmissionUUID: submissionUUID,
		Status:         "SCORED",
		Report:         report,
	}, nil
}

// engineFor 按方案名取预构建的引擎，未知方案名回退到配置的默认方案
func (h *ScoreHandler) engineFor(schemeName string) (*scorer.Engine, string) {
	name := strings.ToLower(strings.TrimSpace(schemeName))
	if _, ok := h.engines[name]; !ok {
		name = h.cfg.Scoring.DefaultScheme
		if _, ok := h.engines[name]; !ok {
			name = constants.SchemeClassic
		}
	}
	return h.engines[name], name
}

// RoleNames 返回所有可选的目标岗位名称
func (h *ScoreHandler) RoleNames() []string {
	return h.vocab.RoleNames()
}

// RecentLeads 返回最近的线索记录
func (h *ScoreHandler) RecentLeads(ctx context.Context, limit int) ([]models.Lead, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, fmt.Errorf("线索存储未配置")
	}
	return h.storage.MySQL.RecentLeads(ctx, limit)
}

// ExportLeadsCSV 将全部线索按提交时间升序写出为CSV
func (h *ScoreHandler) ExportLeadsCSV(ctx context.Context, w io.Writer) error {
	if h.storage == nil || h.storage.MySQL == nil {
		return fmt.Errorf("线索存储未配置")
	}

	leads, err := h.storage.MySQL.AllLeads(ctx)
	if err != nil {
		return fmt.Errorf("查询全部线索失败: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{
		"submission_uuid", "submitted_at", "name", "email", "phone",
		"target_role", "extra_keywords", "score", "scheme",
		"word_count", "source_channel", "original_path",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("写CSV表头失败: %w", err)
	}

	for _, lead := range leads {
		record := []string{
			lead.SubmissionUUID,
			lead.SubmittedAt.Format(constants.LeadTimestampLayout),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.TargetRole,
			lead.ExtraKeywords,
			strconv.FormatFloat(lead.Score, 'f', 1, 64),
			lead.Scheme,
			strconv.Itoa(lead.WordCount),
			lead.SourceChannel,
			lead.OriginalPath,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("写CSV记录失败: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// StartLeadConsumer 启动线索事件消费者，将评分事件落库到MySQL
func (h *ScoreHandler) StartLeadConsumer(ctx context.Context) error {
	if h.storage == nil || h.storage.RabbitMQ == nil {
		return fmt.Errorf("RabbitMQ未配置，无法启动线索消费者")
	}
	if h.storage.MySQL == nil {
		return fmt.Errorf("MySQL未配置，无法启动线索消费者")
	}

	if err := h.storage.RabbitMQ.EnsureLeadTopology(); err != nil {
		return fmt.Errorf("确保线索队列拓扑失败: %w", err)
	}

	logger.Info().
		Str("queue", h.cfg.RabbitMQ.LeadQueue).
		Int("prefetch_count", h.cfg.RabbitMQ.PrefetchCount).
		Msg("线索消费者就绪")

	_, err := h.storage.RabbitMQ.StartConsumer(h.cfg.RabbitMQ.LeadQueue, h.cfg.RabbitMQ.PrefetchCount, func(data []byte) bool {
		var event types.LeadScoredEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Error().Err(err).Msg("解析线索事件失败")
			return false
		}

		lead, err := leadFromEvent(&event)
		if err != nil {
			logger.Error().
				Err(err).
				Str("submission_uuid", event.SubmissionUUID).
				Msg("线索事件转换失败")
			return false
		}

		if err := h.storage.MySQL.AppendLead(ctx, lead); err != nil {
			logger.Error().
				Err(err).
				Str("submission_uuid", event.SubmissionUUID).
				Msg("追加线索记录失败")
			return false
		}

		return true
	})
	if err != nil {
		return fmt.Errorf("启动消费者失败: %w", err)
	}

	return nil
}

// leadFromEvent 将线索事件转换为落库模型
func leadFromEvent(event *types.LeadScoredEvent) (*models.Lead, error) {
	if event.SubmissionUUID == "" {
		return nil, errors.New("线索事件缺少submission_uuid")
	}

	submittedAt, err := time.Parse(constants.LeadTimestampLayout, event.Timestamp)
	if err != nil {
		// 时间戳格式异常时用接收时间兜底，不丢弃线索
		logger.Warn().
			Str("submission_uuid", event.SubmissionUUID).
			Str("timestamp", event.Timestamp).
			Msg("线索事件时间戳格式异常，使用当前时间")
		submittedAt = time.Now()
	}

	breakdownJSON, err := models.FloatMapToJSON(event.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("序列化分项明细失败: %w", err)
	}

	return &models.Lead{
		SubmissionUUID: event.SubmissionUUID,
		SubmittedAt:    submittedAt,
		Name:           event.Name,
		Email:          event.Email,
		Phone:          event.Phone,
		TargetRole:     event.TargetRole,
		ExtraKeywords:  event.ExtraKeywords,
		Score:          event.Score,
		Scheme:         event.Scheme,
		BreakdownJSON:  breakdownJSON,
		WordCount:      event.WordCount,
		SourceChannel:  event.SourceChannel,
		OriginalPath:   event.OriginalPath,
	}, nil
}
