package router

import (
	"context"
	"errors"
	"io"
	"strconv"

	"resume-score-go/internal/api/handler"
	"resume-score-go/internal/config"
	"resume-score-go/internal/constants"
	"resume-score-go/internal/extractor"
	"resume-score-go/pkg/ratelimit"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/hertz-contrib/keyauth"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, scoreHandler *handler.ScoreHandler) {
	h.Use(requestIDMiddleware())

	api := h.Group("/api/v1")

	scoreGroup := api.Group("/resume")
	if cfg.Server.RateLimitPerMinute > 0 {
		scoreGroup.Use(rateLimitMiddleware(cfg.Server.RateLimitPerMinute))
	}

	scoreGroup.POST("/score", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		fileBytes, err := io.ReadAll(file)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "读取文件失败"})
			return
		}

		sub := handler.ScoreSubmission{
			Filename:       fileHeader.Filename,
			Name:           ctx.PostForm("name"),
			Email:          ctx.PostForm("email"),
			Phone:          ctx.PostForm("phone"),
			TargetRole:     ctx.PostForm("target_role"),
			ExtraKeywords:  ctx.PostForm("extra_keywords"),
			JobDescription: ctx.PostForm("job_description"),
			Scheme:         ctx.PostForm("scheme"),
			SourceChannel:  ctx.PostForm("source_channel"),
		}

		resp, err := scoreHandler.HandleScoreSubmission(c, fileBytes, sub)
		if err != nil {
			ctx.JSON(statusForExtractError(err), utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/roles", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{
			"roles":        scoreHandler.RoleNames(),
			"default_role": constants.DefaultRole,
		})
	})

	// 管理端接口，未配置API Key时不注册
	if cfg.Server.AdminAPIKey != "" {
		admin := api.Group("/leads", adminAuthMiddleware(cfg.Server.AdminAPIKey))

		admin.GET("/recent", func(c context.Context, ctx *app.RequestContext) {
			limit := 0
			if raw := ctx.Query("limit"); raw != "" {
				if parsed, err := strconv.Atoi(raw); err == nil {
					limit = parsed
				}
			}

			leads, err := scoreHandler.RecentLeads(c, limit)
			if err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusOK, utils.H{"leads": leads, "count": len(leads)})
		})

		admin.GET("/export", func(c context.Context, ctx *app.RequestContext) {
			ctx.Response.Header.Set("Content-Type", "text/csv; charset=utf-8")
			ctx.Response.Header.Set("Content-Disposition", `attachment; filename="leads.csv"`)

			writer := ctx.Response.BodyWriter()
			if err := scoreHandler.ExportLeadsCSV(c, writer); err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
				return
			}
			ctx.SetStatusCode(consts.StatusOK)
		})
	}

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok", "service": constants.ServiceName})
	})
}

// requestIDMiddleware 为每个请求分配唯一的请求ID，透传调用方自带的ID
func requestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		requestID := string(ctx.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set("request_id", requestID)
		ctx.Response.Header.Set("X-Request-ID", requestID)
		ctx.Next(c)
	}
}

// rateLimitMiddleware 按客户端IP限流
func rateLimitMiddleware(ratePerMinute int) app.HandlerFunc {
	limiter := ratelimit.NewPerClientLimiter(ratePerMinute, 0)
	return func(c context.Context, ctx *app.RequestContext) {
		if !limiter.Allow(ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(consts.StatusTooManyRequests, utils.H{
				"error": "请求过于频繁，请稍后重试",
			})
			return
		}
		ctx.Next(c)
	}
}

// adminAuthMiddleware 管理端接口的API Key校验
func adminAuthMiddleware(adminKey string) app.HandlerFunc {
	return keyauth.New(
		keyauth.WithKeyLookUp("header:X-API-Key", ""),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			return key == adminKey, nil
		}),
		keyauth.WithErrorHandler(func(ctx context.Context, c *app.RequestContext, err error) {
			c.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "无效的API Key"})
		}),
	)
}

// statusForExtractError 将提取错误映射为HTTP状态码
func statusForExtractError(err error) int {
	switch {
	case errors.Is(err, extractor.ErrEmptyFile):
		return consts.StatusBadRequest
	case errors.Is(err, extractor.ErrFileTooLarge):
		return consts.StatusRequestEntityTooLarge
	case errors.Is(err, extractor.ErrUnsupportedType):
		return consts.StatusUnsupportedMediaType
	case errors.Is(err, extractor.ErrPasswordProtected),
		errors.Is(err, extractor.ErrScannedDocument),
		errors.Is(err, extractor.ErrUnreadable):
		return consts.StatusUnprocessableEntity
	case errors.Is(err, extractor.ErrDecoderUnavailable):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}
