package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"resume-score-go/internal/api/handler"
	"resume-score-go/internal/api/router"
	"resume-score-go/internal/config"
	"resume-score-go/internal/constants"
	"resume-score-go/internal/extractor"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(_ context.Context, _ []byte, _ string) (string, error) {
	return s.text, s.err
}

const stubResumeText = `Jane Doe
jane@example.com

Summary
Go developer.

Skills
Go, Docker, Kubernetes`

func newTestEngine(t *testing.T, mutate func(*config.Config), ext extractor.TextExtractor) *server.Hertz {
	t.Helper()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Server.RateLimitPerMinute = 0
	if mutate != nil {
		mutate(cfg)
	}

	if ext == nil {
		ext = &stubExtractor{text: stubResumeText}
	}

	h := server.Default(server.WithHostPorts("127.0.0.1:0"))
	router.RegisterRoutes(h, cfg, handler.NewScoreHandler(cfg, nil, ext))
	return h
}

func createMultipartForm(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 dummy content"))
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHealthRoute(t *testing.T) {
	h := newTestEngine(t, nil, nil)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, constants.ServiceName, payload["service"])
}

func TestRolesRoute(t *testing.T) {
	h := newTestEngine(t, nil, nil)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/roles", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Roles       []string `json:"roles"`
		DefaultRole string   `json:"default_role"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.Roles)
	assert.Equal(t, constants.DefaultRole, payload.DefaultRole)
}

func TestScoreRoute(t *testing.T) {
	h := newTestEngine(t, nil, nil)

	body, contentType := createMultipartForm(t, "resume.pdf", map[string]string{
		"name":        "Jane Doe",
		"target_role": "Backend Developer",
	})

	resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/resume/score",
		&ut.Body{Body: body, Len: body.Len()},
		ut.Header{Key: "Content-Type", Value: contentType},
	)
	require.Equal(t, http.StatusOK, resp.Code, "评分请求应成功: %s", resp.Body.String())

	var scoreResp handler.ScoreSubmissionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &scoreResp))
	assert.Equal(t, "SCORED", scoreResp.Status)
	assert.NotEmpty(t, scoreResp.SubmissionUUID)
	require.NotNil(t, scoreResp.Report)
	assert.GreaterOrEqual(t, scoreResp.Report.Total, 0.0)
}

func TestScoreRouteMissingFile(t *testing.T) {
	h := newTestEngine(t, nil, nil)

	resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/resume/score", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestScoreRouteExtractErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"空文件", extractor.NewEmptyFileError("a.pdf"), http.StatusBadRequest},
		{"文件过大", extractor.NewFileTooLargeError("a.pdf", "too big"), http.StatusRequestEntityTooLarge},
		{"类型不支持", extractor.NewUnsupportedTypeError("a.xls", ".xls"), http.StatusUnsupportedMediaType},
		{"加密文档", extractor.NewPasswordProtectedError("a.pdf", "encrypted"), http.StatusUnprocessableEntity},
		{"扫描件", extractor.NewScannedDocumentError("a.pdf", "no text layer"), http.StatusUnprocessableEntity},
		{"解析器不可用", extractor.NewDecoderUnavailableError("a.docx", "tika down"), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestEngine(t, nil, &stubExtractor{err: tc.err})

			body, contentType := createMultipartForm(t, "resume.pdf", nil)
			resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/resume/score",
				&ut.Body{Body: body, Len: body.Len()},
				ut.Header{Key: "Content-Type", Value: contentType},
			)
			assert.Equal(t, tc.wantStatus, resp.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestEngine(t, func(cfg *config.Config) {
		cfg.Server.RateLimitPerMinute = 2
	}, nil)

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		body, contentType := createMultipartForm(t, "resume.pdf", nil)
		resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/resume/score",
			&ut.Body{Body: body, Len: body.Len()},
			ut.Header{Key: "Content-Type", Value: contentType},
		)
		statuses = append(statuses, resp.Code)
	}

	assert.Contains(t, statuses, http.StatusTooManyRequests, "超出配额的请求应被限流")
	assert.Equal(t, http.StatusOK, statuses[0], "首个请求不应被限流")
}

func TestAdminRoutesAuth(t *testing.T) {
	h := newTestEngine(t, func(cfg *config.Config) {
		cfg.Server.AdminAPIKey = "test-admin-key"
	}, nil)

	// 无Key
	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/leads/recent", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// 错误的Key
	resp = ut.PerformRequest(h.Engine, "GET", "/api/v1/leads/recent", nil,
		ut.Header{Key: "X-API-Key", Value: "wrong-key"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// 正确的Key，但未配置MySQL，进入业务层后报错
	resp = ut.PerformRequest(h.Engine, "GET", "/api/v1/leads/recent", nil,
		ut.Header{Key: "X-API-Key", Value: "test-admin-key"})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestAdminRoutesAbsentWithoutKey(t *testing.T) {
	h := newTestEngine(t, nil, nil)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/leads/recent", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code, "未配置API Key时管理端路由不应注册")
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestEngine(t, nil, nil)

	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"), "响应应携带请求ID")

	resp = ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil,
		ut.Header{Key: "X-Request-ID", Value: "caller-supplied-id"})
	assert.Equal(t, "caller-supplied-id", resp.Header().Get("X-Request-ID"), "调用方自带的请求ID应透传")
}
