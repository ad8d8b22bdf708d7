package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-score-go/internal/api/handler"
	"resume-score-go/internal/api/router"
	"resume-score-go/internal/config"
	"resume-score-go/internal/constants"
	"resume-score-go/internal/extractor"
	appCoreLogger "resume-score-go/internal/logger"
	"resume-score-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 存储组件全部可选，初始化失败只降级不退出
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()
	glog.Info("存储服务初始化成功")

	textExtractor := buildExtractor(ctx, cfg)

	scoreHandler := handler.NewScoreHandler(cfg, storageManager, textExtractor)
	glog.Info("评分处理器初始化成功")

	// 线索消费者依赖RabbitMQ和MySQL，缺失时仅告警
	if storageManager.RabbitMQ != nil && storageManager.MySQL != nil {
		go func() {
			if err := scoreHandler.StartLeadConsumer(context.Background()); err != nil {
				glog.Errorf("启动线索消费者失败: %v", err)
			}
		}()
	} else {
		glog.Warn("RabbitMQ或MySQL未配置，线索落库消费者未启动")
	}

	maxBodyBytes := (cfg.Scoring.MaxFileSizeMB + 1) * 1024 * 1024
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(maxBodyBytes),
		server.WithHandleMethodNotAllowed(true),
	)

	router.RegisterRoutes(h, cfg, scoreHandler)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Fatalf("服务器关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	appCoreLogger.Logger = appCoreLogger.Logger.With().
		Str("app", constants.ServiceName).
		Str("version", constants.ServiceVersion).
		Logger()

	// Hertz的hlog走同一个zerolog实例
	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
}

// buildExtractor 组装文本提取链: 本地PDF解析优先, Tika兜底并独占DOCX
func buildExtractor(ctx context.Context, cfg *config.Config) extractor.TextExtractor {
	options := []extractor.CompositeOption{
		extractor.WithMaxFileSize(int64(cfg.Scoring.MaxFileSizeMB) * 1024 * 1024),
	}

	pdfExtractor, err := extractor.NewEinoPDFExtractor(ctx,
		extractor.WithEinoLogger(log.New(os.Stderr, "[EinoPDF] ", log.LstdFlags)))
	if err != nil {
		glog.Warnf("创建本地PDF提取器失败, PDF将完全依赖Tika: %v", err)
	} else {
		options = append(options, extractor.WithPDFExtractor(pdfExtractor))
	}

	if cfg.Tika.ServerURL != "" {
		tika := extractor.NewTikaExtractor(cfg.Tika.ServerURL,
			extractor.WithTimeout(time.Duration(cfg.Tika.Timeout)*time.Second),
			extractor.WithTikaLogger(log.New(os.Stderr, "[Tika] ", log.LstdFlags)))
		options = append(options, extractor.WithTikaFallback(tika))
		glog.Infof("Tika解析器已启用: %s", cfg.Tika.ServerURL)
	} else {
		glog.Warn("Tika未配置, DOCX解析不可用, PDF无兜底解析")
	}

	return extractor.NewCompositeExtractor(options...)
}
