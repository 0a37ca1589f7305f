package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-analyzer/internal/api/handler"
	"resume-analyzer/internal/api/router"
	"resume-analyzer/internal/config"
	"resume-analyzer/internal/constants"
	"resume-analyzer/internal/logger"
	"resume-analyzer/internal/processor"
	"resume-analyzer/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	logger.Init(logger.Config(cfg.Logger))
	logger.SetupHertz()
	logger.Info().Str("service", constants.ServiceName).Str("version", constants.Version).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化 tracing 失败")
	}

	// 技能词表和岗位描述只在启动时加载一次，缺失即退出
	res, err := cfg.LoadResources()
	if err != nil {
		logger.Fatal().Err(err).Msg("加载静态资源失败")
	}
	logger.Info().
		Str("skills_file", res.Skills.Source()).
		Int("skills", res.Skills.Len()).
		Str("job_description_file", res.JobDescription.Source()).
		Msg("静态资源加载成功")

	analyzer, err := processor.BuildResumeAnalyzer(ctx, cfg, res, logger.Logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化简历分析器失败")
	}
	analyzeHandler := handler.NewAnalyzeHandler(analyzer)
	logger.Info().Str("pdf_engine", cfg.Parser.PDFEngine).Msg("简历分析器初始化成功")

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(cfg.MaxRequestBodySize()),
		server.WithHandleMethodNotAllowed(true),
		server.WithExitWaitTime(time.Duration(cfg.Server.ExitWaitSeconds)*time.Second),
		tracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		glog.CtxInfof(c, "%s %s -> %d (%s)", string(ctx.Method()), string(ctx.Path()), ctx.Response.StatusCode(), time.Since(start))
	})

	router.RegisterRoutes(h, analyzeHandler)
	logger.Info().Msg("HTTP路由注册成功")

	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("HTTP 服务器启动中")
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("tracing 关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}
