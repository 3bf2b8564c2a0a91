package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	internalApp "github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/internal/dao"
	"github.com/haierkeys/simple-note-service/internal/routers"
	"github.com/haierkeys/simple-note-service/pkg/code"
	"github.com/haierkeys/simple-note-service/pkg/logger"
	"github.com/haierkeys/simple-note-service/pkg/validator"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DefaultShutdownTimeout default shutdown timeout duration
// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// httpShutdownTimeout 单个 HTTP 服务器的关闭等待时间
const httpShutdownTimeout = 5 * time.Second

type Server struct {
	logger            *zap.Logger             // Logger // 日志对象
	config            *internalApp.AppConfig  // App configuration // 应用配置
	db                *gorm.DB                // Database connection // 数据库连接
	ut                *ut.UniversalTranslator // Translator // 翻译器
	httpServer        *http.Server
	privateHttpServer *http.Server
	app               *internalApp.App // App Container

	ctx       context.Context
	cancel    context.CancelFunc
	group     *errgroup.Group
	closeOnce sync.Once
	closeErr  error
}

func NewServer(runEnv *runFlags) (*Server, error) {

	// 加载配置（环境变量优先于文件）
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 命令行参数优先于配置文件与环境变量
	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = internalApp.NormalizeListen(runEnv.port)
	}
	if len(runEnv.runMode) > 0 {
		appConfig.Server.RunMode = runEnv.runMode
	}

	if len(appConfig.Server.RunMode) > 0 {
		gin.SetMode(appConfig.Server.RunMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{config: appConfig}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	if err := code.SetGlobalDefaultLang(appConfig.Server.Lang); err != nil {
		s.logger.Warn("server lang", zap.String("lang", appConfig.Server.Lang), zap.Error(err))
	}

	// 初始化数据库，DATABASE_URL 缺失时在这里失败
	db, err := dao.NewDBEngineWithConfig(appConfig.GetDatabaseConfig(), s.logger)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	uni, err := validator.Install()
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	banner := `
   _____ _                 __        _   __      __
  / ___/(_)___ ___  ____  / /__     / | / /___  / /____
  \__ \/ / __ '__ \/ __ \/ / _ \   /  |/ / __ \/ __/ _ \
 ___/ / / / / / / / /_/ / /  __/  / /|  / /_/ / /_/  __/
/____/_/_/ /_/ /_/ .___/_/\___/  /_/ |_/\____/\__/\___/
                /_/                                     `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	s.logger.Warn("config loaded", zap.String("path", configRealpath))

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.group, s.ctx = errgroup.WithContext(s.ctx)

	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.group.Go(func() error {
			return serveHTTP(s.ctx, s.logger, "api", s.httpServer)
		})
	}

	if httpAddr := appConfig.Server.PrivateHttpListen; len(httpAddr) > 0 {
		s.logger.Info("api_router", zap.String("config.server.PrivateHttpListen", httpAddr))
		s.privateHttpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewPrivateRouterWithApp(s.app),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.group.Go(func() error {
			return serveHTTP(s.ctx, s.logger, "private api", s.privateHttpServer)
		})
	}

	return s, nil
}

// serveHTTP runs srv until it fails or ctx is cancelled, then shuts it down
// serveHTTP 运行 HTTP 服务器，ctx 取消时优雅关闭
func serveHTTP(ctx context.Context, lg *zap.Logger, name string, srv *http.Server) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		lg.Error(name+" service err", zap.Error(err))
		return fmt.Errorf("%s service: %w", name, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Error(name+" service shutdown error", zap.Error(err))
		}
		return nil
	}
}

// Done is closed once any listener fails or Close is called
// Done 任一服务器异常退出或调用 Close 后关闭
func (s *Server) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Close stops the listeners, waits for them and then shuts the App Container down
// Close 停止监听并等待退出，然后优雅关闭 App Container
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		err := s.group.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		if shutdownErr := s.app.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error("failed to shutdown app container", zap.Error(shutdownErr))
			err = errors.Join(err, shutdownErr)
		} else {
			s.logger.Info("App container shutdown gracefully")
		}
		_ = s.logger.Sync()
		s.closeErr = err
	})
	return s.closeErr
}

// initLoggerWithConfig initializes logger (using injected config)
// initLoggerWithConfig 初始化日志器（使用注入的配置）
func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg

	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// GetApp gets App Container
// GetApp 获取 App Container
func (s *Server) GetApp() *internalApp.App {
	return s.app
}

// GetConfig gets app configuration
// GetConfig 获取应用配置
func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
