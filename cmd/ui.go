package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	internalApp "github.com/haierkeys/simple-note-service/internal/app"
	"github.com/haierkeys/simple-note-service/internal/webui"
	"github.com/haierkeys/simple-note-service/pkg/client"
	"github.com/haierkeys/simple-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type uiFlags struct {
	config string // 配置文件路径
	apiURL string // 后端服务地址，优先于 API_URL
	port   string // 监听地址
}

func init() {
	uiEnv := new(uiFlags)

	var uiCommand = &cobra.Command{
		Use:   "ui [-c config_file] [-a api_url] [-p port]",
		Short: "Run the form based notes client",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadUIConfig(uiEnv)
			if err != nil {
				bootstrapLogger.Error("ui config load err", zap.Error(err))
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			if cfg.Server.RunMode == gin.DebugMode {
				gin.SetMode(gin.DebugMode)
			}

			lg, err := logger.NewLogger(logger.Config{
				Level:      cfg.Log.Level,
				Production: cfg.Log.Production,
			})
			if err != nil {
				return fmt.Errorf("initLogger: %w", err)
			}
			defer func() { _ = lg.Sync() }()

			timeout := cfg.GetUITimeout()
			api := client.New(cfg.UI.ApiUrl, client.WithTimeout(timeout))

			handler, err := webui.New(api, lg, timeout).Router()
			if err != nil {
				return fmt.Errorf("webui: %w", err)
			}

			srv := &http.Server{
				Addr:           cfg.UI.HttpPort,
				Handler:        handler,
				MaxHeaderBytes: 1 << 20,
			}

			lg.Warn("ui client", zap.String("listen", cfg.UI.HttpPort), zap.String("api", api.BaseURL()))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := serveHTTP(ctx, lg, "ui", srv); err != nil {
				return err
			}
			lg.Info("ui client has been shut down gracefully.")
			return nil
		},
	}

	rootCmd.AddCommand(uiCommand)
	fs := uiCommand.Flags()
	fs.StringVarP(&uiEnv.config, "config", "c", "", "config file")
	fs.StringVarP(&uiEnv.apiURL, "api", "a", "", "backend url, overrides API_URL")
	fs.StringVarP(&uiEnv.port, "port", "p", "", "listen port")
}

// loadUIConfig 加载客户端配置：配置文件可选，命令行参数优先
func loadUIConfig(f *uiFlags) (*internalApp.AppConfig, error) {
	path := f.config
	if path == "" {
		path, _ = findConfig()
	}

	var (
		cfg *internalApp.AppConfig
		err error
	)
	if path != "" {
		cfg, _, err = internalApp.LoadConfig(path)
	} else {
		cfg, err = internalApp.DefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	if f.apiURL != "" {
		cfg.UI.ApiUrl = f.apiURL
	}
	if f.port != "" {
		cfg.UI.HttpPort = internalApp.NormalizeListen(f.port)
	}
	return cfg, nil
}
