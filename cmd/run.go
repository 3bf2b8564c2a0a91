package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haierkeys/simple-note-service/pkg/fileurl"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
}

// configCandidates 未指定配置文件时依次查找
var configCandidates = []string{
	"config/config-dev.yaml",
	"config.yaml",
	"config/config.yaml",
}

// defaultConfigPath 找不到配置文件时写出默认配置的位置
const defaultConfigPath = "config/config.yaml"

var errServerStopped = errors.New("service stopped unexpectedly")

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port]",
		Short: "Run service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
				} else {
					bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
				}
			}

			if len(runEnv.config) <= 0 {
				path, err := findOrCreateConfig()
				if err != nil {
					bootstrapLogger.Error("config file auto create error", zap.Error(err))
					return err
				}
				runEnv.config = path
			}

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Fatal("api service start err", zap.Error(err))
			}

			reload := make(chan struct{}, 1)
			w := watchConfig(runEnv.config, s.logger, reload)
			defer w.Close()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			for {
				select {
				case <-quit:
					s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
					if err := s.Close(); err != nil {
						s.logger.Error("Shutdown completed with error", zap.Error(err))
						return err
					}
					s.logger.Info("Service has been shut down gracefully.")
					return nil

				case <-reload:
					s.logger.Info("config changed, restarting service", zap.String("file", runEnv.config))
					if err := s.Close(); err != nil {
						s.logger.Warn("previous service closed with error", zap.Error(err))
					}
					next, err := NewServer(runEnv)
					if err != nil {
						bootstrapLogger.Error("service restart err", zap.Error(err))
						return err
					}
					s = next

				case <-s.Done():
					err := s.Close()
					s.logger.Error(errServerStopped.Error(), zap.Error(err))
					return errors.Join(errServerStopped, err)
				}
			}
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}

// findConfig returns the first existing candidate config file
// findConfig 返回第一个存在的配置文件
func findConfig() (string, bool) {
	for _, p := range configCandidates {
		if fileurl.IsExist(p) {
			return p, true
		}
	}
	return "", false
}

// findOrCreateConfig 查找配置文件，不存在时写出内置默认配置
func findOrCreateConfig() (string, error) {
	if p, ok := findConfig(); ok {
		return p, nil
	}

	bootstrapLogger.Warn("config file not found, creating default config")

	if err := fileurl.CreatePath(defaultConfigPath, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(defaultConfigPath, []byte(configDefault), 0666); err != nil {
		return "", err
	}
	bootstrapLogger.Info("config file auto create successfully", zap.String("path", defaultConfigPath))
	return defaultConfigPath, nil
}

// watchConfig signals reload whenever the config file is written
// watchConfig 监听配置文件写入并通知重启
func watchConfig(path string, lg *zap.Logger, reload chan<- struct{}) *watcher.Watcher {
	w := watcher.New()

	// 每个监听周期至多接收 1 个事件
	w.SetMaxEvents(1)
	// 只通知写入事件
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				lg.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				select {
				case reload <- struct{}{}:
				default:
				}
			case err := <-w.Error:
				lg.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.Add(path); err != nil {
		lg.Error("config watcher file error", zap.Error(err))
		return w
	}

	go func() {
		if err := w.Start(time.Second * 5); err != nil {
			lg.Error("config watcher start error", zap.Error(err))
		}
	}()

	return w
}
