package cmd

import (
	"fmt"
	"os"

	internalApp "github.com/haierkeys/simple-note-service/internal/app"

	"github.com/spf13/cobra"
)

// configDefault embedded default config, written out when no config file exists
// configDefault 内置默认配置，找不到配置文件时写出
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "simple-note-service",
	Short: internalApp.Description,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
