// Package cmd 命令行入口
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mahjong/bootstrap"
	btsConfig "mahjong/config"
	"mahjong/pkg/config"
)

// env 加载 .env 文件，例如 --env=testing 将加载 .env.testing 文件
var env string

var rootCmd = &cobra.Command{
	Use:   "mahjong",
	Short: "Mahjong seating direction predictor",
	Long:  `麻将方位测算服务：每日运势、个人方位测算和历史记录。`,

	// 所有子命令执行前先加载配置和日志
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitConfig(env)
		bootstrap.SetupLogger()
	},

	// 不带子命令时启动服务
	RunE: runServe,
}

func init() {
	// 加载 config 目录下的配置信息
	btsConfig.Initialize()

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "加载 .env 文件，例如 --env=testing 将加载 .env.testing 文件")
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
