package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mahjong/bootstrap"
	"mahjong/pkg/config"
	"mahjong/pkg/database"
	"mahjong/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `启动 HTTP 服务，收到 SIGINT 或 SIGTERM 后优雅关闭并释放数据库与 Redis 连接。`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.SetupDB(true)
	if err != nil {
		return err
	}
	defer func() {
		logger.LogIf(database.Close(db))
	}()

	rds, err := bootstrap.SetupRedis(ctx)
	if err != nil {
		return err
	}
	if rds != nil {
		defer func() {
			logger.LogIf(rds.Close())
		}()
	}

	router, err := bootstrap.SetupRouter(db, rds, bootstrap.SetupAI())
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + config.Get("app.port"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoString("Server", "Start", "服务器正在启动，监听端口 "+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoString("Server", "Shutdown", "正在关闭服务器...")
	// AI 请求可能较慢，给进行中的请求留足时间
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server", zap.Error(err))
		return err
	}
	logger.InfoString("Server", "Shutdown", "服务器已成功关闭")
	return nil
}
