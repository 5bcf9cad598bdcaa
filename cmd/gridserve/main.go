// cmd/gridserve/main.go
// 网格渲染 HTTP 服务：POST 文档 JSON，返回 PNG 或 SVG
//
// 用法：
//
//	go run ./cmd/gridserve --addr=:8080
//	curl -X POST --data-binary @grid.json 'localhost:8080/render?format=svg'
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/minegrid/pkg/config"
	"github.com/decker502/minegrid/pkg/logger"
	"github.com/decker502/minegrid/pkg/render"
)

var (
	addr       = flag.String("addr", ":8080", "监听地址")
	configPath = flag.String("config", "editor.yaml", "编辑器配置文件路径")
	verbose    = flag.Bool("verbose", false, "详细日志")
	logFile    = flag.String("log-file", "", "日志文件路径")
)

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	log, err := logger.New(logger.Config{Verbose: *verbose, File: *logFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(mainCtx, log); err != nil {
		log.Printf("exit reason: %s", err)
	}
}

func run(ctx context.Context, log *logrus.Logger) error {
	cfg, err := config.LoadEditorConfig(*configPath)
	if err != nil {
		return err
	}
	textFont, bombFont, err := render.LoadConfiguredFonts(cfg.Fonts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           NewServer(cfg, textFont, bombFont, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	log.Infof("ready to serve @ %s", *addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
