// Package logger 构建编辑器和命令行工具共用的 logrus 日志记录器
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

// 日志文件滚动参数
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 7
)

// Config 日志配置
type Config struct {
	// Verbose 输出 Debug 级别日志
	Verbose bool
	// File 额外写入的日志文件，为空时只输出到终端
	File string
	// Output 终端输出目标，为 nil 时使用 os.Stderr
	Output io.Writer
}

// New 按配置创建日志记录器
//
// 终端使用带颜色的文本格式；指定文件时附加按大小滚动的 JSON 文件输出。
func New(cfg Config) (*logrus.Logger, error) {
	log := logrus.New()

	level := logrus.InfoLevel
	if cfg.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     out == os.Stderr,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	if cfg.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}

// Discard 返回丢弃全部输出的日志记录器
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
