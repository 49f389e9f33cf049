// Package logger 提供分级日志输出
//
// 调用方式与标准库 log.Printf 相同，消息前加组件标签：
//
//	logger.Info("[GameController] 进入关卡 %d", level)
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel})

// Init 初始化日志
// prefix 为应用名，level 取值 debug/info/warn/error（默认 info）
func Init(prefix string, level string) {
	logger = log.New(os.Stdout)
	logger.SetPrefix(prefix)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetLevel(ParseLevel(level))
}

// ParseLevel 解析日志级别字符串
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetOutput 重定向输出（测试与静默模式使用）
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Discard 关闭全部日志输出
func Discard() {
	logger.SetOutput(io.Discard)
}

// Debug 输出调试日志
func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Info 输出一般信息日志
func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warn 输出警告日志
func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Error 输出错误日志，不退出进程
func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Fatal 输出错误并退出进程
func Fatal(format string, args ...any) {
	logger.Fatalf(format, args...)
}
