package internal

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// MCP mode owns stdout, so diagnostics go to a file in the cache dir
var (
	mcpLogger     = log.New(io.Discard, "", 0)
	mcpLoggerOnce sync.Once
)

// InitMCPLogging opens $CacheDir/mcp.log when mcp_log is enabled and
// returns the log path, or "" when logging stays off
func InitMCPLogging(config *Config) string {
	var logPath string
	mcpLoggerOnce.Do(func() {
		if !config.MCPLogEnabled {
			return
		}
		if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
			return
		}

		path := filepath.Join(config.CacheDir, "mcp.log")
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}

		mcpLogger = log.New(logFile, "[MCP] ", log.LstdFlags|log.Lmicroseconds)
		logPath = path
	})
	return logPath
}

func mcpLogf(level, format string, args ...any) {
	mcpLogger.Printf("[%s] "+format, append([]any{level}, args...)...)
}

// MCPLogInfo logs an info message
func MCPLogInfo(format string, args ...any) {
	mcpLogf("INFO", format, args...)
}

// MCPLogError logs an error message
func MCPLogError(format string, args ...any) {
	mcpLogf("ERROR", format, args...)
}
