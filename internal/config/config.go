package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr   string
	Port         string
	DatabasePath string
	CacheDir     string
	AppVersion   string
	GinMode      string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// CacheDir 用于存放导出的备份文件，属于可被系统随时回收的临时目录。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "urgelog.db"
	}

	cacheDir := strings.TrimSpace(os.Getenv("CACHE_DIR"))
	if cacheDir == "" {
		cacheDir = os.TempDir()
	}

	appVersion := strings.TrimSpace(os.Getenv("APP_VERSION"))
	if appVersion == "" {
		appVersion = "dev"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	return AppConfig{
		ListenAddr:   listenAddr,
		Port:         port,
		DatabasePath: databasePath,
		CacheDir:     cacheDir,
		AppVersion:   appVersion,
		GinMode:      ginMode,
	}
}
