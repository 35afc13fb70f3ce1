package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// 解析結果の出力ルート
	OutputDir string

	// 解析設定
	Analysis AnalysisConfig

	// Git設定
	Git GitConfig

	// ログ設定
	Log LogConfig
}

// AnalysisConfig は解析パイプラインの設定
type AnalysisConfig struct {
	Workers       int    // メトリクス抽出の並列数（0はCPU数）
	RulesFile     string // 解析ルールのYAMLファイル（空ならデフォルト）
	RespectIgnore bool   // .gitignore / .analyzerignore を解析に反映するか
}

// GitConfig はGit操作設定
type GitConfig struct {
	SSHKeyPath  string
	SSHPassword string // SSH秘密鍵のパスワード（パスフレーズ）
}

// LogConfig はログ出力設定
type LogConfig struct {
	Level  string // debug / info / warn / error
	Format string // text / json
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		OutputDir: getEnv("ANALYZER_OUTPUT_DIR", "analysis_output"),
		Analysis: AnalysisConfig{
			Workers:       getEnvAsInt("ANALYZER_WORKERS", 0),
			RulesFile:     getEnv("ANALYZER_RULES_FILE", ""),
			RespectIgnore: getEnvAsBool("ANALYZER_RESPECT_IGNORE", false),
		},
		Git: GitConfig{
			SSHKeyPath:  getEnv("GIT_SSH_KEY_PATH", ""),
			SSHPassword: getEnv("GIT_SSH_PASSWORD", ""),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("ANALYZER_LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("ANALYZER_LOG_FORMAT", "text")),
		},
	}

	if cfg.Analysis.Workers < 0 {
		return nil, fmt.Errorf("ANALYZER_WORKERS must not be negative: %d", cfg.Analysis.Workers)
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
