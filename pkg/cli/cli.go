package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	ConfigPath string        // 設定ファイルのパス（YAML）
	LogLevel   string        // ログレベル（debug, info, warn, error）
	Debug      bool          // デバッグモード（ディスパッチログ＋オーバーレイ）
	Headless   bool          // ヘッドレスモード
	Timeout    time.Duration // タイムアウト時間（0は無制限）
	ShowHelp   bool          // ヘルプ表示フラグ
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// フラグ > 環境変数 > デフォルト の優先順
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("meikyu", flag.ContinueOnError)

	config := &Config{}

	var timeoutSec int
	fs.StringVar(&config.ConfigPath, "config", "", "設定ファイルのパス")
	fs.StringVar(&config.ConfigPath, "c", "", "設定ファイルのパス（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.BoolVar(&config.Debug, "debug", false, "デバッグモード")
	fs.BoolVar(&config.Headless, "headless", false, "ヘッドレスモード")
	fs.IntVar(&timeoutSec, "timeout", 0, "タイムアウト時間（秒）")
	fs.IntVar(&timeoutSec, "t", 0, "タイムアウト時間（秒）（短縮形）")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}

	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	// タイムアウトの検証
	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	return config, nil
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp() {
	fmt.Println(`meikyu - turn-based dungeon RPG (UI session demo)

Usage:
  meikyu [flags]

Flags:
  -config, -c <path>   path to YAML config file
  -log-level, -l       log level: debug, info, warn, error (default info)
  -debug               enable dispatch logging and the debug overlay
  -headless            run a bounded tick loop without a display
  -timeout, -t <sec>   terminate the session after this many seconds
  -help, -h            show this help

Environment:
  HEADLESS=1           same as -headless
  TIMEOUT=<sec>        same as -timeout
  LOG_LEVEL=<level>    same as -log-level`)
}
