package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"powBlockchain/blockchain"
	"powBlockchain/utils"
)

// ErrInvalidConfig 配置不合法
var ErrInvalidConfig = errors.New("invalid configuration")

// Configuration struct represents the configuration
type Configuration struct {
	MinerName string // 为空时从标准输入读取

	Difficulty      int
	MaxAttempts     int
	AbandonPauseMs  int64
	HashAlgo        string
	RejectAbandoned bool

	CoinsPerBlock int

	DbType string // "none"、"leveldb" 或 "bolt"
	DbDir  string // bolt临时文件目录

	LogLevel string
	LogFile  string

	// 区块浏览器，Address为空时不启动
	Address      string
	ReadTimeout  int64
	WriteTimeout int64
}

// Cfg data
var Cfg = Default()

// Default 返回默认配置
func Default() Configuration {
	chain := blockchain.DefaultConfig()
	return Configuration{
		Difficulty:     chain.Difficulty,
		MaxAttempts:    chain.MaxAttempts,
		AbandonPauseMs: chain.AbandonPause.Milliseconds(),
		HashAlgo:       chain.HashAlgo,
		CoinsPerBlock:  137,
		DbType:         "leveldb",
		LogLevel:       "info",
		ReadTimeout:    10,
		WriteTimeout:   10,
	}
}

// InitConfig 初始化配置
func InitConfig(filePath, envFile string) error {
	cfg, err := Load(filePath, envFile)
	if err != nil {
		return err
	}
	Cfg = cfg
	return nil
}

// Load 依次读取JSON配置文件、.env文件和BEK_*环境变量，后者覆盖前者。
// filePath为空时跳过配置文件，envFile不存在时忽略。
func Load(filePath, envFile string) (Configuration, error) {
	cfg := Default()

	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return cfg, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", filePath, err)
		}
	}

	if envFile != "" {
		// godotenv不会覆盖已经存在的环境变量
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Configuration) error {
	strs := map[string]*string{
		"BEK_MINER":     &cfg.MinerName,
		"BEK_HASH_ALGO": &cfg.HashAlgo,
		"BEK_DB_TYPE":   &cfg.DbType,
		"BEK_DB_DIR":    &cfg.DbDir,
		"BEK_LOG_LEVEL": &cfg.LogLevel,
		"BEK_LOG_FILE":  &cfg.LogFile,
		"BEK_HTTP_ADDR": &cfg.Address,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"BEK_DIFFICULTY":      &cfg.Difficulty,
		"BEK_MAX_ATTEMPTS":    &cfg.MaxAttempts,
		"BEK_COINS_PER_BLOCK": &cfg.CoinsPerBlock,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, v)
			}
			*dst = n
		}
	}

	if v, ok := os.LookupEnv("BEK_ABANDON_PAUSE_MS"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: BEK_ABANDON_PAUSE_MS=%q", ErrInvalidConfig, v)
		}
		cfg.AbandonPauseMs = n
	}
	if v, ok := os.LookupEnv("BEK_REJECT_ABANDONED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BEK_REJECT_ABANDONED=%q", ErrInvalidConfig, v)
		}
		cfg.RejectAbandoned = b
	}
	return nil
}

// Validate 检查配置
func (c Configuration) Validate() error {
	if err := c.ChainConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.CoinsPerBlock < 0 {
		return fmt.Errorf("%w: negative coins per block", ErrInvalidConfig)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return fmt.Errorf("%w: negative http timeout", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level 返回日志等级
func (c Configuration) Level() (int, error) {
	return utils.LevelFromString(c.LogLevel)
}

// ChainConfig 转换为挖矿参数
func (c Configuration) ChainConfig() blockchain.Config {
	return blockchain.Config{
		Difficulty:      c.Difficulty,
		MaxAttempts:     c.MaxAttempts,
		AbandonPause:    time.Duration(c.AbandonPauseMs) * time.Millisecond,
		HashAlgo:        c.HashAlgo,
		RejectAbandoned: c.RejectAbandoned,
	}
}
