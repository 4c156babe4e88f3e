package blockchain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig 挖矿参数不合法
var ErrInvalidConfig = errors.New("invalid chain config")

// 默认挖矿参数
const (
	DefaultDifficulty   = 2
	DefaultMaxAttempts  = 100
	DefaultAbandonPause = 3 * time.Second

	// MaxDifficulty 256位摘要的十六进制长度
	MaxDifficulty = 64
)

// Config 挖矿参数
type Config struct {
	Difficulty int // 哈希前导'0'字符的个数

	// MaxAttempts 超过该次数仍未满足难度则放弃搜索，0表示不限制
	MaxAttempts int

	// AbandonPause 放弃搜索后的停顿，仅用于演示
	AbandonPause time.Duration

	HashAlgo string

	// RejectAbandoned 为true时放弃搜索的区块不会上链
	RejectAbandoned bool
}

// DefaultConfig 返回默认参数
func DefaultConfig() Config {
	return Config{
		Difficulty:   DefaultDifficulty,
		MaxAttempts:  DefaultMaxAttempts,
		AbandonPause: DefaultAbandonPause,
		HashAlgo:     HashSHA256,
	}
}

func (cfg Config) Validate() error {
	if cfg.Difficulty < 0 || cfg.Difficulty > MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d out of range [0, %d]", ErrInvalidConfig, cfg.Difficulty, MaxDifficulty)
	}
	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("%w: negative max attempts %d", ErrInvalidConfig, cfg.MaxAttempts)
	}
	if cfg.AbandonPause < 0 {
		return fmt.Errorf("%w: negative abandon pause %s", ErrInvalidConfig, cfg.AbandonPause)
	}
	if _, err := HashFuncByName(cfg.HashAlgo); err != nil {
		return fmt.Errorf("%w: %v, supported: %s", ErrInvalidConfig, err, strings.Join(HashAlgos(), ", "))
	}
	return nil
}
