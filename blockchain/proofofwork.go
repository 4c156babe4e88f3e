package blockchain

import (
	"strings"
	"time"
)

// MineState 挖矿状态
type MineState int

const (
	Searching MineState = iota
	Succeeded
	Abandoned
)

func (s MineState) String() string {
	switch s {
	case Searching:
		return "searching"
	case Succeeded:
		return "succeeded"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// MineResult 一次挖矿的结果
type MineResult struct {
	State    MineState
	Attempts int // 计算摘要的次数
	Elapsed  time.Duration
}

// ProofOfWork 结构
type ProofOfWork struct {
	candidate   *Candidate
	difficulty  int
	maxAttempts int
	pause       time.Duration
	hashFunc    HashFunc
}

// NewProofOfWork 创建工作量证明
func NewProofOfWork(c *Candidate, cfg Config) (*ProofOfWork, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hashFunc, _ := HashFuncByName(cfg.HashAlgo)

	return &ProofOfWork{
		candidate:   c,
		difficulty:  cfg.Difficulty,
		maxAttempts: cfg.MaxAttempts,
		pause:       cfg.AbandonPause,
		hashFunc:    hashFunc,
	}, nil
}

// MeetsDifficulty 检查hash的前difficulty个字符是否全为'0'
func MeetsDifficulty(hash string, difficulty int) bool {
	if difficulty > len(hash) {
		return false
	}
	return strings.Count(hash[:difficulty], "0") == difficulty
}

// Run 递增Nonce寻找满足难度的哈希。
// 超过maxAttempts次仍未找到时放弃，保留最后一次的哈希，此时Nonce等于maxAttempts。
func (pow *ProofOfWork) Run() (*Block, *MineResult) {
	c := pow.candidate
	result := &MineResult{State: Searching}
	start := time.Now()

	var hash string
	for result.State == Searching {
		hash = c.CalculateHash(pow.hashFunc)
		result.Attempts++

		switch {
		case MeetsDifficulty(hash, pow.difficulty):
			result.State = Succeeded
		case pow.maxAttempts > 0 && result.Attempts > pow.maxAttempts:
			result.State = Abandoned
			log.Infof("block %d: no hash with %d leading zeros after %d attempts, keeping %s",
				c.Index, pow.difficulty, result.Attempts, hash)
			time.Sleep(pow.pause)
		default:
			c.Nonce++
		}
	}
	result.Elapsed = time.Since(start)

	return c.Seal(hash), result
}

// Validate 校验区块哈希与字段一致且满足难度
func (pow *ProofOfWork) Validate(b *Block) bool {
	return b.VerifyHash(pow.hashFunc) && MeetsDifficulty(b.Hash(), pow.difficulty)
}
