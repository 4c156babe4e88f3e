package blockchain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// HashFunc 计算区块规范串的256位摘要
type HashFunc func(data []byte) []byte

// 可选的哈希算法名称
const (
	HashSHA256     = "sha256"
	HashSHA3       = "sha3-256"
	HashBlake2b256 = "blake2b-256"
)

// ErrUnknownHashAlgo 未知的哈希算法
var ErrUnknownHashAlgo = errors.New("unknown hash algorithm")

var hashFuncs = map[string]HashFunc{
	HashSHA256: chainhash.HashB,
	HashSHA3: func(data []byte) []byte {
		sum := sha3.Sum256(data)
		return sum[:]
	},
	HashBlake2b256: func(data []byte) []byte {
		sum := blake2b.Sum256(data)
		return sum[:]
	},
}

// HashFuncByName 按名称返回哈希函数，空名称表示sha256
func HashFuncByName(name string) (HashFunc, error) {
	if name == "" {
		name = HashSHA256
	}
	h, ok := hashFuncs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashAlgo, name)
	}
	return h, nil
}

// HashAlgos 返回所有支持的哈希算法名称
func HashAlgos() []string {
	names := make([]string, 0, len(hashFuncs))
	for name := range hashFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
