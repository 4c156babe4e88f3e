package database

import "errors"

// ErrNotFound 键不存在
var ErrNotFound = errors.New("key not found")

// DB 本次运行使用的区块索引，进程退出后不保留
type DB interface {
	Type() string

	// Get 键不存在时返回 ErrNotFound
	Get(key []byte) ([]byte, error)

	// Write 原子地写入batch中的全部键值，失败时一个也不写入
	Write(batch *Batch) error

	Close() error
}

// Batch 一组需要一起写入的键值
type Batch struct {
	keys   [][]byte
	values [][]byte
}

// Put 向batch追加一个键值，写入顺序与追加顺序一致
func (b *Batch) Put(key, value []byte) {
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
}

// Replay 按追加顺序将每个键值交给fn，fn返回错误时停止
func (b *Batch) Replay(fn func(key, value []byte) error) error {
	for i := range b.keys {
		if err := fn(b.keys[i], b.values[i]); err != nil {
			return err
		}
	}
	return nil
}
