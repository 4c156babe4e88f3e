// Package leveldb 注册名为"leveldb"的数据库驱动。
// 数据保存在goleveldb的内存存储中，Close之后全部丢弃。
package leveldb

import (
	"errors"
	"fmt"

	"github.com/btcsuite/goleveldb/leveldb"
	"github.com/btcsuite/goleveldb/leveldb/filter"
	"github.com/btcsuite/goleveldb/leveldb/opt"
	"github.com/btcsuite/goleveldb/leveldb/storage"

	"powBlockchain/database"
	"powBlockchain/utils"
)

var log utils.Logger

const dbType = "leveldb"

type db struct {
	ldb *leveldb.DB
}

var _ database.DB = (*db)(nil)

func (d *db) Type() string {
	return dbType
}

func (d *db) Get(key []byte) ([]byte, error) {
	value, err := d.ldb.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, database.ErrNotFound
	}
	return value, err
}

func (d *db) Write(batch *database.Batch) error {
	lb := new(leveldb.Batch)
	batch.Replay(func(key, value []byte) error {
		lb.Put(key, value)
		return nil
	})
	return d.ldb.Write(lb, nil)
}

func (d *db) Close() error {
	log.Debug("closing in-memory leveldb")
	return d.ldb.Close()
}

func openDB() (database.DB, error) {
	opts := opt.Options{
		Strict:      opt.DefaultStrict,
		Compression: opt.NoCompression,
		Filter:      filter.NewBloomFilter(10),
	}
	ldb, err := leveldb.Open(storage.NewMemStorage(), &opts)
	if err != nil {
		return nil, err
	}
	log.Debug("in-memory leveldb opened")
	return &db{ldb: ldb}, nil
}

func createDBDriver(args ...interface{}) (database.DB, error) {
	if len(args) != 0 {
		return nil, errors.New("invalid arguments to " + dbType + ".Create")
	}
	return openDB()
}

func useLogger(logger utils.Logger) {
	log = logger
}

func init() {
	driver := database.Driver{
		DbType:    dbType,
		Create:    createDBDriver,
		UseLogger: useLogger,
	}
	if err := database.RegisterDriver(driver); err != nil {
		panic(fmt.Sprintf("Failed to register database driver '%s': %v", dbType, err))
	}
}
