// Package boltdb 注册名为"bolt"的数据库驱动。
// 每次Create都会新建一个临时bolt文件，Close时删除。
package boltdb

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/boltdb/bolt"

	"powBlockchain/database"
	"powBlockchain/utils"
)

var log utils.Logger

const (
	dbType       = "bolt"
	blocksBucket = "blocks"
)

type db struct {
	bdb  *bolt.DB
	path string
}

var _ database.DB = (*db)(nil)

func (d *db) Type() string {
	return dbType
}

func (d *db) Get(key []byte) ([]byte, error) {
	var value []byte
	err := d.bdb.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(blocksBucket)).Get(key)
		if v == nil {
			return database.ErrNotFound
		}
		// bolt返回的切片只在事务内有效
		value = append([]byte(nil), v...)
		return nil
	})
	return value, err
}

// Write 在同一个事务中写入，任一Put失败时整个事务回滚
func (d *db) Write(batch *database.Batch) error {
	return d.bdb.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(blocksBucket))
		return batch.Replay(bucket.Put)
	})
}

func (d *db) Close() error {
	err := d.bdb.Close()
	if rmErr := os.Remove(d.path); rmErr != nil && err == nil {
		err = rmErr
	}
	log.Debug("scratch bolt file removed:", d.path)
	return err
}

// Path 返回临时文件路径
func (d *db) Path() string {
	return d.path
}

func openDB(dir string) (database.DB, error) {
	file, err := ioutil.TempFile(dir, "blocks-*.db")
	if err != nil {
		return nil, err
	}
	path := file.Name()
	file.Close()

	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(blocksBucket))
		return err
	})
	if err != nil {
		bdb.Close()
		os.Remove(path)
		return nil, err
	}

	log.Debug("scratch bolt file opened:", path)
	return &db{bdb: bdb, path: path}, nil
}

// parseArgs 可选参数为临时文件所在目录，为空时使用系统临时目录
func parseArgs(funcName string, args ...interface{}) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	if len(args) != 1 {
		return "", errors.New("invalid arguments to " + dbType + "." + funcName)
	}

	dir, ok := args[0].(string)
	if !ok {
		return "", errors.New("first argument to " + dbType + "." + funcName + " is invalid")
	}

	return dir, nil
}

func createDBDriver(args ...interface{}) (database.DB, error) {
	dir, err := parseArgs("Create", args...)
	if err != nil {
		return nil, err
	}

	return openDB(dir)
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
