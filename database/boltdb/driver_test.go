package boltdb

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"powBlockchain/database"
)

func TestPutGet(t *testing.T) {
	dir := t.TempDir()
	ddb, err := database.Create(dbType, dir)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := ddb.Get([]byte("l")); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("missing key should return ErrNotFound, got %v", err)
	}
	var batch database.Batch
	batch.Put([]byte("l"), []byte("tip"))
	if err := ddb.Write(&batch); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := ddb.Get([]byte("l"))
	if err != nil || !bytes.Equal(v, []byte("tip")) {
		t.Fatalf("get = %q, %v", v, err)
	}

	path := ddb.(*db).Path()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("scratch file should exist while open: %v", err)
	}
	if err := ddb.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("scratch file should be removed on close")
	}
}

func TestWriteBatchRollsBack(t *testing.T) {
	ddb, err := database.Create(dbType, t.TempDir())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer ddb.Close()

	var good database.Batch
	good.Put([]byte("hash1"), []byte("block1"))
	good.Put([]byte("l"), []byte("hash1"))
	if err := ddb.Write(&good); err != nil {
		t.Fatalf("write: %v", err)
	}

	// bolt拒绝空键，前面已写入的键值需要一起回滚
	var bad database.Batch
	bad.Put([]byte("hash2"), []byte("block2"))
	bad.Put(nil, []byte("hash2"))
	bad.Put([]byte("l"), []byte("hash2"))
	if err := ddb.Write(&bad); err == nil {
		t.Fatalf("write with empty key should fail")
	}
	if _, err := ddb.Get([]byte("hash2")); !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("failed batch left hash2 behind: %v", err)
	}
	v, err := ddb.Get([]byte("l"))
	if err != nil || !bytes.Equal(v, []byte("hash1")) {
		t.Fatalf("tip = %q, %v; want hash1", v, err)
	}
}

func TestParseArgs(t *testing.T) {
	if dir, err := parseArgs("Create"); err != nil || dir != "" {
		t.Fatalf("no args should select the system temp dir")
	}
	if _, err := parseArgs("Create", 42); err == nil {
		t.Fatalf("non-string argument should fail")
	}
	if _, err := parseArgs("Create", "a", "b"); err == nil {
		t.Fatalf("too many arguments should fail")
	}
}
