package blockchain

import (
	"errors"
	"strings"
	"testing"
)

func testConfig(difficulty, maxAttempts int) Config {
	cfg := DefaultConfig()
	cfg.Difficulty = difficulty
	cfg.MaxAttempts = maxAttempts
	cfg.AbandonPause = 0
	return cfg
}

func TestMeetsDifficulty(t *testing.T) {
	cases := []struct {
		hash       string
		difficulty int
		want       bool
	}{
		{"00ab", 2, true},
		{"00ab", 0, true},
		{"0a0b", 2, false},
		{"000b", 3, true},
		{"00", 3, false},
	}
	for _, c := range cases {
		if got := MeetsDifficulty(c.hash, c.difficulty); got != c.want {
			t.Fatalf("MeetsDifficulty(%q, %d) = %v", c.hash, c.difficulty, got)
		}
	}
}

func TestProofOfWorkSucceeds(t *testing.T) {
	c := NewCandidate(1, "prev", "Alice sent to Bob")
	pow, err := NewProofOfWork(c, testConfig(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	block, result := pow.Run()
	if result.State != Succeeded {
		t.Fatalf("unbounded search should succeed, got %s", result.State)
	}
	if !strings.HasPrefix(block.Hash(), "00") {
		t.Fatalf("hash %s does not meet difficulty", block.Hash())
	}
	if uint64(result.Attempts) != block.Nonce()+1 {
		t.Fatalf("attempts %d nonce %d", result.Attempts, block.Nonce())
	}
	if !pow.Validate(block) {
		t.Fatalf("mined block should validate")
	}
}

func TestProofOfWorkZeroDifficulty(t *testing.T) {
	pow, _ := NewProofOfWork(NewCandidate(1, "prev", "x"), testConfig(0, 100))
	block, result := pow.Run()
	if result.State != Succeeded || result.Attempts != 1 || block.Nonce() != 0 {
		t.Fatalf("difficulty 0 should succeed at once: %+v nonce %d", result, block.Nonce())
	}
}

func TestProofOfWorkAbandons(t *testing.T) {
	c := NewCandidate(1, "prev", "Alice sent to Bob")
	pow, _ := NewProofOfWork(c, testConfig(MaxDifficulty, 100))
	block, result := pow.Run()

	if result.State != Abandoned {
		t.Fatalf("expected abandoned, got %s", result.State)
	}
	if block.Nonce() != 100 {
		t.Fatalf("abandoned nonce = %d, want 100", block.Nonce())
	}
	if result.Attempts != 101 {
		t.Fatalf("attempts = %d, want 101", result.Attempts)
	}
	// 放弃时保存的仍是最后一次计算的哈希
	h, _ := HashFuncByName(HashSHA256)
	if !block.VerifyHash(h) {
		t.Fatalf("abandoned block hash does not match its fields")
	}
	if pow.Validate(block) {
		t.Fatalf("abandoned block should not validate")
	}
}

func TestProofOfWorkTamper(t *testing.T) {
	pow, _ := NewProofOfWork(NewCandidate(1, "prev", "x"), testConfig(1, 0))
	block, _ := pow.Run()
	tampered := *block
	tampered.data = "y"
	if pow.Validate(&tampered) {
		t.Fatalf("tampered block should fail validation")
	}
}

func TestNewProofOfWorkInvalidConfig(t *testing.T) {
	bad := []Config{
		testConfig(-1, 100),
		testConfig(MaxDifficulty+1, 100),
		testConfig(2, -1),
		{Difficulty: 2, HashAlgo: "md5"},
		{Difficulty: 2, AbandonPause: -1},
	}
	for _, cfg := range bad {
		if _, err := NewProofOfWork(NewCandidate(1, "", ""), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("config %+v should be invalid, got %v", cfg, err)
		}
	}

	err := Config{Difficulty: 2, HashAlgo: "md5"}.Validate()
	if err == nil || !strings.Contains(err.Error(), "supported: blake2b-256, sha256, sha3-256") {
		t.Fatalf("error should list supported algorithms: %v", err)
	}
}

func TestMineStateString(t *testing.T) {
	if Searching.String() != "searching" || Succeeded.String() != "succeeded" || Abandoned.String() != "abandoned" {
		t.Fatalf("unexpected state names")
	}
	if MineState(9).String() != "unknown" {
		t.Fatalf("unexpected name for unknown state")
	}
}
