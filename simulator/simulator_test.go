package simulator

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"powBlockchain/blockchain"
)

func testChain(t *testing.T, difficulty, maxAttempts int, reject bool) *blockchain.Blockchain {
	t.Helper()
	cfg := blockchain.DefaultConfig()
	cfg.Difficulty = difficulty
	cfg.MaxAttempts = maxAttempts
	cfg.AbandonPause = 0
	cfg.RejectAbandoned = reject
	bc, err := blockchain.NewBlockchain(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return bc
}

func TestPromptMinerName(t *testing.T) {
	var out bytes.Buffer
	name, err := PromptMinerName(strings.NewReader("  Amir \nignored\n"), &out)
	if err != nil || name != "Amir" {
		t.Fatalf("name = %q, %v", name, err)
	}
	if !strings.Contains(out.String(), "Enter your miner name") {
		t.Fatalf("missing prompt: %q", out.String())
	}

	// 空输入同样接受
	name, err = PromptMinerName(strings.NewReader(""), &out)
	if err != nil || name != "" {
		t.Fatalf("empty input: %q, %v", name, err)
	}
}

func TestTransactions(t *testing.T) {
	got := Transactions("Amir", Traders)
	want := []string{
		"Amir sent to Linda",
		"Linda sent to John",
		"John sent to Omar",
		"Omar sent to Eve",
		"Eve sent to Svetlana",
		"Svetlana sent to Grace",
		"Grace sent to Jiro",
		"Jiro sent to Amir",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Transactions() = %v", got)
	}
	if len(Transactions("Amir", nil)) != 0 {
		t.Fatalf("no traders means no transactions")
	}
	if got := Transactions("Amir", []string{"Bob"}); len(got) != 1 || got[0] != "Amir sent to Amir" {
		t.Fatalf("single trader: %v", got)
	}
}

func TestRun(t *testing.T) {
	defer func(orig func() time.Time) { now = orig }(now)
	now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	bc := testChain(t, 2, 100, false)
	sim := &Simulator{Chain: bc, Miner: "Amir", Traders: Traders, CoinsPerBlock: DefaultCoinsPerBlock}

	var out bytes.Buffer
	summary, err := sim.Run(&out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.TotalBlocks != 9 || bc.Length() != 9 {
		t.Fatalf("total blocks %d length %d", summary.TotalBlocks, bc.Length())
	}
	if summary.CoinsTraded != 9*137 {
		t.Fatalf("coins traded %d", summary.CoinsTraded)
	}
	if summary.Abandoned != bc.Abandoned() || summary.Rejected != 0 {
		t.Fatalf("abandoned %d/%d rejected %d", summary.Abandoned, bc.Abandoned(), summary.Rejected)
	}
	if err := bc.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if bc.Blocks()[8].Data() != "Jiro sent to Amir" {
		t.Fatalf("last block data %q", bc.Blocks()[8].Data())
	}

	text := out.String()
	for _, line := range []string{"🧱 Mining block 1...⛏️", "🧱 Mining block 8...⛏️", "✉️ Transaction: Amir sent to Linda"} {
		if !strings.Contains(text, line) {
			t.Fatalf("output missing %q", line)
		}
	}

	out.Reset()
	summary.Print(&out)
	want := "✅ Total blocks added to the blockchain: 9\n" +
		"💰 Total Bekcoin traded: 1233 Bekcoin\n" +
		"🕒 Simulation ended at: 2024-03-01 12:00:00\n" +
		"🎉 Congrats! Mining operation completed successfully!\n"
	if out.String() != want {
		t.Fatalf("summary output:\n%s", out.String())
	}
}

func TestRunAbandoned(t *testing.T) {
	bc := testChain(t, blockchain.MaxDifficulty, 5, false)
	sim := &Simulator{Chain: bc, Miner: "Amir", Traders: Traders[:3], CoinsPerBlock: 1}

	var out bytes.Buffer
	summary, err := sim.Run(&out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalBlocks != 4 || summary.Abandoned != 3 {
		t.Fatalf("summary %+v", summary)
	}
	if strings.Count(out.String(), "⏳ Mining in progress...") != 3 {
		t.Fatalf("expected three abandon notices:\n%s", out.String())
	}
}

func TestRunRejected(t *testing.T) {
	bc := testChain(t, blockchain.MaxDifficulty, 5, true)
	sim := &Simulator{Chain: bc, Miner: "Amir", Traders: Traders[:2], CoinsPerBlock: 1}

	var out bytes.Buffer
	summary, err := sim.Run(&out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalBlocks != 1 || summary.Rejected != 2 || summary.Abandoned != 2 {
		t.Fatalf("summary %+v", summary)
	}
	if !strings.Contains(out.String(), "🚫 Block rejected after 6 attempts") {
		t.Fatalf("missing rejection notice:\n%s", out.String())
	}
}

func TestPrintChain(t *testing.T) {
	bc := testChain(t, 0, 100, false)
	if _, _, err := bc.AddData("Amir sent to Linda"); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	PrintChain(&out, bc)
	if strings.Count(out.String(), "===========") != 4 {
		t.Fatalf("expected two block headers:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Block 1: Amir sent to Linda") {
		t.Fatalf("missing block 1:\n%s", out.String())
	}
}
