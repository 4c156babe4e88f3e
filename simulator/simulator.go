// Package simulator 驱动一次挖矿模拟：读取矿工名称、按交易者名单生成交易、
// 逐笔挖矿上链并输出结果。
package simulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"powBlockchain/blockchain"
	"powBlockchain/utils"
)

var log utils.Logger

// UseLogger 设置simulator包使用的日志对象
func UseLogger(logger utils.Logger) {
	log = logger
}

// Traders 默认的交易者名单
var Traders = []string{"Bob", "Linda", "John", "Omar", "Eve", "Svetlana", "Grace", "Jiro"}

// DefaultCoinsPerBlock 每个区块计入的交易额
const DefaultCoinsPerBlock = 137

var now = time.Now

// PromptMinerName 提示并读取一行作为矿工名称，不做校验
func PromptMinerName(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, "👷 Enter your miner name: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Transactions 生成交易文本。发送方从矿工开始，第i笔的接收方是traders[i+1]，
// 最后一笔回到矿工，每笔的接收方成为下一笔的发送方。
func Transactions(miner string, traders []string) []string {
	txs := make([]string, 0, len(traders))
	sender := miner
	for i := range traders {
		recipient := miner
		if i < len(traders)-1 {
			recipient = traders[i+1]
		}
		txs = append(txs, fmt.Sprintf("%s sent to %s", sender, recipient))
		sender = recipient
	}
	return txs
}

// Simulator 一次模拟运行
type Simulator struct {
	Chain         *blockchain.Blockchain
	Miner         string
	Traders       []string
	CoinsPerBlock int
}

// Summary 模拟结束后的统计
type Summary struct {
	TotalBlocks int
	CoinsTraded int
	Abandoned   int
	Rejected    int
	EndedAt     time.Time
}

// Run 为每笔交易挖一个区块，并把过程写到w
func (s *Simulator) Run(w io.Writer) (*Summary, error) {
	fmt.Fprintf(w, "\n⛏️  Let's start mining and simulating transactions!\n\n")

	summary := &Summary{}
	for i, tx := range Transactions(s.Miner, s.Traders) {
		fmt.Fprintf(w, "🧱 Mining block %d...⛏️\n", i+1)

		c := blockchain.NewCandidate(uint32(s.Chain.Length()), "", tx)
		block, result, err := s.Chain.AddBlock(c)
		switch {
		case errors.Is(err, blockchain.ErrAbandoned):
			summary.Rejected++
			fmt.Fprintf(w, "⏳ Mining in progress... Calculated hash: %s\n", block.Hash())
			fmt.Fprintf(w, "🚫 Block rejected after %d attempts\n", result.Attempts)
		case err != nil:
			log.Error("mining block", i+1, "failed:", err)
			return nil, err
		case result.State == blockchain.Abandoned:
			fmt.Fprintf(w, "⏳ Mining in progress... Calculated hash: %s\n", block.Hash())
		default:
			fmt.Fprintf(w, "⛏️ Block mined: %d\n", block.Index())
		}
		if result != nil && result.State == blockchain.Abandoned {
			summary.Abandoned++
		}

		fmt.Fprintf(w, "✉️ Transaction: %s\n\n", tx)
	}

	summary.TotalBlocks = s.Chain.Length()
	summary.CoinsTraded = summary.TotalBlocks * s.CoinsPerBlock
	summary.EndedAt = now()
	log.Infof("simulation finished: %d blocks, %d abandoned", summary.TotalBlocks, summary.Abandoned)

	return summary, nil
}

// Print 输出统计信息
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "✅ Total blocks added to the blockchain: %d\n", s.TotalBlocks)
	fmt.Fprintf(w, "💰 Total Bekcoin traded: %d Bekcoin\n", s.CoinsTraded)
	fmt.Fprintf(w, "🕒 Simulation ended at: %s\n", s.EndedAt.UTC().Format(blockchain.TimeLayout))
	fmt.Fprintln(w, "🎉 Congrats! Mining operation completed successfully!")
}

// PrintChain 按顺序输出链上的所有区块
func PrintChain(w io.Writer, bc *blockchain.Blockchain) {
	for _, b := range bc.Blocks() {
		fmt.Fprintf(w, "=========== %s ===========\n", b)
		fmt.Fprintf(w, "Prev. hash: %s\n", b.PrevHash())
		fmt.Fprintf(w, "Hash: %s\n", b.Hash())
		fmt.Fprintf(w, "Nonce: %d\n\n", b.Nonce())
	}
}
