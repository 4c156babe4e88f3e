package blockchain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// GenesisData 创世区块的数据
const GenesisData = "Genesis Block"

// TimeLayout 区块时间的显示格式
const TimeLayout = "2006-01-02 15:04:05"

var now = time.Now

// Candidate 挖矿过程中的区块，Nonce在挖矿时递增
type Candidate struct {
	Index     uint32 // 区块序号
	PrevHash  string // 前一区块哈希值
	TimeStamp int64  // 时间戳（秒）
	Data      string // 区块数据
	Nonce     uint64 // 随机数
}

// NewCandidate 创建待挖区块，时间戳只在此处读取一次
func NewCandidate(index uint32, prevHash, data string) *Candidate {
	timeStamp := now().Unix()
	if timeStamp < 0 {
		log.Error("clock reading before unix epoch:", timeStamp)
		panic("time went backwards")
	}

	return &Candidate{
		Index:     index,
		PrevHash:  prevHash,
		TimeStamp: timeStamp,
		Data:      data,
	}
}

// canonical 按 index、prevHash、timestamp、data、nonce 的顺序直接拼接
func (c *Candidate) canonical() []byte {
	return []byte(fmt.Sprintf("%d%s%d%s%d", c.Index, c.PrevHash, c.TimeStamp, c.Data, c.Nonce))
}

// CalculateHash 计算当前字段的十六进制摘要（小写）
func (c *Candidate) CalculateHash(h HashFunc) string {
	return hex.EncodeToString(h(c.canonical()))
}

// Seal 冻结候选区块，此后字段不可再修改
func (c *Candidate) Seal(hash string) *Block {
	return &Block{
		index:     c.Index,
		prevHash:  c.PrevHash,
		timeStamp: c.TimeStamp,
		data:      c.Data,
		nonce:     c.Nonce,
		hash:      hash,
	}
}

// Block 已封存的区块
type Block struct {
	index     uint32
	prevHash  string
	timeStamp int64
	data      string
	nonce     uint64
	hash      string
}

func (b *Block) Index() uint32    { return b.index }
func (b *Block) PrevHash() string { return b.prevHash }
func (b *Block) TimeStamp() int64 { return b.timeStamp }
func (b *Block) Data() string     { return b.data }
func (b *Block) Nonce() uint64    { return b.nonce }
func (b *Block) Hash() string     { return b.hash }

// Time 以UTC返回区块时间
func (b *Block) Time() time.Time {
	return time.Unix(b.timeStamp, 0).UTC()
}

func (b *Block) String() string {
	return fmt.Sprintf("Block %d: %s at %s", b.index, b.data, b.Time().Format(TimeLayout))
}

// VerifyHash 重新计算摘要并与保存的哈希比较
func (b *Block) VerifyHash(h HashFunc) bool {
	return b.candidate().CalculateHash(h) == b.hash
}

func (b *Block) candidate() *Candidate {
	return &Candidate{
		Index:     b.index,
		PrevHash:  b.prevHash,
		TimeStamp: b.timeStamp,
		Data:      b.data,
		Nonce:     b.nonce,
	}
}

type blockRecord struct {
	Index     uint32 `json:"index"`
	PrevHash  string `json:"previous_hash"`
	TimeStamp int64  `json:"timestamp"`
	Data      string `json:"data"`
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"hash"`
}

func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockRecord{
		Index:     b.index,
		PrevHash:  b.prevHash,
		TimeStamp: b.timeStamp,
		Data:      b.data,
		Nonce:     b.nonce,
		Hash:      b.hash,
	})
}

// Serialize 序列化区块
func (b *Block) Serialize() ([]byte, error) {
	return json.Marshal(b)
}

// DeserializeBlock 反序列化区块
func DeserializeBlock(data []byte) (*Block, error) {
	var r blockRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &Block{
		index:     r.Index,
		prevHash:  r.PrevHash,
		timeStamp: r.TimeStamp,
		data:      r.Data,
		nonce:     r.Nonce,
		hash:      r.Hash,
	}, nil
}
