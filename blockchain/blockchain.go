package blockchain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"powBlockchain/database"
	"powBlockchain/utils"
)

var (
	// ErrAbandoned 放弃搜索的区块被拒绝上链
	ErrAbandoned = errors.New("mining abandoned before meeting difficulty")

	// ErrInvalidBlock 区块与链不一致
	ErrInvalidBlock = errors.New("invalid block")
)

// 区块索引中链末区块哈希的键
var tipKey = []byte("l")

func heightKey(index uint32) []byte {
	return []byte(fmt.Sprintf("h%010d", index))
}

// Blockchain 区块链结构，只允许在链末追加
type Blockchain struct {
	mu        sync.RWMutex
	blocks    []*Block
	cfg       Config
	hashFunc  HashFunc
	db        database.DB
	abandoned int
}

// NewBlockchain 创建一个只含创世区块的区块链，db可以为nil
func NewBlockchain(cfg Config, db database.DB) (*Blockchain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hashFunc, _ := HashFuncByName(cfg.HashAlgo)

	bc := &Blockchain{
		cfg:      cfg,
		hashFunc: hashFunc,
		db:       db,
	}

	// 创世区块只计算一次哈希，不挖矿
	genesis := NewCandidate(0, "", GenesisData)
	block := genesis.Seal(genesis.CalculateHash(hashFunc))
	if err := bc.index(block); err != nil {
		return nil, err
	}
	bc.blocks = []*Block{block}
	log.Infof("genesis block created: %s", block.Hash())

	return bc, nil
}

// Config 返回挖矿参数
func (bc *Blockchain) Config() Config {
	return bc.cfg
}

// AddBlock 将候选区块链接到链末、挖矿并追加。
// 放弃搜索的区块同样会上链，除非设置了RejectAbandoned。
// 挖矿在c的副本上进行，c本身不会被修改，可以原样重新提交。
func (bc *Blockchain) AddBlock(c *Candidate) (*Block, *MineResult, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	return bc.addBlock(c)
}

// AddData 以下一个序号创建候选区块并追加
func (bc *Blockchain) AddData(data string) (*Block, *MineResult, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	c := NewCandidate(uint32(len(bc.blocks)), "", data)
	return bc.addBlock(c)
}

func (bc *Blockchain) addBlock(c *Candidate) (*Block, *MineResult, error) {
	tip := bc.blocks[len(bc.blocks)-1]
	if tip.Hash() == "" {
		return nil, nil, fmt.Errorf("%w: tip %d has no hash", ErrInvalidBlock, tip.Index())
	}
	if c.Index != tip.Index()+1 {
		return nil, nil, fmt.Errorf("%w: index %d does not follow tip %d", ErrInvalidBlock, c.Index, tip.Index())
	}
	cand := *c
	cand.PrevHash = tip.Hash()

	pow, err := NewProofOfWork(&cand, bc.cfg)
	if err != nil {
		return nil, nil, err
	}
	block, result := pow.Run()

	if result.State == Abandoned {
		bc.abandoned++
		if bc.cfg.RejectAbandoned {
			log.Warningf("block %d rejected after %d attempts", block.Index(), result.Attempts)
			return block, result, ErrAbandoned
		}
	}

	if err := bc.index(block); err != nil {
		return nil, result, err
	}
	bc.blocks = append(bc.blocks, block)

	log.Infof("block %d %s after %d attempts: %s", block.Index(), result.State, result.Attempts, block.Hash())
	if log.Enabled(utils.LevelDebug) {
		log.Debug(spew.Sdump(block))
	}
	return block, result, nil
}

// index 将区块、高度与链末哈希在一次batch中写入数据库索引
func (bc *Blockchain) index(b *Block) error {
	if bc.db == nil {
		return nil
	}
	encoded, err := b.Serialize()
	if err != nil {
		return err
	}

	var batch database.Batch
	batch.Put([]byte(b.Hash()), encoded)
	batch.Put(heightKey(b.Index()), []byte(b.Hash()))
	batch.Put(tipKey, []byte(b.Hash()))
	if err := bc.db.Write(&batch); err != nil {
		return fmt.Errorf("index block %d: %w", b.Index(), err)
	}
	return nil
}

// Length 返回区块数量，至少为1
func (bc *Blockchain) Length() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Abandoned 返回放弃搜索的次数
func (bc *Blockchain) Abandoned() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.abandoned
}

// Tip 返回最新区块
func (bc *Blockchain) Tip() *Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// Blocks 返回当前的区块列表副本
func (bc *Blockchain) Blocks() []*Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	out := make([]*Block, len(bc.blocks))
	copy(out, bc.blocks)
	return out
}

// BlockByHash 按哈希查找区块，找不到时返回 database.ErrNotFound
func (bc *Blockchain) BlockByHash(hash string) (*Block, error) {
	if bc.db != nil {
		encoded, err := bc.db.Get([]byte(hash))
		if err != nil {
			return nil, err
		}
		return DeserializeBlock(encoded)
	}

	bc.mu.RLock()
	defer bc.mu.RUnlock()
	for _, b := range bc.blocks {
		if b.Hash() == hash {
			return b, nil
		}
	}
	return nil, database.ErrNotFound
}

// Validate 检查序号连续、哈希链接以及每个区块的哈希
func (bc *Blockchain) Validate() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	for i, b := range bc.blocks {
		if int(b.Index()) != i {
			return fmt.Errorf("%w: block at position %d has index %d", ErrInvalidBlock, i, b.Index())
		}
		if i == 0 {
			if b.PrevHash() != "" {
				return fmt.Errorf("%w: genesis has previous hash", ErrInvalidBlock)
			}
		} else if b.PrevHash() != bc.blocks[i-1].Hash() {
			return fmt.Errorf("%w: block %d does not link to block %d", ErrInvalidBlock, i, i-1)
		}
		if !b.VerifyHash(bc.hashFunc) {
			return fmt.Errorf("%w: block %d hash mismatch", ErrInvalidBlock, i)
		}
	}
	return nil
}
