package blockchain

// BlockchainIterator 从链末沿PrevHash向创世区块遍历
type BlockchainIterator struct {
	currentHash string
	bc          *Blockchain
}

// Iterator 返回从当前链末开始的迭代器
func (bc *Blockchain) Iterator() *BlockchainIterator {
	return &BlockchainIterator{currentHash: bc.Tip().Hash(), bc: bc}
}

// Next 返回下一个区块，遍历完创世区块后返回nil
func (i *BlockchainIterator) Next() (*Block, error) {
	if i.currentHash == "" {
		return nil, nil
	}

	block, err := i.bc.BlockByHash(i.currentHash)
	if err != nil {
		return nil, err
	}
	i.currentHash = block.PrevHash()

	return block, nil
}
