package blockchain

import (
	"powBlockchain/utils"
)

var log utils.Logger

// UseLogger 设置blockchain包使用的日志对象
func UseLogger(logger utils.Logger) {
	log = logger
}
