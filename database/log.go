package database

import (
	"powBlockchain/utils"
)

var log utils.Logger

// UseLogger 设置database包及所有已注册驱动使用的日志对象
func UseLogger(logger utils.Logger) {
	log = logger

	driversLock.RLock()
	defer driversLock.RUnlock()
	for _, drv := range drivers {
		if drv.UseLogger != nil {
			drv.UseLogger(logger)
		}
	}
}
