package main

import (
	"os"

	"powBlockchain/blockchain"
	"powBlockchain/config"
	"powBlockchain/database"
	"powBlockchain/explorer"
	"powBlockchain/simulator"
	"powBlockchain/utils"
)

var log utils.Logger

// initLogger 按配置初始化日志并分发给各个包。
// 未配置日志文件时输出到标准错误，避免与模拟过程的输出混在一起。
func initLogger(cfg config.Configuration) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if err := log.InitLogger(cfg.LogFile, level); err != nil {
		return err
	}
	if cfg.LogFile == "" {
		log.SetOutput(os.Stderr)
	}

	blockchain.UseLogger(log)
	database.UseLogger(log)
	simulator.UseLogger(log)
	explorer.UseLogger(log)
	return nil
}
