package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"powBlockchain/blockchain"
	"powBlockchain/config"
	"powBlockchain/database"
	_ "powBlockchain/database/boltdb"
	_ "powBlockchain/database/leveldb"
	"powBlockchain/explorer"
	"powBlockchain/simulator"
)

// loadBlockDB 创建本次运行的区块索引，DbType为none时返回nil
func loadBlockDB(cfg config.Configuration) (database.DB, error) {
	switch {
	case cfg.DbType == "" || cfg.DbType == "none":
		return nil, nil
	case !database.AlreadyRegister(cfg.DbType):
		return nil, fmt.Errorf("unknown db type %q, supported: %s", cfg.DbType,
			strings.Join(database.SupportedDrivers(), ", "))
	case cfg.DbType == "bolt":
		return database.Create(cfg.DbType, cfg.DbDir)
	default:
		return database.Create(cfg.DbType)
	}
}

func bekcoinMain(configFile, envFile string, printChain bool) error {
	if err := config.InitConfig(configFile, envFile); err != nil {
		return err
	}
	cfg := config.Cfg
	if err := initLogger(cfg); err != nil {
		return err
	}
	defer log.Info("Shutdown complete")

	db, err := loadBlockDB(cfg)
	if err != nil {
		log.Error(err)
		return err
	}
	if db != nil {
		log.Info("Block index", db.Type(), "ready")
		defer func() {
			log.Info("Closing block index...")
			db.Close()
		}()
	}

	bc, err := blockchain.NewBlockchain(cfg.ChainConfig(), db)
	if err != nil {
		return err
	}

	fmt.Println("🚀 Welcome to Bekcoin Mining Simulator! 🚀")
	miner := cfg.MinerName
	if miner == "" {
		miner, err = simulator.PromptMinerName(os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	sim := &simulator.Simulator{
		Chain:         bc,
		Miner:         miner,
		Traders:       simulator.Traders,
		CoinsPerBlock: cfg.CoinsPerBlock,
	}
	summary, err := sim.Run(os.Stdout)
	if err != nil {
		return err
	}
	summary.Print(os.Stdout)
	if printChain {
		fmt.Println()
		simulator.PrintChain(os.Stdout, bc)
	}

	if cfg.Address == "" {
		return nil
	}
	return serveExplorer(cfg, bc)
}

// serveExplorer 启动区块浏览器直到收到中断信号
func serveExplorer(cfg config.Configuration, bc *blockchain.Blockchain) error {
	interrupt := interruptListener()

	server := explorer.NewServer(cfg.Address, cfg.ReadTimeout, cfg.WriteTimeout, explorer.NewHandler(bc))
	errCh := make(chan error, 1)
	go func() {
		fmt.Println("block explorer listening on", cfg.Address)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-interrupt:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func main() {
	var configFile, envFile string
	var printChain bool
	flag.StringVar(&configFile, "c", "config/config.json", "specify config file's path")
	flag.StringVar(&envFile, "env", ".env", "specify .env file's path")
	flag.BoolVar(&printChain, "v", false, "print every block after the simulation")
	flag.Parse()

	if err := bekcoinMain(configFile, envFile, printChain); err != nil {
		fmt.Fprintln(os.Stderr, "err:", err)
		os.Exit(1)
	}
}
