package database

import (
	"fmt"
	"sort"
	"sync"

	"powBlockchain/utils"
)

type Driver struct {
	DbType string

	Create func(args ...interface{}) (DB, error)

	UseLogger func(logger utils.Logger)
}

var (
	driversLock sync.RWMutex
	drivers     = make(map[string]*Driver)
)

// RegisterDriver ： 将数据库注册进drivers中
func RegisterDriver(driver Driver) error {
	driversLock.Lock()
	defer driversLock.Unlock()

	if _, exists := drivers[driver.DbType]; exists {
		return fmt.Errorf("driver %q is already registered", driver.DbType)
	}

	drivers[driver.DbType] = &driver
	if driver.UseLogger != nil {
		driver.UseLogger(log)
	}
	return nil
}

// SupportedDrivers ： 得到已经注册在drivers中的数据库，按名称排序
func SupportedDrivers() []string {
	driversLock.RLock()
	defer driversLock.RUnlock()

	registerDBs := make([]string, 0, len(drivers))
	for _, drv := range drivers {
		registerDBs = append(registerDBs, drv.DbType)
	}
	sort.Strings(registerDBs)
	return registerDBs
}

// AlreadyRegister : 检查dbType是否已经注册
func AlreadyRegister(dbType string) bool {
	driversLock.RLock()
	defer driversLock.RUnlock()

	_, exists := drivers[dbType]
	return exists
}

// Create : 使用dbType对应的驱动创建数据库
func Create(dbType string, args ...interface{}) (DB, error) {
	driversLock.RLock()
	drv, exists := drivers[dbType]
	driversLock.RUnlock()
	if !exists {
		return nil, fmt.Errorf("driver %q is not registered", dbType)
	}

	log.Debugf("creating %s database", dbType)
	return drv.Create(args...)
}
