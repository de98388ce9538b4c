package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database.
func InitDB(c Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch c.DBDriver {
	case "mysql":
		dialector = mysql.Open(c.DBDSN)
	case "postgres":
		dialector = postgres.Open(c.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(c.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}

	gormCfg := &gorm.Config{}
	if c.GinMode == "release" {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.DBDriver, err)
	}
	return db, nil
}
