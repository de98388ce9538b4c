package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
)

// InitDB records the process-wide connection for health checks.
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

func GetDB() *gorm.DB {
	return db
}
