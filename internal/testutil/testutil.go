// Package testutil 给 service / repo / router 测试提供内存 sqlite 库
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gin-gorm-shop/internal/core/database"
	"gin-gorm-shop/internal/repo"
	"gin-gorm-shop/pkg/utils"
)

// DB 每个测试一个独立的内存库；单连接，事务内外不能混用句柄
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	if err := repo.NewStore(db).AutoMigrate(); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Store(tb testing.TB) *repo.Store {
	tb.Helper()
	return repo.NewStore(DB(tb))
}

// FastPasswords 测试期间把 bcrypt cost 调到最低
func FastPasswords(tb testing.TB) {
	tb.Helper()
	prev := utils.PasswordCost
	utils.PasswordCost = bcrypt.MinCost
	tb.Cleanup(func() { utils.PasswordCost = prev })
}
