// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 同步全部数据表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		User{},
		Note{},
		NoteVersion{},
		NoteShare{},
		NoteAttachment{},
	)
}
