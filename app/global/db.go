package global

import (
	"gorm.io/gorm"

	"taskhub/app/pkg/db"
)

var DB *gorm.DB

func initDB(conf *db.Config) (err error) {
	DB, err = db.NewGormDB(conf, Log)
	return
}
