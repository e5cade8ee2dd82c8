package db

import (
	"fmt"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const Mysql = "mysql"
const Postgresql = "postgres"
const Sqlite = "sqlite"

var ErrDB = errs.Class("DB")

type Config struct {
	Driver   string `help:"database driver (mysql|postgres|sqlite)" default:"sqlite"`
	Host     string `help:"database host" default:"localhost"`
	Port     int    `help:"database port" default:"3306"`
	Username string `help:"database user" default:"root"`
	Password string `help:"database password" default:""`
	Database string `help:"database name" default:"taskhub"`
	Charset  string `help:"mysql charset" default:"utf8mb4"`
	SslMode  string `help:"postgres ssl mode" default:"disable"`
	TimeZone string `help:"session time zone" default:"UTC"`
	File     string `help:"database file, sqlite only" default:"$ROOT/taskhub.db"`
	LogLevel string `help:"sql log level, empty for silent, one of [error|warn|info]" default:"warn"`
}

func (c *Config) GetDsn() (dsn string, err error) {
	switch c.Driver {
	case Mysql:
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset, true)
	case Postgresql:
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Host, c.Username, c.Password, c.Database, c.Port, c.SslMode, c.TimeZone)
	case Sqlite:
		dsn = c.File
	default:
		err = ErrDB.New("unknown database driver: %s", c.Driver)
	}
	return
}

func (c *Config) Dialector() (dial gorm.Dialector, err error) {
	var dsn string
	dsn, err = c.GetDsn()
	if err != nil {
		return
	}
	switch c.Driver {
	case Mysql:
		dial = mysql.New(mysql.Config{
			DSN:                      dsn,
			DisableDatetimePrecision: true,
			DontSupportRenameIndex:   true,
			DontSupportRenameColumn:  true,
		})
		return
	case Postgresql:
		dial = postgres.New(postgres.Config{
			DSN: dsn,
		})
		return
	case Sqlite:
		dial = sqlite.Open(dsn)
		return
	}
	return nil, ErrDB.New("unknown database driver: %s", c.Driver)
}

func NewGormDB(cfg *Config, zapLog *zap.Logger) (*gorm.DB, error) {
	dial, err := cfg.Dialector()
	if err != nil {
		return nil, ErrDB.Wrap(err)
	}
	return gorm.Open(dial, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
		Logger:                                   getLogInterface(zapLog, cfg.LogLevel),
	})
}
