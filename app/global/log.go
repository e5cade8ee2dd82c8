package global

import (
	"go.uber.org/zap"

	"taskhub/app/pkg/log"
)

var Log *zap.Logger

func initLog(conf *log.Config) (err error) {
	Log = log.NewLog(conf)
	return
}
