package logger

import (
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// Init builds the global logger. dev switches to the human readable
// development encoder with debug level enabled.
func Init(dev bool) error {
	var z *zap.Logger
	var err error
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	log = z.Sugar()
	return nil
}

func Get() *zap.SugaredLogger {
	if log == nil {
		z, _ := zap.NewDevelopment()
		log = z.Sugar()
	}
	return log
}

func Infow(msg string, kv ...interface{}) {
	Get().Infow(msg, kv...)
}

func Warnw(msg string, kv ...interface{}) {
	Get().Warnw(msg, kv...)
}

func Errorw(msg string, kv ...interface{}) {
	Get().Errorw(msg, kv...)
}

func Fatalw(msg string, kv ...interface{}) {
	Get().Fatalw(msg, kv...)
}
