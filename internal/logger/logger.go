package logger

import "go.uber.org/zap"

// Log is a no-op logger until Init runs.
var Log = zap.NewNop()

func Init() {
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
