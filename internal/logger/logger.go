package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// L is the process-wide sugared logger. Init must be called before use.
var L *zap.SugaredLogger

// Init configures a console core plus a rotating JSON file core and
// installs the result as L.
func Init(environment string) error {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   "logs/riskdesk.log",
			MaxSize:    100, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
		}),
		zap.InfoLevel,
	)

	consoleLevel := zap.InfoLevel
	if environment == "development" {
		consoleLevel = zap.DebugLevel
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		consoleLevel,
	)

	core := zapcore.NewTee(fileCore, consoleCore)
	L = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).Sugar()
	return nil
}
