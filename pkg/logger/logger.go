// Package logger provides the process-wide structured logger built on zap.
//
// The base logger writes to stdout from package init so that anything that
// logs before Setup runs (config loading, CLI parsing) is still visible.
// Setup adds the rotating file sink and, when LOG_MONGO_URI is configured,
// the asynchronous MongoDB sink.
//
// WithCtx returns a logger with the request ID already attached, so every
// log line written from a handler is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", zap.Uint("product_id", p.ID))
package logger

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bilemo/api/config"
)

// L is the base logger. Replace it only through Setup.
var L *zap.Logger

var mongoSink *MongoSink

func init() {
	L = zap.New(zapcore.NewCore(encoder(), zapcore.AddSync(os.Stdout), level()), zap.AddCaller())
}

func level() zapcore.Level {
	if config.IsProduction() {
		return zap.InfoLevel
	}
	return zap.DebugLevel
}

func encoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	if !config.IsProduction() {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = "caller"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if config.IsProduction() {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// Setup rebuilds L with every configured sink: stdout, a rotating file under
// LOG_PATH, and MongoDB when LOG_MONGO_URI is set. A MongoDB connection
// failure is logged and the remaining sinks are kept.
func Setup() error {
	lvl := level()
	enc := encoder()

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl),
	}

	if dir := config.LogPath(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join(dir, config.AppName()+".log"),
				MaxSize:    10, // MB
				MaxBackups: 7,
				MaxAge:     28, // days
				Compress:   true,
			}),
			lvl,
		))
	}

	var mongoErr error
	if uri := config.LogMongoURI(); uri != "" {
		sink, err := NewMongoSink(uri, config.LogMongoDB(), config.LogMongoCollection())
		if err != nil {
			mongoErr = err
		} else {
			mongoSink = sink
			cores = append(cores, sink.Core(lvl))
		}
	}

	L = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(L)

	if mongoErr != nil {
		L.Warn("mongo log sink disabled", zap.Error(mongoErr))
	}
	return nil
}

// Sync flushes buffered entries and closes the MongoDB sink if one is open.
func Sync() {
	_ = L.Sync()
	if mongoSink != nil {
		mongoSink.Close()
	}
}

// ─── Context-aware logger ─────────────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored by InjectLogger, or L when
// the context carries none.
func WithCtx(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores log in ctx. Called by the request logging middleware.
func InjectLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, fields ...zap.Field) { L.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L.Error(msg, fields...) }
