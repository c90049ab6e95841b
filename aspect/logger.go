package aspect

import (
	"reflect"

	"go.uber.org/zap"
)

// Logger returns an aspect that logs every call and its outcome with logger.
// Calls are logged at debug level, failures at error level.
func Logger(logger *zap.Logger) Aspect {
	if logger == nil {
		logger = zap.NewNop()
	}
	return loggerAspect{logger: logger}
}

type loggerAspect struct {
	logger *zap.Logger
}

func (l loggerAspect) Handler(ttype reflect.Type, method string) Handler {
	fields := []zap.Field{zap.String("method", method)}
	if ttype != nil {
		fields = append(fields, zap.Stringer("type", ttype))
	}
	return callLogger{logger: l.logger.With(fields...)}
}

type callLogger struct {
	logger *zap.Logger
}

func (c callLogger) Before(in ...any) {
	c.logger.Debug("call", zap.Any("args", in))
}

func (c callLogger) After(out ...any) {
	var result any
	if len(out) > 0 {
		result = out[0]
	}
	if len(out) > 1 {
		if err, ok := out[1].(error); ok && err != nil {
			c.logger.Error("call failed", zap.Error(err))
			return
		}
	}
	c.logger.Debug("return", zap.Any("result", result))
}
