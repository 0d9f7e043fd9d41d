package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by the components.
const (
	FieldProvider   = "ai_provider"
	FieldModel      = "ai_model"
	FieldAnalysisID = "analysis_id"
	FieldJob        = "job"
	FieldCandidate  = "candidate"
)

// stringFields turns key/value pairs into zap string fields. Values are
// trimmed and blank ones dropped, so optional context never logs as "".
func stringFields(pairs ...[2]string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs))
	for _, p := range pairs {
		if v := strings.TrimSpace(p[1]); v != "" {
			fields = append(fields, zap.String(p[0], v))
		}
	}
	return fields
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the AI provider and model behind a call.
func CommonFields(provider, model string) []zap.Field {
	return stringFields(
		[2]string{FieldProvider, provider},
		[2]string{FieldModel, model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// AnalysisFields describes a single (resume, job) analysis.
func AnalysisFields(id, job, candidate string) []zap.Field {
	return stringFields(
		[2]string{FieldAnalysisID, id},
		[2]string{FieldJob, job},
		[2]string{FieldCandidate, candidate},
	)
}
