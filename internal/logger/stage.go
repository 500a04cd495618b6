package logger

import "context"

// Stage logs a structured stage/action entry, the shape every pipeline
// (ingestion, moment extraction, video matching, chat) uses to report
// progress through its steps.
func Stage(ctx context.Context, stage, action string, fields map[string]interface{}) {
	entry := GetLogger(ctx).WithField("stage", stage).WithField("action", action)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Info(action)
}

// StageWarn logs a structured stage/action entry at warn level.
func StageWarn(ctx context.Context, stage, action string, fields map[string]interface{}) {
	entry := GetLogger(ctx).WithField("stage", stage).WithField("action", action)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Warn(action)
}

// StageError logs a structured stage/action entry at error level.
func StageError(ctx context.Context, stage, action string, fields map[string]interface{}) {
	entry := GetLogger(ctx).WithField("stage", stage).WithField("action", action)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(action)
}
