// Package canvaslog is a lightweight, category-tagged debug logger. The
// engine is silent by default; logging is opt-in via CANVASCORE_LOG_LEVEL
// and CANVASCORE_LOG_CATEGORIES so it never affects behavior.
package canvaslog

import "fmt"

type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

var (
	currentLevel = LevelSilent
	categories   = make(map[string]bool)
)

func init() {
	initConfig()
}

func SetLevel(level Level) {
	currentLevel = level
}

func EnableCategory(category string) {
	categories[category] = true
}

func DisableCategory(category string) {
	delete(categories, category)
}

func shouldLog(level Level, category string) bool {
	if currentLevel == LevelSilent {
		return false
	}
	if level > currentLevel {
		return false
	}
	if len(categories) > 0 && category != "" {
		return categories[category]
	}
	return true
}

func Error(category string, format string, args ...interface{}) {
	if shouldLog(LevelError, category) {
		fmt.Printf("[ERROR][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func Warn(category string, format string, args ...interface{}) {
	if shouldLog(LevelWarn, category) {
		fmt.Printf("[WARN][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func Info(category string, format string, args ...interface{}) {
	if shouldLog(LevelInfo, category) {
		fmt.Printf("[INFO][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func Debug(category string, format string, args ...interface{}) {
	if shouldLog(LevelDebug, category) {
		fmt.Printf("[DEBUG][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}

func Trace(category string, format string, args ...interface{}) {
	if shouldLog(LevelTrace, category) {
		fmt.Printf("[TRACE][%s] %s\n", category, fmt.Sprintf(format, args...))
	}
}
