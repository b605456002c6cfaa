package model

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Notification is a transient message shown to the user after an action.
type Notification struct {
	Message string
	Level   Level
}
