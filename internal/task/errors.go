package task

import "errors"

// MaxTitleLen is the maximum task title length in runes.
// Longer titles are truncated, not rejected.
const MaxTitleLen = 200

// TasksFileName is the default storage file name.
const TasksFileName = "tasks.json"

// Error variables for task operations.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrTasksFileEmpty     = errors.New("tasks_file cannot be empty")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrEmptyTitle         = errors.New("title must be non-empty")
	ErrIndexNotNumber     = errors.New("task number must be an integer")
	ErrIndexOutOfRange    = errors.New("task number out of range")
	ErrNilList            = errors.New("task list is nil")
	ErrStorageIO          = errors.New("cannot write tasks file")
)
