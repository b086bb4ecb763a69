package task

import (
	"encoding/json"
	"fmt"
	"os"

	"td/internal/fs"

	"github.com/tailscale/hujson"
)

const filePerms = 0o600

// Load reads the task list stored at path.
//
// A missing file yields an empty list, not an error. A file whose content is
// not a JSON array also yields an empty list: structural corruption is
// recovered internally and reported through the returned warnings, never as
// an error. Individual malformed records are skipped with a warning without
// dropping or reordering the valid records around them.
//
// Only catastrophic conditions return an error, such as permission denial
// while reading.
func Load(fsys fs.FS, path string) (*List, []string, error) {
	exists, err := fsys.Exists(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot stat tasks file %s: %w", path, err)
	}

	if !exists {
		return NewList(nil), nil, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read tasks file %s: %w", path, err)
	}

	tasks, warnings := decodeTasks(data, path)

	return NewList(tasks), warnings, nil
}

// decodeTasks parses stored content, keeping every valid record.
//
// The content goes through hujson first so a hand-edited file with comments
// or trailing commas does not count as corruption. Each array element is
// validated independently: it must be an object with a string title; a
// missing done defaults to false and any other done value is coerced by
// [CoerceDone]. Unknown extra fields are ignored. Titles are sanitized the
// same way [List.Add] sanitizes them; a record whose title sanitizes to
// nothing is skipped.
func decodeTasks(data []byte, path string) ([]Task, []string) {
	var warnings []string

	standardized, err := hujson.Standardize(data)
	if err != nil {
		standardized = data
	}

	var root any

	unmarshalErr := json.Unmarshal(standardized, &root)
	if unmarshalErr != nil {
		warnings = append(warnings, fmt.Sprintf("cannot parse tasks file %s: %v; starting with an empty task list", path, unmarshalErr))

		return nil, warnings
	}

	items, ok := root.([]any)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("tasks file %s does not contain a list; ignoring its contents", path))

		return nil, warnings
	}

	var tasks []Task

	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("skipping malformed task entry %d in %s", i+1, path))

			continue
		}

		rawTitle, ok := record["title"].(string)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("skipping task entry %d in %s: title is missing or not a string", i+1, path))

			continue
		}

		title, truncated := SanitizeTitle(rawTitle)
		if title == "" {
			warnings = append(warnings, fmt.Sprintf("skipping task entry %d in %s: empty title", i+1, path))

			continue
		}

		if truncated {
			warnings = append(warnings, fmt.Sprintf("truncated overlong title of task entry %d in %s", i+1, path))
		}

		tasks = append(tasks, Task{Title: title, Done: CoerceDone(record["done"])})
	}

	return tasks, warnings
}

// Save writes the list to path atomically.
//
// The full serialized list goes to a temporary file in the same directory,
// which is then renamed onto path. A crash between write and rename leaves
// the previous content of path intact. On failure the error wraps
// [ErrStorageIO]; the caller's in-memory list is unaffected and the caller
// decides whether to retry, warn, or ignore.
func Save(fsys fs.FS, list *List, path string) error {
	if list == nil {
		return ErrNilList
	}

	data, err := json.MarshalIndent(list.View(), "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize tasks: %w", err)
	}

	data = append(data, '\n')

	writeErr := fsys.WriteFileAtomic(path, data, os.FileMode(filePerms))
	if writeErr != nil {
		return fmt.Errorf("%w %s: %w", ErrStorageIO, path, writeErr)
	}

	return nil
}
