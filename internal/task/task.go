package task

import (
	"fmt"
	"strings"
	"unicode"
)

// Task is one to-do item with a title and a done flag.
type Task struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// List is an ordered collection of tasks held for one session.
//
// Tasks keep insertion order. Positions are 1-based in every operation that
// takes one, matching what the user sees in a listing. Positions are not
// stable across removals; there are no persistent IDs.
//
// A List is owned by its caller and threaded through every operation call.
// It is not safe for concurrent use.
type List struct {
	tasks []Task
}

// NewList creates a list holding the given tasks.
// The slice is copied, so the caller keeps ownership of its argument.
func NewList(tasks []Task) *List {
	l := &List{tasks: make([]Task, len(tasks))}
	copy(l.tasks, tasks)

	return l
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Add sanitizes raw and appends a new pending task at the end.
//
// Sanitization trims leading/trailing whitespace, strips non-printable runes,
// and truncates to [MaxTitleLen] runes. Returns the appended task and whether
// the title was truncated. Fails with [ErrEmptyTitle] if nothing printable
// remains; the list is unchanged on error.
func (l *List) Add(raw string) (Task, bool, error) {
	title, truncated := SanitizeTitle(raw)
	if title == "" {
		return Task{}, false, ErrEmptyTitle
	}

	t := Task{Title: title}
	l.tasks = append(l.tasks, t)

	return t, truncated, nil
}

// View returns an independent copy of the tasks.
// Mutating the returned slice never affects the list, so callers may hold a
// view across later mutations.
func (l *List) View() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)

	return out
}

// RemoveAt removes the task at the 1-based position and returns it.
// Later tasks shift down one position; the relative order of the rest is
// preserved. Fails with [ErrIndexOutOfRange] if pos is not in [1, Len].
func (l *List) RemoveAt(pos int) (Task, error) {
	err := l.checkPos(pos)
	if err != nil {
		return Task{}, err
	}

	removed := l.tasks[pos-1]
	l.tasks = append(l.tasks[:pos-1], l.tasks[pos:]...)

	return removed, nil
}

// MarkDone marks the task at the 1-based position as done and returns it.
// Marking an already-done task is a no-op success. Same bounds contract as
// [List.RemoveAt].
func (l *List) MarkDone(pos int) (Task, error) {
	err := l.checkPos(pos)
	if err != nil {
		return Task{}, err
	}

	l.tasks[pos-1].Done = true

	return l.tasks[pos-1], nil
}

// Clear unconditionally empties the list.
// Any confirmation step is the caller's responsibility.
func (l *List) Clear() {
	l.tasks = nil
}

// checkPos validates a 1-based position against the current length.
// Out-of-range values are always an error, never clamped.
func (l *List) checkPos(pos int) error {
	if pos < 1 || pos > len(l.tasks) {
		return fmt.Errorf("%w: %d (have %d tasks)", ErrIndexOutOfRange, pos, len(l.tasks))
	}

	return nil
}

// SanitizeTitle normalizes a raw title: non-printable runes are dropped,
// surrounding whitespace is trimmed, and the result is truncated to
// [MaxTitleLen] runes. Reports whether truncation happened.
//
// Sanitizing an already-sanitized title is a no-op.
func SanitizeTitle(raw string) (string, bool) {
	var builder strings.Builder

	for _, r := range raw {
		if unicode.IsPrint(r) {
			builder.WriteRune(r)
		}
	}

	title := strings.TrimSpace(builder.String())

	runes := []rune(title)
	if len(runes) > MaxTitleLen {
		return strings.TrimSpace(string(runes[:MaxTitleLen])), true
	}

	return title, false
}
