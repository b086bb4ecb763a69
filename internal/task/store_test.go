package task

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"td/internal/fs"
)

func tasksPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), TasksFileName)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()
	path := tasksPath(t)

	list := NewList([]Task{
		{Title: "buy milk"},
		{Title: "wash car", Done: true},
	})

	require.NoError(t, Save(fsys, list, path))

	loaded, warnings, err := Load(fsys, path)
	require.NoError(t, err)
	require.Empty(t, warnings)

	if diff := cmp.Diff(list.View(), loaded.View()); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadMissingFileReturnsEmptyList(t *testing.T) {
	t.Parallel()

	loaded, warnings, err := Load(fs.NewReal(), tasksPath(t))
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, 0, loaded.Len())
}

func TestLoadKeepsValidRecordsAroundMalformedOnes(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()
	path := tasksPath(t)

	content := `[ {"title":"ok"}, {"bad":1}, {"title":5}, {"title":"x","done":"yes"} ]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loaded, warnings, err := Load(fsys, path)
	require.NoError(t, err)

	want := []Task{
		{Title: "ok", Done: false},
		{Title: "x", Done: true},
	}
	if diff := cmp.Diff(want, loaded.View()); diff != "" {
		t.Errorf("recovered list mismatch (-want +got):\n%s", diff)
	}

	// One warning per skipped record.
	require.Len(t, warnings, 2)
}

func TestLoadNonListContentRecoversToEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"json string", `"not a list"`},
		{"json object", `{"title":"ok"}`},
		{"number", `42`},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := tasksPath(t)
			require.NoError(t, os.WriteFile(path, []byte(testCase.content), 0o600))

			loaded, warnings, err := Load(fs.NewReal(), path)
			require.NoError(t, err, "structural corruption must not surface as an error")
			require.Equal(t, 0, loaded.Len())
			require.NotEmpty(t, warnings, "corruption must be reported as a diagnostic")
		})
	}
}

func TestLoadUnparseableContentRecoversToEmpty(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o600))

	loaded, warnings, err := Load(fs.NewReal(), path)
	require.NoError(t, err)
	require.Equal(t, 0, loaded.Len())
	require.NotEmpty(t, warnings)
}

func TestLoadToleratesHandEditedSurface(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)
	content := `[
		// pending
		{"title": "buy milk"},
		{"title": "wash car", "done": true},
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loaded, warnings, err := Load(fs.NewReal(), path)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, 2, loaded.Len())
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)
	content := `[{"title":"ok","done":false,"priority":3,"tags":["x"]}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loaded, warnings, err := Load(fs.NewReal(), path)
	require.NoError(t, err)
	require.Empty(t, warnings)

	want := []Task{{Title: "ok"}}
	if diff := cmp.Diff(want, loaded.View()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSanitizesStoredTitles(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)
	content := `[{"title":"  spaced  "}, {"title":"   "}, {"title":"` + strings.Repeat("a", MaxTitleLen+10) + `"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loaded, warnings, err := Load(fs.NewReal(), path)
	require.NoError(t, err)

	view := loaded.View()
	require.Len(t, view, 2, "whitespace-only title must be skipped")
	require.Equal(t, "spaced", view[0].Title)
	require.Len(t, []rune(view[1].Title), MaxTitleLen)
	require.NotEmpty(t, warnings)
}

func TestLoadReadFailureSurfacesAsError(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))

	flaky := &fs.Flaky{FS: fs.NewReal(), FailReads: true}

	_, _, err := Load(flaky, path)
	require.Error(t, err, "permission denial is catastrophic, not recoverable")
	require.True(t, fs.IsInjected(err))
}

func TestSaveNilListRejectedBeforeIO(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)

	err := Save(fs.NewReal(), nil, path)
	require.ErrorIs(t, err, ErrNilList)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "no file may be created for a rejected save")
}

func TestSaveEmptyListWritesEmptyArray(t *testing.T) {
	t.Parallel()

	path := tasksPath(t)

	require.NoError(t, Save(fs.NewReal(), NewList(nil), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}

func TestSaveCrashBeforeRenameKeepsOriginalBytes(t *testing.T) {
	t.Parallel()

	real := fs.NewReal()
	path := tasksPath(t)

	require.NoError(t, Save(real, NewList([]Task{{Title: "original"}}), path))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	flaky := &fs.Flaky{FS: real, FailWrites: true}

	saveErr := Save(flaky, NewList([]Task{{Title: "replacement"}}), path)
	require.ErrorIs(t, saveErr, ErrStorageIO)
	require.Equal(t, 1, flaky.WriteFails)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after, "interrupted save must leave the previous content intact")

	// The stray temp file is the simulated crash artifact.
	_, err = os.Stat(path + fs.PartialSuffix)
	require.NoError(t, err)
}

func TestSaveFailureLeavesInMemoryListIntact(t *testing.T) {
	t.Parallel()

	flaky := &fs.Flaky{FS: fs.NewReal(), FailWrites: true}
	path := tasksPath(t)

	list := NewList([]Task{{Title: "a"}, {Title: "b"}})

	require.Error(t, Save(flaky, list, path))
	require.Equal(t, 2, list.Len())
}
