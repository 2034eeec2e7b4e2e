package replstate

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBad = errors.New("bad entry")

func TestSessionSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")

	s := &Session{}
	require.NoError(t, s.Append(path, "let x = 1"))
	require.NoError(t, s.Append(path, "let y = x + 1"))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"let x = 1", "let y = x + 1"}, loaded.Entries)
}

func TestLoadMissingFileReturnsEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	s, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, s.Entries)
}

func TestReplayRunsEveryEntryAndCollectsErrors(t *testing.T) {
	s := &Session{Entries: []string{"ok one", "bad", "ok two"}}
	var ran []string
	errs := s.Replay(func(line string) error {
		ran = append(ran, line)
		if line == "bad" {
			return errBad
		}
		return nil
	})
	require.Equal(t, []string{"ok one", "bad", "ok two"}, ran)
	require.Len(t, errs, 1)
}
