package replstate

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// historyFile is the name of the session file within $HOME, per §6
// ("History persists to $HOME/.L_history").
const historyFile = ".L_history"

// Session is the on-disk record of one REPL's accepted input, replayed
// against a fresh top-level environment at the start of the next REPL
// so prior bindings are available again without re-typing them.
type Session struct {
	Entries []string `yaml:"entries"`
}

// DefaultPath returns $HOME/.L_history.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, historyFile), nil
}

// Load reads the session file at path, returning an empty Session if it
// doesn't exist yet (a brand new REPL has no history to replay).
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Session{}, nil
		}
		return nil, errors.Wrapf(err, "reading session file %s", path)
	}
	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing session file %s", path)
	}
	return &s, nil
}

// Append records line as an accepted top-level declaration and saves the
// session immediately, so a crashed REPL loses at most the in-progress
// line rather than the whole history.
func (s *Session) Append(path, line string) error {
	s.Entries = append(s.Entries, line)
	return s.Save(path)
}

// Save writes s to path as YAML.
func (s *Session) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding session file")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing session file %s", path)
	}
	return nil
}

// Replay calls run with every history entry in order, rebuilding
// whatever top-level bindings a prior session left behind. A replay
// failure (an entry that no longer evaluates, e.g. after a breaking
// change to the stdlib) is reported to the caller but doesn't stop the
// remaining entries from replaying.
func (s *Session) Replay(run func(line string) error) []error {
	var errs []error
	for _, entry := range s.Entries {
		if err := run(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
