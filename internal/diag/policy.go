package diag

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrFatal marks errors that terminate the program.
var ErrFatal = errors.New("fatal")

func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, ErrFatal)
}

func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// Policy decides what a missing required name does.
type Policy int

const (
	PolicyFatal Policy = iota
	PolicyWarn
)

func (p Policy) String() string {
	if p == PolicyWarn {
		return "warn"
	}
	return "fatal"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "fatal":
		return PolicyFatal, nil
	case "warn":
		return PolicyWarn, nil
	}
	return PolicyFatal, errors.Newf("unknown policy %q, expected fatal or warn", s)
}

// Require cross-checks required names against the available set. Found names
// are logged and returned in the order they were required. Under PolicyWarn
// missing names are logged as warnings and left out of the result; under
// PolicyFatal the first missing name is an error.
func Require[V any](l *Logger, kind string, required []string, available map[string]V, policy Policy) ([]string, error) {
	found := make([]string, 0, len(required))
	for _, name := range required {
		if _, ok := available[name]; ok {
			l.Messagef("Found %s: %s", kind, name)
			found = append(found, name)
			continue
		}

		if policy == PolicyFatal {
			return nil, l.Errorf("Required %s not available: %s", kind, name)
		}
		l.Warningf("Required %s not available: %s", kind, name)
	}

	return found, nil
}

// SortedKeys returns the names of an enumerated set in stable order, for logging.
func SortedKeys[V any](set map[string]V) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
