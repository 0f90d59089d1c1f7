package flagvalue

import (
	"flag"
	"io"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
)

// FileSwitch is a flag that may be passed with or without a value:
//
//	-debug          # on, with the default destination
//	-debug=log.txt  # on, with an explicit destination
//	-debug=false    # off
//
// It's used for optional outputs like the debug log,
// and for optional tools like pagefind
// where the value is the path to the executable.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the value of the flag,
// "-" if it was passed without a value,
// or an empty string if it's off.
func (fs *FileSwitch) Get() any { return string(*fs) }

func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
//
// "true" and "false" are accepted so that the flag may be switched
// from environment variables and configuration files.
func (fs *FileSwitch) Set(v string) error {
	switch v {
	case "true":
		v = "-"
	case "false":
		v = ""
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether this flag is on.
func (fs *FileSwitch) Bool() bool {
	return len(*fs) > 0
}

// Value returns the explicit value passed to the flag.
// It returns false if the flag is off or was passed without a value.
func (fs *FileSwitch) Value() (string, bool) {
	switch *fs {
	case "", "-":
		return "", false
	default:
		return string(*fs), true
	}
}

// Create opens the destination specified by this flag for writing,
// returning a function to close it.
//
//   - if the flag is off, it returns [io.Discard]
//   - if the flag has no value, it returns the fallback
//   - otherwise, it creates the named file and its parent directories
func (fs *FileSwitch) Create(fallback io.Writer) (w io.Writer, close func() error, err error) {
	path, ok := fs.Value()
	if !ok {
		if fs.Bool() {
			return fallback, nopClose, nil
		}
		return io.Discard, nopClose, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return f, f.Close, nil
}

func nopClose() error { return nil }
