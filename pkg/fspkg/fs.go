// Package fspkg provides helpers to set up the ledger data directory.
package fspkg

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Setup makes sure dataDir exists and returns a filesystem rooted at it.
func Setup(dataDir string) (afero.Fs, error) {
	osFs := afero.NewOsFs()

	// BasePathFs rejects every name under a relative base such as ".".
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve data dir %q", dataDir)
	}

	dataDir = abs

	if err := osFs.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %q", dataDir)
	}

	info, err := osFs.Stat(dataDir)
	if err != nil {
		return nil, errors.Wrapf(err, "stat data dir %q", dataDir)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("data dir %q is not a directory", dataDir)
	}

	return afero.NewBasePathFs(osFs, dataDir), nil
}

// AppendLine appends line and a trailing newline to the named file, creating it if needed.
func AppendLine(fs afero.Fs, name, line string) error {
	f, err := fs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open %q", name)
	}

	if _, err := f.Write([]byte(line + "\n")); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "append to %q", name)
	}

	return errors.Wrapf(f.Close(), "close %q", name)
}
