package config

import (
	"os"
	"path/filepath"

	"github.com/reusee/dscope"

	"gradsym/logging"
)

type Module struct {
	dscope.Module
}

// Loader locates gradsym.cue / .gradsym.cue in the working directory,
// the user config directory, and /etc, in that order, and returns a
// Loader over whichever of them exist.
func (Module) Loader(logger logging.Logger) Loader {
	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file", "paths", paths)
		}
	}()

	filenames := []string{"gradsym.cue", ".gradsym.cue"}

	if workingDir, err := os.Getwd(); err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	for _, filename := range filenames {
		path := filepath.Join("/etc", filename)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	return NewLoader(paths, schema)
}
