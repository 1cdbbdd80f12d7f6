package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// decodeFile unmarshals a json5 file over `out`, fields missing from the file
// keep their value. `found` is false when the file does not exist.
func decodeFile[T any](path string, out *T) (found bool, err error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	return err == nil, err
}

// localName turns "dir/eplgraph.json5" into "dir/eplgraph.local.json5".
func localName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ReadConfig reads the configuration file `name` (extension included) over
// `defaults`, then <name>.local.<ext> over the result. A field set in a file
// wins even when it is set to its zero value. os.ErrNotExist is returned when
// neither file exists.
func ReadConfig[T any](name string, defaults T) (T, error) {
	var out T
	// copy so the maps of `defaults` are not written to
	err := mergo.Merge(&out, defaults)
	if err != nil {
		return defaults, err
	}

	foundDefault, err := decodeFile(name, &out)
	if err != nil {
		return out, err
	}

	local := localName(name)
	foundLocal, err := decodeFile(local, &out)
	if err != nil {
		return out, err
	}
	if foundLocal {
		slog.Info("merged config with local overrides", "local", local)
	}

	if !foundDefault && !foundLocal {
		return defaults, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig, looking for `name` in the working directory
// and then in every parent up to the filesystem root.
func ReadRecursively[T any](name string, defaults T) (T, error) {
	current, err := os.Getwd()
	if err != nil {
		return defaults, err
	}
	for {
		config, err := ReadConfig(filepath.Join(current, name), defaults)
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return defaults, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return defaults, os.ErrNotExist
		}
		current = parent
	}
}
