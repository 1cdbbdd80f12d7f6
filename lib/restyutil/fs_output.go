// Package restyutil holds sinks for the HTTP exchanges recorded by
// telemetry.InstrumentResty.
package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemOutput writes every HTTP exchange into its own file, named after
// the request id and an optional prefix.
type FilesystemOutput struct {
	directory string
	prefix    string
}

func NewFilesystemOutput(dir, prefix string) (FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir, prefix: prefix}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	name := id + ".txt"
	if o.prefix != "" {
		name = o.prefix + "-" + name
	}
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	err := os.WriteFile(filepath.Join(o.directory, name), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
