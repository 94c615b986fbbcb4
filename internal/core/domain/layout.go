package domain

import "path/filepath"

const (
	// DefaultConfigFile is the run file used when none is given on the command line.
	DefaultConfigFile = "ape.yaml"

	// ApeDirName is the name of the directory holding plugin output.
	ApeDirName = ".ape"

	// OutputDirName is the name of the plugin output directory.
	OutputDirName = "output"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultOutputPath returns the default directory for plugin output.
// It joins .ape and output.
func DefaultOutputPath() string {
	return filepath.Join(ApeDirName, OutputDirName)
}
