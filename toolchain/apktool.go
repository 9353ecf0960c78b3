package toolchain

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Apktool decodes an apk into an editable source tree and rebuilds a source
// tree back into an apk.
type Apktool struct {
	path string
}

// NewApktool creates an Apktool invoking the executable at path.
func NewApktool(path string) *Apktool {
	return &Apktool{path: path}
}

// Decode decodes the apk at apkPath into outputDirPath. When outputDirPath is
// empty the result is saved next to the input, in a directory named after it.
// An existing output directory is only overwritten when force is set.
func (a *Apktool) Decode(apkPath, outputDirPath string, force bool) (string, error) {
	if !isFile(apkPath) {
		zap.S().Errorw("unable to find apk to decode", "apk", apkPath)
		return "", errors.Wrapf(ErrNotFound, "unable to find file %q", apkPath)
	}

	if outputDirPath == "" {
		outputDirPath = stripExt(apkPath)
		zap.S().Debugw("no output directory provided, deriving from the input path",
			"output_dir", outputDirPath)
	} else if !isDir(filepath.Dir(outputDirPath)) {
		// apktool creates the leaf directory itself but not its parents.
		zap.S().Errorw("parent of the output directory does not exist",
			"output_dir", outputDirPath)
		return "", errors.Wrapf(ErrDirectoryMissing,
			"unable to find output directory %q", filepath.Dir(outputDirPath))
	}

	if isDir(outputDirPath) && !force {
		zap.S().Errorw("output directory already exists, use force to overwrite",
			"output_dir", outputDirPath)
		return "", errors.Wrapf(ErrAlreadyExists,
			"output directory %q already exists, use force to overwrite", outputDirPath)
	}

	args := []string{"d"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, apkPath, "-o", outputDirPath)

	return run(a.path, args...)
}

// Build rebuilds the decoded source tree at sourceDirPath into an apk. When
// outputApkPath is empty apktool saves the result in its default location,
// <sourceDirPath>/dist/<source dir name>.apk.
func (a *Apktool) Build(sourceDirPath, outputApkPath string) (string, error) {
	if !isDir(sourceDirPath) {
		zap.S().Errorw("unable to find source directory to build",
			"source_dir", sourceDirPath)
		return "", errors.Wrapf(ErrDirectoryMissing,
			"unable to find source directory %q", sourceDirPath)
	}

	if outputApkPath == "" {
		zap.S().Debugw("no output apk path provided, apktool will use its default",
			"default", filepath.Join(sourceDirPath, "dist",
				filepath.Base(filepath.Clean(sourceDirPath))+".apk"))
	}

	args := []string{"b", "--force-all", sourceDirPath}
	if outputApkPath != "" {
		args = append(args, "-o", outputApkPath)
	}

	return run(a.path, args...)
}
