package toolchain

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Zipalign realigns the internal data boundaries of an apk for runtime
// efficiency.
type Zipalign struct {
	path string
}

// NewZipalign creates a Zipalign invoking the executable at path.
func NewZipalign(path string) *Zipalign {
	return &Zipalign{path: path}
}

// Align aligns the apk at apkPath on 4-byte boundaries. zipalign cannot
// rewrite a file in place, so the original is copied to a sibling temporary
// file and aligned back over itself; the copy is removed on every exit path.
func (z *Zipalign) Align(apkPath string) (string, error) {
	if !isFile(apkPath) {
		zap.S().Errorw("unable to find apk to align", "apk", apkPath)
		return "", errors.Wrapf(ErrNotFound, "unable to find file %q", apkPath)
	}

	copyPath := stripExt(apkPath) + ".copy.apk"

	if err := copyFile(apkPath, copyPath); err != nil {
		zap.S().Errorw("failed to create temporary copy for zipalign",
			"apk", apkPath,
			"copy", copyPath,
			"error", err)
		return "", errors.Mark(err, ErrExecution)
	}
	defer func() {
		if err := os.Remove(copyPath); err != nil && !os.IsNotExist(err) {
			zap.S().Warnw("failed to remove temporary copy",
				"copy", copyPath,
				"error", err)
		}
	}()

	return run(z.path, "-f", "4", copyPath, apkPath)
}
