// Package toolchain wraps the external tools of the apk repack pipeline:
// apktool for decoding and rebuilding, jarsigner for signing and zipalign for
// alignment. Each component validates its filesystem preconditions, builds
// the tool's command line, executes it as a child process and relays the
// combined output.
package toolchain

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Config carries the resolved tool paths and signing settings. The paths are
// passed in explicitly at construction so components stay testable in
// isolation; the command layer fills them from the configuration file and
// environment.
type Config struct {
	ApktoolPath        string
	JarsignerPath      string
	ZipalignPath       string
	TimestampAuthority string
}

// Toolchain bundles the three tool wrappers. The components are independent;
// Toolchain only composes them.
type Toolchain struct {
	Apktool   *Apktool
	Jarsigner *Jarsigner
	Zipalign  *Zipalign
}

// New creates a Toolchain from the given configuration.
func New(cfg Config) *Toolchain {
	zap.S().Debugw("creating toolchain",
		"apktool", cfg.ApktoolPath,
		"jarsigner", cfg.JarsignerPath,
		"zipalign", cfg.ZipalignPath)

	return &Toolchain{
		Apktool:   NewApktool(cfg.ApktoolPath),
		Jarsigner: NewJarsigner(cfg.JarsignerPath, cfg.TimestampAuthority),
		Zipalign:  NewZipalign(cfg.ZipalignPath),
	}
}

// Repack rebuilds the decoded source tree at sourceDirPath into
// outputApkPath, resigns it with the given keystore and aligns it. The first
// failing step aborts the sequence.
func (t *Toolchain) Repack(sourceDirPath, outputApkPath, keystorePath, keystorePassword, keyAlias string) (string, error) {
	if outputApkPath == "" {
		return "", errors.New("output apk path is required to repack")
	}

	var outputs []string

	out, err := t.Apktool.Build(sourceDirPath, outputApkPath)
	if err != nil {
		return "", err
	}
	outputs = append(outputs, out)

	out, err = t.Jarsigner.Resign(outputApkPath, keystorePath, keystorePassword, keyAlias)
	if err != nil {
		return "", err
	}
	outputs = append(outputs, out)

	out, err = t.Zipalign.Align(outputApkPath)
	if err != nil {
		return "", err
	}
	outputs = append(outputs, out)

	var nonEmpty []string
	for _, o := range outputs {
		if o != "" {
			nonEmpty = append(nonEmpty, o)
		}
	}
	return strings.Join(nonEmpty, "\n"), nil
}
