package toolchain

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// signaturePrefix is the archive path prefix holding signing material.
const signaturePrefix = "META-INF/"

// Jarsigner signs an apk with a keystore-based signature and can strip a
// pre-existing signature before resigning.
type Jarsigner struct {
	path   string
	tsaURL string
}

// NewJarsigner creates a Jarsigner invoking the executable at path and
// requesting timestamps from tsaURL.
func NewJarsigner(path, tsaURL string) *Jarsigner {
	return &Jarsigner{path: path, tsaURL: tsaURL}
}

// Sign signs the apk at apkPath with the key at keyAlias in the given
// keystore. The keystore password ends up on the jarsigner command line,
// visible to other processes on the host; that is inherent to jarsigner's
// interface.
func (j *Jarsigner) Sign(apkPath, keystorePath, keystorePassword, keyAlias string) (string, error) {
	if !isFile(apkPath) {
		zap.S().Errorw("unable to find apk to sign", "apk", apkPath)
		return "", errors.Wrapf(ErrNotFound, "unable to find file %q", apkPath)
	}

	args := []string{
		"-tsa", j.tsaURL,
		"-sigalg", "SHA1withRSA", "-digestalg", "SHA1",
		"-keystore", keystorePath,
		"-storepass", keystorePassword,
		apkPath, keyAlias,
	}

	return run(j.path, args...)
}

// Resign removes the current signature of the apk, if any, and signs it
// again. An unsigned apk is left untouched before signing.
func (j *Jarsigner) Resign(apkPath, keystorePath, keystorePassword, keyAlias string) (string, error) {
	if !isFile(apkPath) {
		zap.S().Errorw("unable to find apk to resign", "apk", apkPath)
		return "", errors.Wrapf(ErrNotFound, "unable to find file %q", apkPath)
	}

	if err := j.removeSignature(apkPath); err != nil {
		return "", err
	}

	return j.Sign(apkPath, keystorePath, keystorePassword, keyAlias)
}

// removeSignature rewrites the apk without its META-INF/ entries. A zip entry
// cannot be deleted in place, so the replacement archive is built fully in
// memory and then swapped in with a rename; a truncated apk is never left on
// disk.
func (j *Jarsigner) removeSignature(apkPath string) error {
	stripped, signed, err := stripSignature(apkPath)
	if err != nil {
		zap.S().Errorw("error during the removal of the old signature",
			"apk", apkPath,
			"error", err)
		return errors.Mark(err, ErrArchiveRewrite)
	}

	if !signed {
		return nil
	}

	zap.S().Infow("removing current signature from apk", "apk", apkPath)

	if err := replaceFile(apkPath, stripped); err != nil {
		zap.S().Errorw("error during the removal of the old signature",
			"apk", apkPath,
			"error", err)
		return errors.Mark(err, ErrArchiveRewrite)
	}

	return nil
}

// stripSignature returns the archive at apkPath rebuilt without entries under
// the signature prefix. The bool result reports whether the archive was
// signed at all; when false the returned bytes are nil and the file is
// untouched.
func stripSignature(apkPath string) ([]byte, bool, error) {
	reader, err := zip.OpenReader(apkPath)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to open archive %q", apkPath)
	}
	defer reader.Close()

	signed := false
	for _, entry := range reader.File {
		if strings.HasPrefix(entry.Name, signaturePrefix) {
			signed = true
			break
		}
	}
	if !signed {
		return nil, false, nil
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, entry := range reader.File {
		if strings.HasPrefix(entry.Name, signaturePrefix) {
			continue
		}

		// Raw copy keeps each entry's compression, timestamps and content
		// byte-for-byte.
		src, err := entry.OpenRaw()
		if err != nil {
			return nil, true, errors.Wrapf(err, "failed to read entry %q", entry.Name)
		}

		header := entry.FileHeader
		dst, err := writer.CreateRaw(&header)
		if err != nil {
			return nil, true, errors.Wrapf(err, "failed to write entry %q", entry.Name)
		}

		if _, err := io.Copy(dst, src); err != nil {
			return nil, true, errors.Wrapf(err, "failed to copy entry %q", entry.Name)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, true, errors.Wrap(err, "failed to finalize stripped archive")
	}

	return buf.Bytes(), true, nil
}

// replaceFile atomically replaces the file at path with data, via a sibling
// temporary file and a rename.
func replaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat %q", path)
	}

	tmpPath := path + ".unsigned"
	if err := os.WriteFile(tmpPath, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to write %q", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "failed to replace %q", path)
	}

	return nil
}
