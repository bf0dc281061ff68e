package fipsmodule

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/MGTheTrain/fips-provider/internal/domain/fips"
)

// fingerprintKey is the HMAC key of the in-core integrity fingerprint.
const fingerprintKey = "etaonrishdlcupfm"

// referenceFingerprint is the hex encoded reference fingerprint, set at link time with
// -ldflags "-X github.com/MGTheTrain/fips-provider/internal/infrastructure/fipsmodule.referenceFingerprint=<hex>".
var referenceFingerprint string

func embeddedFingerprint() [fips.FingerprintSize]byte {
	var fp [fips.FingerprintSize]byte
	if b, err := hex.DecodeString(referenceFingerprint); err == nil {
		copy(fp[:], b)
	}
	return fp
}

// Info returns the build metadata of the running binary.
func (m *Module) Info() fips.ModuleInfo {
	info := fips.ModuleInfo{
		Version:  runtime.Version(),
		BuiltOn:  "unknown",
		Platform: runtime.GOOS + "-" + runtime.GOARCH,
	}

	if exe, err := os.Executable(); err == nil {
		info.Dir = filepath.Dir(exe)
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	var flags []string
	for _, s := range bi.Settings {
		switch s.Key {
		case "GOFIPS140":
			info.Version = fmt.Sprintf("%s (GOFIPS140=%s)", info.Version, s.Value)
		case "-tags", "-ldflags", "-gcflags", "CGO_CFLAGS":
			if s.Value != "" {
				flags = append(flags, s.Key+"="+s.Value)
			}
		case "vcs.time":
			info.BuiltOn = s.Value
		}
	}
	info.CFlags = strings.Join(flags, " ")

	return info
}

// ReferenceFingerprint returns the fingerprint the module image is expected to have.
func (m *Module) ReferenceFingerprint() [fips.FingerprintSize]byte {
	return m.reference
}

// IncoreFingerprint computes the HMAC-SHA-1 fingerprint of the module image.
func (m *Module) IncoreFingerprint() ([fips.FingerprintSize]byte, error) {
	var fp [fips.FingerprintSize]byte

	path := m.imagePath
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return fp, fmt.Errorf("failed to locate module image: %w", err)
		}
		path = exe
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fp, fmt.Errorf("failed to open module image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	mac := hmac.New(sha1.New, []byte(fingerprintKey))
	if _, err := io.Copy(mac, f); err != nil {
		return fp, fmt.Errorf("failed to read module image: %w", err)
	}
	copy(fp[:], mac.Sum(nil))

	return fp, nil
}
