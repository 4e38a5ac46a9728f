// Package testing moves test binaries to the module root, where the server
// binary runs, so logs/ and .env resolve identically. Import it for effect:
//
//	import _ "liyu1981.xyz/guardian-alert-service/pkg/testing"
package testing

import (
	"os"
	"path/filepath"
	"runtime"
)

func init() {
	_, filename, _, _ := runtime.Caller(0)
	if err := os.Chdir(moduleRoot(filepath.Dir(filename))); err != nil {
		panic(err)
	}
}

// moduleRoot walks up from dir to the nearest go.mod.
func moduleRoot(dir string) string {
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(filepath.Join(d, "go.mod")); err == nil {
			return d
		}
		if filepath.Dir(d) == d {
			return filepath.Join(dir, "..", "..")
		}
	}
}
