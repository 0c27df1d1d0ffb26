// internal/device/format_test.go
package device

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"testing"
)

func TestSourcesAreGofmtClean(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		out, err := format.Source(src)
		if err != nil {
			t.Fatalf("format %s: %v", f, err)
		}
		if !bytes.Equal(src, out) {
			t.Errorf("%s is not gofmt-clean", f)
		}
	}
}
