package dataset_test

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// arr describes one array member of a fixture archive.
type arr struct {
	key     string
	descr   string
	shape   []int
	fortran bool
	data    any
}

// npyBytes encodes a in NPY v1.0 form: magic, version, little-endian
// header length, the padded header dict, then the raw element bytes.
func npyBytes(t *testing.T, a arr) []byte {
	t.Helper()

	dims := make([]string, len(a.shape))
	for i, d := range a.shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := strings.Join(dims, ", ")
	if len(a.shape) == 1 {
		tuple += ","
	}
	order := "False"
	if a.fortran {
		order = "True"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': (%s), }", a.descr, order, tuple)
	if pad := 64 - (10+len(header)+1)%64; pad < 64 {
		header += strings.Repeat(" ", pad)
	}
	header += "\n"

	buf := new(bytes.Buffer)
	buf.Write([]byte{0x93, 'N', 'U', 'M', 'P', 'Y', 1, 0})
	require.NoError(t, binary.Write(buf, binary.LittleEndian, uint16(len(header))))
	buf.WriteString(header)
	require.NoError(t, binary.Write(buf, binary.LittleEndian, a.data))
	return buf.Bytes()
}

// writeNPZ assembles the members into a zip archive at path, creating
// parent directories as needed.
func writeNPZ(t *testing.T, path string, arrays []arr) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, a := range arrays {
		w, err := zw.Create(a.key + ".npy")
		require.NoError(t, err)
		_, err = w.Write(npyBytes(t, a))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

// writeFile writes a text fixture, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
