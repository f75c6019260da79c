package textenc_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-cmd/xpense/internal/textenc"
)

func TestDecodeReader_UTF8Passthrough(t *testing.T) {
	input := "EXP-0001|Café for crew|12.50|2024-03-01T12:00:00Z|Food|A001\n"

	r, err := textenc.DecodeReader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestDecodeReader_UTF8BOMStripped(t *testing.T) {
	content := "name|description|color\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := textenc.DecodeReader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestDecodeReader_Windows1252(t *testing.T) {
	// Windows-1252 bytes: 0xE9 is é, 0x80 is €.
	input := []byte{'C', 'a', 'f', 0xE9, '|', 0x80, '\n'}

	r, err := textenc.DecodeReader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café|€\n", string(got))
}

func TestDecodeReader_UTF16LE(t *testing.T) {
	var input []byte
	input = append(input, 0xFF, 0xFE)

	for _, r := range "A001|Site|100.00\n" {
		input = append(input, byte(r), 0x00)
	}

	r, err := textenc.DecodeReader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "A001|Site|100.00\n", string(got))
}
