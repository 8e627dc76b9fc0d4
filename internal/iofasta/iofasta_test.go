package iofasta_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iofasta"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `>hCoV-19/France/IDF-1/2020 EPI_ISL_1|2020-03-01
ACGTACGTAC
GTNN--ACGT

>hCoV-19/Japan/TK-1/2020
ACGTACGTACGTACGTACGT
`

func TestRead(t *testing.T) {
	recs, err := iofasta.Read(strings.NewReader(sample), "sample")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "hCoV-19/France/IDF-1/2020", recs[0].ID)
	assert.Equal(t, "ACGTACGTACGTNN--ACGT", string(recs[0].Seq))
	assert.Equal(t, "hCoV-19/Japan/TK-1/2020", recs[1].ID)
	assert.Len(t, recs[1].Seq, 20)
}

func TestReadEmpty(t *testing.T) {
	recs, err := iofasta.Read(strings.NewReader("\n\n"), "empty")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		msg  string
		in   string
		code gn.ErrorCode
	}{
		{"sequence before header", "ACGT\n>a\nACGT\n",
			errcode.DataMalformedSequenceError},
		{"empty identifier", ">\nACGT\n", errcode.DataMalformedSequenceError},
		{"blank identifier", ">   \nACGT\n", errcode.DataMalformedSequenceError},
		{"no sequence", ">a\n>b\nACGT\n", errcode.DataMalformedSequenceError},
		{"no sequence at end", ">a\nACGT\n>b\n", errcode.DataMalformedSequenceError},
		{"duplicate", ">a\nACGT\n>b\nACGT\n>a extra\nACGT\n",
			errcode.DataDuplicateSequenceError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			recs, err := iofasta.Read(strings.NewReader(v.in), v.msg)
			require.Error(t, err)
			assert.Nil(t, recs)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
			assert.Equal(t, errcode.DataClass, errcode.ErrorClass(err))
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	long := bytes.Repeat([]byte("ACGTN"), 40)
	recs := []dataset.Record{
		{ID: "a", Seq: long},
		{ID: "b", Seq: []byte("AC")},
	}

	var buf bytes.Buffer
	require.NoError(t, iofasta.Write(&buf, recs))
	assert.Equal(t, buf.String(), string(iofasta.Bytes(recs)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, ">a", lines[0])
	assert.Len(t, lines[1], 80)
	assert.Len(t, lines[3], 40)

	res, err := iofasta.Read(&buf, "buffer")
	require.NoError(t, err)
	assert.Equal(t, recs, res)
}

func TestReadFileCompressed(t *testing.T) {
	dir := t.TempDir()
	want, err := iofasta.Read(strings.NewReader(sample), "sample")
	require.NoError(t, err)

	plain := filepath.Join(dir, "aligned.fasta")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0644))

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err = gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	gzPath := filepath.Join(dir, "aligned.fasta.gz")
	require.NoError(t, os.WriteFile(gzPath, gz.Bytes(), 0644))

	var zb bytes.Buffer
	zw := zip.NewWriter(&zb)
	fw, err := zw.Create("aligned.fasta")
	require.NoError(t, err)
	_, err = fw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	// no extension on purpose, detection uses magic bytes
	zipPath := filepath.Join(dir, "aligned")
	require.NoError(t, os.WriteFile(zipPath, zb.Bytes(), 0644))

	for _, path := range []string{plain, gzPath, zipPath} {
		got, err := iofasta.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := iofasta.ReadFile(filepath.Join(t.TempDir(), "none.fasta"))
	require.Error(t, err)
	assert.Equal(t, errcode.IOClass, errcode.ErrorClass(err))
}
