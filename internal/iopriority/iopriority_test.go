package iopriority_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/internal/iopriority"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	scores := dataset.Scores{"b": 0.25, "a": 3, "c": 0}
	var buf strings.Builder
	err := iopriority.Write(&buf, []string{"c", "a", "missing", "b"}, scores)
	require.NoError(t, err)
	assert.Equal(t, "c\t0\na\t3\nb\t0.25\n", buf.String())
}

func TestWriteEmpty(t *testing.T) {
	assert.Empty(t, iopriority.Bytes(nil, dataset.Scores{}))
}

func TestRoundTrip(t *testing.T) {
	ids := []string{"hCoV-19/Japan/TK-1/2020", "hCoV-19/Italy/LO-3/2020"}
	scores := dataset.Scores{ids[0]: 1.5, ids[1]: 0.0001}

	path := filepath.Join(t.TempDir(), "priorities.tsv")
	require.NoError(t, os.WriteFile(path, iopriority.Bytes(ids, scores), 0644))

	gotIDs, gotScores, err := iopriority.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ids, gotIDs)
	assert.Equal(t, scores, gotScores)
}

func TestReadEmpty(t *testing.T) {
	ids, scores, err := iopriority.Read(strings.NewReader(""), "empty")
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, scores)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		msg string
		in  string
	}{
		{"not a number", "a\tten\n"},
		{"one field", "a\n"},
		{"negative", "a\t-1\n"},
		{"empty id", "\t1\n"},
		{"repeated", "a\t1\na\t2\n"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, _, err := iopriority.Read(strings.NewReader(v.in), v.msg)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, errcode.DataMalformedPriorityError, gnErr.Code)
			assert.Equal(t, errcode.DataClass, errcode.ErrorClass(err))
		})
	}
}
