package iofs

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnsubsample/pkg/config"
	"github.com/gnames/gnsubsample/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	home := "/home/user"
	cause := errors.New("permission denied")

	tests := []struct {
		msg     string
		err     error
		code    gn.ErrorCode
		path    string
		userMsg string
		errMsg  string
	}{
		{
			msg:     "priority cache dir",
			err:     CreateDirError(config.PriorityCacheDir(home), cause),
			code:    errcode.CreateDirError,
			path:    "/home/user/.cache/gnsubsample/priorities",
			userMsg: "--output-dir",
			errMsg:  "cannot create directory",
		},
		{
			msg:     "default config",
			err:     CopyFileError(config.ConfigFilePath(home), cause),
			code:    errcode.CopyFileError,
			path:    "/home/user/.config/gnsubsample/config.yaml",
			userMsg: "GNSUBSAMPLE_",
			errMsg:  "cannot copy config",
		},
		{
			msg:     "metadata",
			err:     ReadFileError("data/metadata.tsv.xz", cause),
			code:    errcode.ReadFileError,
			path:    "data/metadata.tsv.xz",
			userMsg: "Cannot read",
			errMsg:  "cannot read",
		},
		{
			msg: "merged alignment",
			err: WriteFileError(
				filepath.Join("out", "subsampled_alignment_europe.fasta"), cause,
			),
			code:    errcode.WriteFileError,
			path:    "out/subsampled_alignment_europe.fasta",
			userMsg: "subsampling output",
			errMsg:  "cannot write",
		},
		{
			msg:     "compressed sequences",
			err:     DecompressError("aligned.fasta.xz", cause),
			code:    errcode.ReadFileError,
			path:    "aligned.fasta.xz",
			userMsg: "xz",
			errMsg:  "cannot decompress",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
			assert.Equal(t, errcode.IOClass, errcode.ErrorClass(v.err))

			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, v.path, gnErr.Vars[0])
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			assert.Contains(t, gnErr.Msg, v.userMsg)
			assert.Contains(t,
				fmt.Sprintf(gnErr.Msg, gnErr.Vars...), v.path)

			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), v.errMsg)
			assert.Contains(t, gnErr.Err.Error(), v.path)
			// runtime.Caller adds the calling function
			assert.Contains(t, gnErr.Err.Error(), "from ")
		})
	}
}
