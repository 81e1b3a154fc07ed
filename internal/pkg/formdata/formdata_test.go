package formdata

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	body, contentType, err := Build(
		[]Field{{Name: "topic", Value: "Quantum Computing"}},
		[]File{{FieldName: "file", Filename: `notes "v2".pdf`, ContentType: "application/pdf", Data: []byte("%PDF-1.4")}},
	)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(body, params["boundary"])

	part, err := r.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "topic", part.FormName())
	value, _ := io.ReadAll(part)
	assert.Equal(t, "Quantum Computing", string(value))

	part, err = r.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, `notes "v2".pdf`, part.FileName())
	assert.Equal(t, "application/pdf", part.Header.Get("Content-Type"))
	data, _ := io.ReadAll(part)
	assert.Equal(t, "%PDF-1.4", string(data))

	_, err = r.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBuild_DefaultContentType(t *testing.T) {
	body, contentType, err := Build(nil, []File{{FieldName: "file", Filename: "blob"}})
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)

	part, err := multipart.NewReader(body, params["boundary"]).NextPart()
	require.NoError(t, err)
	assert.Equal(t, DefaultContentType, part.Header.Get("Content-Type"))
}
