// Package formdata builds multipart/form-data bodies for outbound requests,
// keeping each file part's original filename and MIME type.
package formdata

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// DefaultContentType is used for file parts that arrive without a MIME type
const DefaultContentType = "application/octet-stream"

// Field is a plain text form field
type Field struct {
	Name  string
	Value string
}

// File is a file part
type File struct {
	FieldName   string
	Filename    string
	ContentType string
	Data        []byte
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Build encodes fields (in order) followed by files (in order) and returns the
// body together with the Content-Type header value carrying the boundary.
func Build(fields []Field, files []File) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", f.Name, err)
		}
	}

	for _, f := range files {
		contentType := f.ContentType
		if contentType == "" {
			contentType = DefaultContentType
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.Filename)))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %q: %w", f.FieldName, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %q: %w", f.FieldName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, w.FormDataContentType(), nil
}
