package body

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultFileField is the part name used by the file-upload shorthand
// when the caller supplies none.
const DefaultFileField = "file"

// Part is one multipart entry. A part carries either an inline Value or a
// file Path; Path wins when both are set. Filename and ContentType are
// optional overrides.
type Part struct {
	Name        string
	Value       string
	Path        string
	Filename    string
	ContentType string
}

// IsFile reports whether the part reads its payload from disk.
func (p *Part) IsFile() bool {
	return p.Path != ""
}

// FilePart builds a file part from the upload shorthand: the name
// defaults to "file" and the filename to the path's final segment.
func FilePart(name, path, filename, contentType string) *Part {
	if name == "" {
		name = DefaultFileField
	}
	if filename == "" {
		filename = filepath.Base(path)
	}
	return &Part{
		Name:        name,
		Path:        path,
		Filename:    filename,
		ContentType: contentType,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(parts []*Part) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	// A fixed prefix plus a UUID keeps boundaries unique and greppable
	// in captures.
	if err := writer.SetBoundary("reqspec-" + uuid.NewString()); err != nil {
		return nil, "", err
	}

	for _, part := range parts {
		if err := writePart(writer, part); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

func writePart(writer *multipart.Writer, part *Part) error {
	if !part.IsFile() && part.ContentType == "" && part.Filename == "" {
		return writer.WriteField(part.Name, part.Value)
	}

	header := make(textproto.MIMEHeader)
	disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(part.Name))

	filename := part.Filename
	if part.IsFile() && filename == "" {
		filename = filepath.Base(part.Path)
	}
	if filename != "" {
		disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(filename))
	}
	header.Set("Content-Disposition", disposition)

	if part.ContentType != "" {
		header.Set("Content-Type", part.ContentType)
	} else if part.IsFile() {
		header.Set("Content-Type", "application/octet-stream")
	}

	w, err := writer.CreatePart(header)
	if err != nil {
		return err
	}

	if part.IsFile() {
		file, err := os.Open(part.Path)
		if err != nil {
			return fmt.Errorf("failed to open multipart file %s: %w", part.Path, err)
		}
		defer file.Close()
		_, err = io.Copy(w, file)
		return err
	}

	_, err = w.Write([]byte(part.Value))
	return err
}
