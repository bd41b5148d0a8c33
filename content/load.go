package content

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

const maxSourceSize = 64 << 20

// ReadFile loads source from the file, see Load for details.
func ReadFile(path string, format Format, log *zap.Logger) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open source: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	src, err := Load(f, name, format, log)
	if err != nil {
		return nil, err
	}
	src.Dir = filepath.Dir(path)
	return src, nil
}

// Load reads source document. Input starting with XML markup is parsed as
// structured document, anything else is treated as plain text in whatever
// encoding could be detected.
func Load(r io.Reader, name string, format Format, log *zap.Logger) (*Source, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}
	if len(data) > maxSourceSize {
		return nil, fmt.Errorf("source %q is too big, limit is %d bytes", name, maxSourceSize)
	}

	if looksLikeXML(data) {
		log.Debug("Loading structured source", zap.String("name", name), zap.Int("bytes", len(data)))
		return ParseXML(bytes.NewReader(data), name, format, log)
	}

	text, enc, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %q: %w", name, err)
	}
	log.Debug("Loading plain text source", zap.String("name", name), zap.String("encoding", enc), zap.Int("bytes", len(data)))
	return NewSource(name, text, format), nil
}

func looksLikeXML(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(data, []byte("<?xml")) || bytes.HasPrefix(data, []byte("<document"))
}

func decodeText(data []byte) (string, string, error) {
	enc, name, _ := charset.DetermineEncoding(data, "text/plain")
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", name, err
	}
	return strings.TrimPrefix(string(out), "\ufeff"), name, nil
}
