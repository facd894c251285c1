package content

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jmgilman/objfs/fs/core"
)

// genericType is the content type object stores assign when the uploader
// did not provide one.
const genericType = "application/octet-stream"

// MimeInfoFactory derives ContentInfo from the content type the provider
// stored with the entry, and otherwise by sniffing the entry's leading bytes.
type MimeInfoFactory struct{}

// Create implements core.ContentInfoFactory.
func (MimeInfoFactory) Create(c core.Content) (core.ContentInfo, error) {
	file := c.File()
	info, err := file.FileSystem().Stat(file.Name())
	if err != nil {
		return core.ContentInfo{}, contentError("contentinfo", file.Name(), err)
	}
	if info.IsDir() {
		return core.ContentInfo{}, contentError("contentinfo", file.Name(), core.ErrIsDir)
	}

	if typer, ok := info.Sys().(core.ContentTyper); ok {
		if ct := typer.ContentType(); ct != "" && ct != genericType {
			return parseContentType(ct), nil
		}
	}

	in, err := c.InputStream()
	if err != nil {
		return core.ContentInfo{}, err
	}
	defer func() { _ = in.Close() }()

	m, err := mimetype.DetectReader(in)
	if err != nil {
		return core.ContentInfo{}, contentError("contentinfo", file.Name(), err)
	}
	return parseContentType(m.String()), nil
}

func parseContentType(ct string) core.ContentInfo {
	info := core.ContentInfo{ContentType: ct}
	if _, params, err := mime.ParseMediaType(ct); err == nil {
		info.Encoding = strings.ToLower(params["charset"])
	}
	return info
}

var _ core.ContentInfoFactory = MimeInfoFactory{}
