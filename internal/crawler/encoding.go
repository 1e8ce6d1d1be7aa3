package crawler

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
)

// resty already decodes gzip bodies, brotli is decoded here.
const acceptEncoding = "br, gzip"

func decodeBrotli(_ *resty.Client, res *resty.Response) error {
	encoding := res.Header().Get("content-encoding")
	if !strings.EqualFold(strings.TrimSpace(encoding), "br") {
		return nil
	}

	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(res.Body())))
	if err != nil {
		return fmt.Errorf("decode brotli body: %w", err)
	}
	res.SetBody(decoded)
	res.Header().Del("content-encoding")
	return nil
}
