package recognition

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// FileCapturer serves a still image from disk as every frame.
type FileCapturer struct {
	Path string
}

// Capture reads the file and sniffs its content type.
func (f FileCapturer) Capture(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Frame{}, fmt.Errorf("read frame %s: %w", f.Path, err)
	}
	if len(data) == 0 {
		return Frame{}, ErrNoFrame
	}

	return Frame{Data: data, MIMEType: http.DetectContentType(data)}, nil
}
