package chart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ErrCaptureFailed — снимок графика не получился. Не фатально: цикл сигналов
// продолжает работать без картинки.
var ErrCaptureFailed = errors.New("chart: capture failed")

// Capturer забирает отрендеренный график инструмента по HTTP и сохраняет
// его как PNG-файл вида {pair}_{unix}.png в рабочем каталоге.
type Capturer struct {
	http    *http.Client
	baseURL string
	dir     string
}

func New(baseURL, dir string) *Capturer {
	return &Capturer{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		dir:     dir,
	}
}

func (c *Capturer) Capture(ctx context.Context, pair string) (string, error) {
	if c.baseURL == "" {
		return "", errors.Wrap(ErrCaptureFailed, "chart url is not configured")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", errors.Wrap(ErrCaptureFailed, err.Error())
	}

	u := c.baseURL + "?pair=" + url.QueryEscape(pair)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Wrap(ErrCaptureFailed, err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrCaptureFailed, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(ErrCaptureFailed, "chart backend status %d", resp.StatusCode)
	}

	path := filepath.Join(c.dir, fmt.Sprintf("%s_%d.png", pair, time.Now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(ErrCaptureFailed, err.Error())
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrap(ErrCaptureFailed, err.Error())
	}
	return path, nil
}
