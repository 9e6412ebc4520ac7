package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Download fetches path and saves the body into dir under the filename from
// Content-Disposition (falling back to the last path element). It returns
// the saved file's path.
func (c *Client) Download(ctx context.Context, path, dir string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	name := attachmentName(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filepath.Base(path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	dst := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return dst, nil
}

// attachmentName returns a bare filename from a Content-Disposition header.
func attachmentName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := filepath.Base(params["filename"])
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// FileNavigator "navigates" by downloading into Dir, which is what a
// browser does with an attachment response.
type FileNavigator struct {
	Client *Client
	Dir    string
	// Saved is called with the path of each downloaded file.
	Saved func(path string)
}

func (n *FileNavigator) Navigate(ctx context.Context, path string) error {
	dst, err := n.Client.Download(ctx, path, n.Dir)
	if err != nil {
		return err
	}
	if n.Saved != nil {
		n.Saved(dst)
	}
	return nil
}
