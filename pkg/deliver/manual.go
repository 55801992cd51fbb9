package deliver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lookbook/pkg/encode"
)

// SaveInstruction is shown above the image in a fallback view.
const SaveInstruction = "Right-click the image and choose \"Save Image As…\", or use the button below."

var viewTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Filename}}</title>
<style>
body{margin:0;padding:24px;background:#fffbeb;font-family:Georgia,serif;color:#78350f;text-align:center}
p{margin:0 0 16px}
img{max-width:100%;height:auto;box-shadow:0 4px 24px rgba(0,0,0,.15)}
a{display:inline-block;margin:16px 0;padding:10px 24px;border-radius:6px;background:#b4830b;color:#fff;text-decoration:none}
</style>
</head>
<body>
<p>{{.Instruction}}</p>
<a href="{{.Source}}" download="{{.Filename}}">Save {{.Filename}}</a>
<div><img src="{{.Source}}" alt="{{.Filename}}"></div>
</body>
</html>
`))

type viewData struct {
	Filename    string
	Instruction string
	Source      template.URL
}

// Opener shows a file to the user.
type Opener func(ctx context.Context, path string) error

// Manual writes a self-contained HTML view of the image and opens it.
type Manual struct {
	dir    string
	open   bool
	opener Opener
	logger *log.Logger
}

// NewManual creates the manual fallback method. Views are written to dir;
// when open is set they are shown with the platform opener.
func NewManual(dir string, open bool, logger *log.Logger) *Manual {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manual{dir: dir, open: open, opener: OpenFile, logger: logger}
}

// WithOpener replaces the platform opener.
func (m *Manual) WithOpener(o Opener) *Manual {
	m.opener = o
	return m
}

func (m *Manual) Name() string { return "manual" }

// Deliver writes the view and returns its path. Failing to open the view is
// logged but not an error: the caller reports the path instead.
func (m *Manual) Deliver(ctx context.Context, blob encode.Blob, filename string) (string, error) {
	if len(blob.Bytes) == 0 {
		return "", fmt.Errorf("empty image")
	}

	var buf bytes.Buffer
	err := viewTemplate.Execute(&buf, viewData{
		Filename:    filename,
		Instruction: SaveInstruction,
		Source:      template.URL(blob.DataURI()),
	})
	if err != nil {
		return "", fmt.Errorf("build view: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create view dir: %w", err)
	}
	path := filepath.Join(m.dir, strings.TrimSuffix(filename, filepath.Ext(filename))+".html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write view: %w", err)
	}

	if m.open && m.opener != nil {
		if err := m.opener(ctx, path); err != nil {
			m.logger.Warn("Could not open the save view; open it manually", "path", path, "error", err)
		}
	}
	return path, nil
}

// OpenFile opens path with the desktop's default application. The viewer
// outlives the call, so ctx is not attached to the process.
func OpenFile(_ context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("opening files is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
