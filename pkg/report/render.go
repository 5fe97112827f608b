package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/arthur-debert/vendorcp/pkg/errors"
	"github.com/arthur-debert/vendorcp/pkg/logging"
	"github.com/arthur-debert/vendorcp/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Listing describes a configured pipeline without running it
type Listing struct {
	SourceRoot string         `json:"sourceRoot" yaml:"sourceRoot"`
	VendorRoot string         `json:"vendorRoot" yaml:"vendorRoot"`
	Policy     string         `json:"policy" yaml:"policy"`
	ConfigPath string         `json:"configPath,omitempty" yaml:"configPath,omitempty"`
	Tasks      types.Pipeline `json:"tasks" yaml:"tasks"`
}

// Renderer writes summaries and listings in one output format
type Renderer struct {
	w         io.Writer
	format    Format
	styles    Styles
	templates *template.Template
	// Files lists every copied file under its task in term and text output.
	Files bool
}

// NewRenderer creates a Renderer. FormatAuto is resolved against w when w
// is a file and falls back to plain text otherwise.
func NewRenderer(w io.Writer, format Format) (*Renderer, error) {
	logger := logging.GetLogger("report")

	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	r := &Renderer{w: w, format: format}

	if format == FormatTerminal {
		lr := lipgloss.NewRenderer(w)
		styles, err := LoadStyles(lr, embeddedStyles)
		if err != nil {
			return nil, err
		}
		r.styles = styles
		logger.Debug().
			Str("colorProfile", fmt.Sprintf("%v", lr.ColorProfile())).
			Msg("Terminal renderer created")
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"style": r.styles.Render,
		"inc":   func(i int) int { return i + 1 },
		"join":  strings.Join,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse templates")
	}
	r.templates = tmpl

	return r, nil
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

// RenderSummary writes the outcome of a run
func (r *Renderer) RenderSummary(s *types.Summary) error {
	switch r.format {
	case FormatJSON:
		return r.encodeJSON(s)
	case FormatYAML:
		return r.encodeYAML(s)
	default:
		return r.execute("summary.tmpl", r.summaryView(s))
	}
}

// RenderListing writes the configured tasks
func (r *Renderer) RenderListing(l Listing) error {
	switch r.format {
	case FormatJSON:
		return r.encodeJSON(l)
	case FormatYAML:
		return r.encodeYAML(l)
	default:
		return r.execute("tasks.tmpl", l)
	}
}

func (r *Renderer) execute(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to execute template %s", name)
	}
	if _, err := r.w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write output")
	}
	return nil
}

func (r *Renderer) encodeJSON(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON")
	}
	return nil
}

func (r *Renderer) encodeYAML(v interface{}) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
	}
	return nil
}

type taskView struct {
	Marker string
	Style  string
	Name   string
	Route  string
	Detail string
	Empty  bool
	Error  string
	Files  []string
}

type summaryView struct {
	Title    string
	Tasks    []taskView
	Warnings []string
	Footer   string
}

var statusStyles = map[types.TaskStatus]string{
	types.TaskSucceeded: "Success",
	types.TaskFailed:    "Error",
	types.TaskPending:   "Pending",
	types.TaskRunning:   "Pending",
}

func (r *Renderer) summaryView(s *types.Summary) summaryView {
	view := summaryView{Warnings: s.Warnings}

	failed, pending := 0, 0
	for _, t := range s.Tasks {
		tv := taskView{
			Marker: "[" + string(t.Status) + "]",
			Style:  statusStyles[t.Status],
			Name:   t.Task.DisplayName(),
			Route:  t.Task.Source + " -> " + t.Task.Destination,
			Empty:  t.Empty,
			Error:  t.Error,
		}
		switch t.Status {
		case types.TaskSucceeded:
			tv.Marker = "[ok]"
			tv.Detail = countFiles(len(t.Files), t.Bytes)
		case types.TaskFailed:
			failed++
			if len(t.Files) > 0 {
				tv.Detail = countFiles(len(t.Files), t.Bytes) + " before failing"
			}
		case types.TaskPending:
			pending++
			tv.Marker = "[skipped]"
		}
		if r.Files {
			for _, f := range t.Files {
				tv.Files = append(tv.Files, f.Source+" -> "+f.Destination)
			}
		}
		view.Tasks = append(view.Tasks, tv)
	}

	total := countFiles(s.FilesCopied, s.BytesCopied)
	switch {
	case s.Status == types.PipelineFailed:
		view.Title = fmt.Sprintf("Vendoring failed: %d of %d tasks failed", failed, len(s.Tasks))
		if pending > 0 {
			view.Title += fmt.Sprintf(", %d not run", pending)
		}
	case s.DryRun:
		view.Title = fmt.Sprintf("Dry run: would copy %s in %s", total, english.Plural(len(s.Tasks), "task", "tasks"))
	default:
		view.Title = fmt.Sprintf("Vendored %s in %s", total, english.Plural(len(s.Tasks), "task", "tasks"))
	}

	if d := s.Duration(); d > 0 {
		view.Footer = "took " + d.Round(time.Millisecond).String()
	}
	return view
}

func countFiles(n int, size int64) string {
	return fmt.Sprintf("%s (%s)", english.Plural(n, "file", "files"), humanize.Bytes(uint64(size)))
}
