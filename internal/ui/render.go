package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/lk2023060901/ai-summarizer/internal/gateway/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the single page template
const PageTemplate = "index.html"

// SummaryFormat selects how summary text is shown
type SummaryFormat string

const (
	// SummaryText shows the summary exactly as the upstream returned it
	SummaryText SummaryFormat = "text"
	// SummaryMarkdown renders the summary as markdown
	SummaryMarkdown SummaryFormat = "markdown"
)

// ParseSummaryFormat converts a config value into a SummaryFormat
func ParseSummaryFormat(s string) (SummaryFormat, error) {
	switch SummaryFormat(s) {
	case SummaryText, "":
		return SummaryText, nil
	case SummaryMarkdown:
		return SummaryMarkdown, nil
	default:
		return SummaryText, fmt.Errorf("unknown summary format %q", s)
	}
}

// markdown renders summaries. Raw HTML in the input is printed as text.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(renderer.WithNodeRenderers(
		util.Prioritized(escapedHTML{}, 100),
	)),
)

// escapedHTML replaces the default raw HTML renderers, which omit the
// source, with ones that write it escaped.
type escapedHTML struct{}

func (escapedHTML) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindRawHTML, renderEscapedInline)
	reg.Register(ast.KindHTMLBlock, renderEscapedBlock)
}

func renderEscapedInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		_, _ = w.Write(util.EscapeHTML(segment.Value(source)))
	}
	return ast.WalkSkipChildren, nil
}

func renderEscapedBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		_, _ = w.WriteString("<p>")
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			_, _ = w.Write(util.EscapeHTML(line.Value(source)))
		}
		return ast.WalkContinue, nil
	}

	if n.HasClosure() {
		_, _ = w.Write(util.EscapeHTML(n.ClosureLine.Value(source)))
	}
	_, _ = w.WriteString("</p>\n")
	return ast.WalkContinue, nil
}

// RenderMarkdown converts summary text into safe HTML
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// optionClass marks the correct option of a question
func optionClass(q types.QuizQuestion, label string) string {
	if q.IsCorrect(label) {
		return "option correct"
	}
	return "option"
}

// LoadTemplates parses the embedded page template
func LoadTemplates() (*template.Template, error) {
	return template.New(PageTemplate).Funcs(template.FuncMap{
		"markdown":    RenderMarkdown,
		"optionClass": optionClass,
		"inc":         func(i int) int { return i + 1 },
	}).ParseFS(templateFS, "templates/*.html")
}

// page is the template data
type page struct {
	ViewState
	Modes    []Mode
	Markdown bool
}

func newPage(s ViewState, format SummaryFormat) page {
	return page{ViewState: s, Modes: Modes, Markdown: format == SummaryMarkdown}
}
