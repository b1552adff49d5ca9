package web

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-adventure/internal/display"
	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/identity"
)

//go:embed templates
var templateFS embed.FS

// pageData is what the landing page templates see.
type pageData struct {
	Location     string
	LocationName string
	Health       int
	MaxHealth    int
	Inventory    []string
	Server       string
	Replica      string
}

func newPageData(snap game.Snapshot, id identity.Identity) pageData {
	inv := make([]string, len(snap.Inventory))
	for i, item := range snap.Inventory {
		inv[i] = item.String()
	}

	return pageData{
		Location:     snap.Location.String(),
		LocationName: display.Name(snap.Location.String()),
		Health:       snap.Health,
		MaxHealth:    game.MaxHealth,
		Inventory:    inv,
		Server:       id.Label(),
		Replica:      id.Replica,
	}
}

// renderer renders the landing page as HTML or plain text.
type renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func newRenderer() (*renderer, error) {
	html, err := htmltemplate.New("index.html.tmpl").
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing html template: %w", err)
	}

	text, err := texttemplate.New("index.txt.tmpl").
		Funcs(sprig.TxtFuncMap()).
		ParseFS(templateFS, "templates/index.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing text template: %w", err)
	}

	return &renderer{html: html, text: text}, nil
}

func (r *renderer) HTML(w io.Writer, data pageData) error {
	var buf bytes.Buffer
	if err := r.html.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing html template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *renderer) Text(w io.Writer, data pageData) error {
	var buf bytes.Buffer
	if err := r.text.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing text template: %w", err)
	}
	_, err := io.WriteString(w, display.Wrap(buf.String()))
	return err
}
