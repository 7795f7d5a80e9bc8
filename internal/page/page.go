// Package page renders the search page and checks at startup that it carries
// every element the search flow depends on.
package page

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element ids the page script and the search flow rely on.
const (
	FormID         = "search-form"
	AddressInputID = "address"
	MapContainerID = "map"
)

const (
	templateName = "index.html"
	scriptName   = "search.js"
)

//go:embed assets/index.html assets/search.js
var assets embed.FS

// ErrMissingElement is returned when the page template lacks a required element.
var ErrMissingElement = errors.New("required page element is missing")

// Page holds the parsed template and script, validated once at load time.
type Page struct {
	tmpl       *template.Template
	script     []byte
	browserKey string
}

// Data is what a single render shows besides the empty form.
type Data struct {
	Address      string
	View         *models.MapView
	AlertMessage string
}

type templateData struct {
	BrowserKey   string
	Address      string
	ViewJSON     string
	AlertMessage string
}

// New loads the embedded page.
func New(browserKey string) (*Page, error) {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return nil, fmt.Errorf("failed to open page assets: %w", err)
	}

	return NewFromFS(sub, browserKey)
}

// NewFromFS loads index.html and search.js from fsys and verifies that the rendered
// page contains the form, the address input inside it, and the map container.
func NewFromFS(fsys fs.FS, browserKey string) (*Page, error) {
	tmpl, err := template.ParseFS(fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	script, err := fs.ReadFile(fsys, scriptName)
	if err != nil {
		return nil, fmt.Errorf("failed to read page script: %w", err)
	}

	pg := &Page{tmpl: tmpl, script: script, browserKey: browserKey}

	var buf bytes.Buffer
	if err = pg.Render(&buf, Data{}); err != nil {
		return nil, err
	}

	if err = validate(&buf); err != nil {
		return nil, err
	}

	return pg, nil
}

// Container returns the id of the element the map widget mounts into.
func (p *Page) Container() string {
	return MapContainerID
}

// Script returns the browser script served alongside the page.
func (p *Page) Script() []byte {
	return p.script
}

// Render writes the page. A view is handed to the script as JSON for rendering
// once the Maps API has loaded.
func (p *Page) Render(w io.Writer, data Data) error {
	td := templateData{
		BrowserKey:   p.browserKey,
		Address:      data.Address,
		AlertMessage: data.AlertMessage,
	}

	if data.View != nil {
		raw, err := json.Marshal(data.View)
		if err != nil {
			return fmt.Errorf("failed to encode map view: %w", err)
		}
		td.ViewJSON = string(raw)
	}

	if err := p.tmpl.ExecuteTemplate(w, templateName, td); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}

// validate parses the rendered page and reports every required element it lacks.
func validate(r io.Reader) error {
	doc, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse rendered page: %w", err)
	}

	form := findByID(doc, FormID)
	var missing []error
	switch {
	case !isElement(form, atom.Form):
		missing = append(missing, fmt.Errorf("%w: form#%s", ErrMissingElement, FormID))
	case !isElement(findByID(form, AddressInputID), atom.Input):
		missing = append(missing, fmt.Errorf("%w: input#%s inside form", ErrMissingElement, AddressInputID))
	}

	if findByID(doc, MapContainerID) == nil {
		missing = append(missing, fmt.Errorf("%w: #%s", ErrMissingElement, MapContainerID))
	}

	return errors.Join(missing...)
}

func isElement(node *html.Node, kind atom.Atom) bool {
	return node != nil && node.DataAtom == kind
}

func findByID(node *html.Node, id string) *html.Node {
	if node.Type == html.ElementNode {
		for _, attr := range node.Attr {
			if attr.Key == "id" && attr.Val == id {
				return node
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findByID(child, id); found != nil {
			return found
		}
	}

	return nil
}
