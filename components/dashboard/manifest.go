package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestV1 = "1"
	// ManifestVersion is the manifest format written by pulsectl scaffold.
	ManifestVersion = manifestV1
)

// WidgetManifestDocument is a widget pack: a YAML/JSON file through which a
// partner app ships widget definitions into the merchant dashboard without
// linking against this module.
type WidgetManifestDocument struct {
	Version  string           `json:"version" yaml:"version"`
	Name     string           `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string           `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string           `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Widgets  []ManifestWidget `json:"widgets" yaml:"widgets"`
	Source   string           `json:"-" yaml:"-"`
}

// ManifestWidget pairs a widget definition with discovery metadata about the
// partner provider that will serve it.
type ManifestWidget struct {
	Definition  WidgetDefinition `json:"definition" yaml:"definition"`
	Provider    ManifestProvider `json:"provider,omitempty" yaml:"provider,omitempty"`
	Maintainers []string         `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestProvider describes where a manifest widget's data comes from. The
// dashboard stores it verbatim; hosts use it to locate and wire the provider.
type ManifestProvider struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Entry        string   `json:"entry,omitempty" yaml:"entry,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Channel      string   `json:"channel,omitempty" yaml:"channel,omitempty"`
}

// DecodeManifest parses and validates a widget pack from r. Unknown fields are
// rejected so typos in hand-edited packs fail loudly.
func DecodeManifest(r io.Reader) (*WidgetManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc WidgetManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: widget pack is empty")
		}
		return nil, fmt.Errorf("dashboard: parse widget pack: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestV1
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadManifest loads a widget pack from disk without registering it.
func ReadManifest(path string) (*WidgetManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open widget pack %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode widget pack %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// LoadManifestFile reads a widget pack from disk and registers its widgets.
func (r *Registry) LoadManifestFile(path string) (*WidgetManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers every definition in the pack along with the
// provider metadata so hosts can discover which widgets still need wiring.
func (r *Registry) LoadManifestDocument(doc *WidgetManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: widget pack document is nil")
	}
	for _, widget := range doc.Widgets {
		if err := r.RegisterDefinition(widget.Definition); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", widget.Definition.Code, doc.Source, err)
		}
		r.recordProviderMetadata(widget.Definition.Code, widget.Provider)
	}
	return nil
}

// Validate checks the version and that every widget carries a unique code and
// a display name.
func (doc *WidgetManifestDocument) Validate() error {
	if doc.Version != manifestV1 {
		return fmt.Errorf("dashboard: unsupported widget pack version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		code := widget.Definition.Code
		if code == "" {
			return fmt.Errorf("dashboard: widget pack entry %d is missing definition.code", idx)
		}
		if widget.Definition.Name == "" {
			return fmt.Errorf("dashboard: widget pack entry %s is missing definition.name", code)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("dashboard: widget pack repeats widget code %s", code)
		}
		seen[code] = struct{}{}
	}
	return nil
}

func (p ManifestProvider) isZero() bool {
	return p.Name == "" && p.Summary == "" && p.Entry == "" && p.Package == "" &&
		p.DocsURL == "" && p.Channel == "" && len(p.Capabilities) == 0
}
