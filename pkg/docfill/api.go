package docfill

import (
	"bytes"
	"io"
)

// Engine prepares templates and parses placeholder tokens.
// Use New() to create a new engine instance.
type Engine struct {
	config *Config
	cache  *ParseCache
}

// New creates a new engine with the global configuration.
func New() *Engine {
	return NewWithConfig(GetGlobalConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(config *Config) *Engine {
	config = NewConfigWithDefaults(config)
	return &Engine{
		config: config,
		cache:  NewParseCache(config.ParseCacheSize),
	}
}

// PrepareFile opens the DOCX file at path.
func (e *Engine) PrepareFile(path string) (*Template, error) {
	doc, err := Open(path)
	if err != nil {
		return nil, err
	}
	WithField("template", path).Debug("opened template")
	return &Template{name: path, doc: doc, engine: e}, nil
}

// Prepare reads a DOCX package from r.
func (e *Engine) Prepare(r io.Reader) (*Template, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, NewDocumentError("read", "", err)
	}
	doc, err := ReadBytes(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &Template{doc: doc, engine: e}, nil
}

// Parse parses a token through the engine's cache.
func (e *Engine) Parse(token string) (FieldData, error) {
	return e.cache.Parse(token)
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// ClearCache drops all cached parse results.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = New()

// PrepareFile opens a template with the default engine.
func PrepareFile(path string) (*Template, error) {
	return DefaultEngine.PrepareFile(path)
}

// Prepare reads a template with the default engine.
func Prepare(r io.Reader) (*Template, error) {
	return DefaultEngine.Prepare(r)
}
