package render

// Option is a functional option for configuring a Renderer.
type Option func(*config)

type config struct {
	fontDir    string
	stationery string
}

// WithFontDir sets the directory where font files are located. Core fonts
// need no directory.
func WithFontDir(dir string) Option {
	return func(c *config) {
		c.fontDir = dir
	}
}

// WithStationery sets a PDF file whose first page is imported and drawn
// under every page, for printing on official institutional stationery.
func WithStationery(path string) Option {
	return func(c *config) {
		c.stationery = path
	}
}

// New creates a Renderer using functional options. With no options it draws
// on blank pages with the built-in core fonts.
func New(opts ...Option) *Renderer {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Renderer{cfg: cfg}
}
