package viewport

type Config struct {
	// Largest rendering surface in pixels
	MaxWidth  float64 `yaml:"maxWidth"`
	MaxHeight float64 `yaml:"maxHeight"`
	// Space taken by the page around the surface, subtracted from the window
	MarginX float64 `yaml:"marginX"`
	MarginY float64 `yaml:"marginY"`
	// ---------------------------
	MinZoom float64 `yaml:"minZoom"`
	MaxZoom float64 `yaml:"maxZoom"`
	// Multipliers applied per wheel event
	ZoomInFactor  float64 `yaml:"zoomInFactor"`
	ZoomOutFactor float64 `yaml:"zoomOutFactor"`
	// Fraction of the surface the full point cloud spans from the centre
	FitFraction float64 `yaml:"fitFraction"`
}

func DefaultConfig() Config {
	return Config{
		MaxWidth:      800,
		MaxHeight:     600,
		MarginX:       48,
		MarginY:       200,
		MinZoom:       0.4,
		MaxZoom:       10,
		ZoomInFactor:  1.1,
		ZoomOutFactor: 0.9,
		FitFraction:   0.4,
	}
}
