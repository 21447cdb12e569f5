package types

import "time"

// PageSize names the paper size used when docconv lays out PDF pages itself.
type PageSize string

const (
	PageLetter PageSize = "letter"
	PageA4     PageSize = "a4"
)

// Config holds the runtime settings shared by every converter. The zero value
// is not usable; call DefaultConfig and override fields from flags, the
// config file, or DOCCONV_* environment variables.
type Config struct {
	// DPI is the rasterisation resolution for PDF page images (default 150).
	DPI float64 `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// PageSize is the paper size for TXT and DOCX to PDF output (default letter).
	PageSize PageSize `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// ChromeBin is the Chrome/Chromium binary used for HTML to PDF. Empty means
	// look it up on the system.
	ChromeBin string `json:"chrome_bin,omitempty" yaml:"chrome_bin,omitempty" mapstructure:"chrome_bin"`

	// RenderTimeout bounds a single headless-browser render (default 2m).
	RenderTimeout time.Duration `json:"render_timeout" yaml:"render_timeout" mapstructure:"render_timeout"`

	// SofficeBin is the LibreOffice binary used by the orchestrator for
	// conversions docconv does not handle itself. Empty means detect.
	SofficeBin string `json:"soffice_bin,omitempty" yaml:"soffice_bin,omitempty" mapstructure:"soffice_bin"`

	// OutDir is where `docconv convert` writes its outputs (default "converted").
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// MaxAge is the retention window used by `docconv cleanup` (default 1h).
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`

	// HistoryDB is the SQLite file conversions are recorded to. Empty disables
	// recording.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty" mapstructure:"history_db"`
}

// DefaultConfig returns the settings that reproduce the converters' stock
// behavior.
func DefaultConfig() Config {
	return Config{
		DPI:           150,
		PageSize:      PageLetter,
		RenderTimeout: 2 * time.Minute,
		OutDir:        "converted",
		MaxAge:        time.Hour,
	}
}
