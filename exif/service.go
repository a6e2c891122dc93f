package exif

import (
	"log/slog"

	"github.com/ankit-chaubey/exifkit/core/image"
)

// Service creates Objects. It keeps no per-call state and can be shared.
type Service struct {
	logger *slog.Logger
}

// NewService returns a Service logging through logger, or slog.Default()
// when logger is nil.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

type createOptions struct {
	enableXMP bool
}

// Option configures a single Create call.
type Option func(*createOptions)

// WithXMP turns XMP extraction on or off. The default is off.
func WithXMP(enable bool) Option {
	return func(o *createOptions) { o.enableXMP = enable }
}

// Create gathers the metadata of img.
func (s *Service) Create(img *image.Image, opts ...Option) *Object {
	var co createOptions
	for _, opt := range opts {
		opt(&co)
	}
	return NewObject(img, co.enableXMP, s.logger)
}
