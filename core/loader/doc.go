// Package loader provides the feature loading system for the HTTP server.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registered features and loads the enabled ones in
// registration order. The serve command registers 'recipes' and 'integrity'.
package loader
