// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its routes when loaded.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. Register() adds a feature and
// LoadAll() loads the enabled ones in registration order, failing on the first
// error or on a duplicated feature name.
package loader
