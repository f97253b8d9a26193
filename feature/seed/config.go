package seed

// Config holds configuration for the seed import.
type Config struct {
	// Path is a local seed file. Used when Object is empty.
	Path string `mapstructure:"path" default:"teams.json"`
	// Object is the seed object name in the storage bucket. Takes precedence over Path.
	Object string `mapstructure:"object" default:""`
	// Strict fails the whole import on the first malformed entry.
	Strict bool `mapstructure:"strict" default:"false"`
	// OnStart runs the import when the server starts.
	OnStart bool `mapstructure:"on_start" default:"true"`
}
