package query

// Config holds the view ordering settings.
type Config struct {
	// Sort is the sort key list, e.g. "zone,-wins,name".
	Sort string `mapstructure:"sort" default:"zone,-wins,name"`
	// Section is the section key. It must match the first sort key; empty disables sectioning.
	Section string `mapstructure:"section" default:"zone"`
}

// Spec builds and validates the spec described by the configuration.
func (c Config) Spec() (Spec, error) {
	keys, err := ParseSortKeys(c.Sort)
	if err != nil {
		return Spec{}, err
	}
	spec := Spec{SortKeys: keys, SectionKey: Field(c.Section)}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}
