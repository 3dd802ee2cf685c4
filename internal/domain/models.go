package domain

// AssetFile is a file discovered under the content root
type AssetFile struct {
	// Path is the full path as built during traversal (root + separators + names)
	Path string
	// Rel is the path relative to the content root, as emitted in the manifest
	Rel string
}

// Entry is one rendered manifest block for a matched asset file
type Entry struct {
	Path string `json:"path" yaml:"path"`
	Ext  string `json:"ext" yaml:"ext"`
	Text string `json:"-" yaml:"-"`
}
