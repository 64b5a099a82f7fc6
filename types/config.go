package types

const (
	DefaultRowDetailKeyPrefix = "__"
	DefaultPaddingField       = "isPadding"
	DefaultParentField        = "parent"
)

// Config controls how hierarchical detail rows are recognized. A row
// detail view inserts placeholder rows carrying
// <prefix>isPadding = true and a <prefix>parent link to the real
// row. Filters and sorts see the parent's values instead.
type Config struct {
	RowDetailKeyPrefix string
	PaddingField       string
	ParentField        string
}

func DefaultConfig() Config {
	return Config{
		RowDetailKeyPrefix: DefaultRowDetailKeyPrefix,
		PaddingField:       DefaultPaddingField,
		ParentField:        DefaultParentField,
	}
}

// Fill in any fields the caller left empty.
func (self Config) Normalize() Config {
	if self.RowDetailKeyPrefix == "" {
		self.RowDetailKeyPrefix = DefaultRowDetailKeyPrefix
	}
	if self.PaddingField == "" {
		self.PaddingField = DefaultPaddingField
	}
	if self.ParentField == "" {
		self.ParentField = DefaultParentField
	}
	return self
}

func (self Config) PaddingKey() string {
	return self.RowDetailKeyPrefix + self.PaddingField
}

func (self Config) ParentKey() string {
	return self.RowDetailKeyPrefix + self.ParentField
}
