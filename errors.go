package doclink

import "fmt"

var (
	ErrEmptyAlias      = fmt.Errorf("symbol alias cannot be empty")
	ErrDuplicateSymbol = fmt.Errorf("duplicate symbol alias")
	ErrInvalidRegistry = fmt.Errorf("invalid registry snapshot")
)
