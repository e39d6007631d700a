package typetable

import "errors"

// ErrTableFull is the panic value raised when allocation would exceed
// MaxTypes. The table has no recovery path past its ceiling.
var ErrTableFull = errors.New("type table: too many types")
