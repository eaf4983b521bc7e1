package app

import (
	"fmt"
)

var _ = fmt.Sprint

// +notify:observable
type Sealed struct { // want `NOTIFY001: type Sealed is marked observable but cannot be extended`
	_value int
}
