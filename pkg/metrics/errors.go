package metrics

import "errors"

var ErrRegister = errors.New("metrics: failed to register collector")
