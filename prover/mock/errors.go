package mock

import "errors"

var errMalformedPublicValues = errors.New("mock prover: public values have unexpected length")
