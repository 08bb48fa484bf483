package rle

import (
	"github.com/pion/randutil"
)

/* #nosec */
var globalMathRandomGenerator = randutil.NewMathRandomGenerator() // nolint:gochecknoglobals
