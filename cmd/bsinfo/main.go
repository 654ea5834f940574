// Command bsinfo builds and certifies Beurling–Selberg majorants and
// minorants of interval indicators.
//
// Usage:
//
//	bsinfo run [model] [flags]
//	bsinfo sweep [model] --betas 0.1,0.25 --deltas 4,8 [flags]
//	bsinfo models
//	bsinfo kernels [name ...] [--delta 8] [--x 0,0.25]
//
// Examples:
//
//	bsinfo run selberg --beta 0.5 --delta 8
//	bsinfo run circle-forced --beta 0.25 --delta 10 --audit -o json
//	bsinfo run --config run.yaml
//	bsinfo sweep circle --betas 0.1,0.2,0.3 --deltas 4,8,16 --parallel 4
//	bsinfo kernels vaaler beurling --delta 4
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
