/*
Package instance reads, writes and generates knapsack instances.

An instance is a set of items shared by one or more knapsack constraints.
Each constraint has its own weights and profits for the items and bounds for
the total weight and the total profit. Instances are stored as YAML:

	name: kp14
	knapsacks:
	  - name: kp
	    weights: [0, 3, 5, 4]
	    profits: [3, 10, 10, 8]
	    capacity: {min: 10, max: 20}
	    power: {min: 25, max: 35}

Build turns an instance into a solver model.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package instance

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'knapsack'
func tracer() tracing.Trace {
	return tracing.Select("knapsack")
}

// ErrInvalidInstance is returned for instances which cannot be turned into a
// model.
var ErrInvalidInstance = errors.New("instance: invalid instance")
