package strategy

import "github.com/spf13/cast"

// Param accessors tolerate the numeric encodings parameters arrive in:
// YAML config hands ints, JSON request bodies hand float64s.

// IntParam reads an integer parameter, or def when absent.
func (c Config) IntParam(name string, def int) int {
	v, ok := c.Params[name]
	if !ok {
		return def
	}
	return cast.ToInt(v)
}

// FloatParam reads a float parameter, or def when absent.
func (c Config) FloatParam(name string, def float64) float64 {
	v, ok := c.Params[name]
	if !ok {
		return def
	}
	return cast.ToFloat64(v)
}
