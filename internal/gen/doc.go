// Package gen renders proxy models into Go source files.
//
// Every generated bridge embeds a boundary.Ref and forwards each member
// through it: Call for methods, Get/Set for properties. Members whose
// original signature carries an error return surface boundary failures
// there; members without one panic, since the original contract gives the
// failure nowhere else to go.
package gen
