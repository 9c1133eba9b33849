package gen

import (
	"github.com/teranos/mutigen/model"
)

// Shape is the asynchronous pattern of a method
type Shape int

const (
	// ShapeCompletion: trailing value callback followed by an error callback
	ShapeCompletion Shape = iota
	// ShapeFuture: returns a future of a value
	ShapeFuture
	// ShapeStream: returns a stream, or emits through a trailing stream parameter
	ShapeStream
	// ShapeDirect: synchronous passthrough
	ShapeDirect
)

func (s Shape) String() string {
	switch s {
	case ShapeCompletion:
		return "completion"
	case ShapeFuture:
		return "future"
	case ShapeStream:
		return "stream"
	case ShapeDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// ShapeRule is one row of the classification table
type ShapeRule struct {
	Shape Shape
	Match func(m model.MethodInfo) bool
}

// ShapeTable lists the classification rows in priority order. The first
// matching row wins; the last row matches everything.
var ShapeTable = []ShapeRule{
	{ShapeCompletion, hasCompletionPair},
	{ShapeFuture, returnsKind(model.KindFuture)},
	{ShapeStream, isStreaming},
	{ShapeDirect, func(model.MethodInfo) bool { return true }},
}

// Classify returns the shape of m
func Classify(m model.MethodInfo) Shape {
	for _, row := range ShapeTable {
		if row.Match(m) {
			return row.Shape
		}
	}
	return ShapeDirect
}

func hasCompletionPair(m model.MethodInfo) bool {
	n := len(m.Params)
	return n >= 2 &&
		m.Params[n-2].Type.Kind == model.KindHandler &&
		m.Params[n-1].Type.Kind == model.KindErrorHandler
}

func returnsKind(k model.Kind) func(model.MethodInfo) bool {
	return func(m model.MethodInfo) bool { return m.Return.Kind == k }
}

func isStreaming(m model.MethodInfo) bool {
	return m.Return.Kind == model.KindStream || hasEmissionChannel(m)
}

// hasEmissionChannel: the method returns nothing and emits its items through
// a trailing stream parameter.
func hasEmissionChannel(m model.MethodInfo) bool {
	n := len(m.Params)
	return m.Return.Kind == model.KindVoid && n > 0 && m.Params[n-1].Type.Kind == model.KindStream
}
