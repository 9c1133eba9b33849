package model

// Constructors used by extractors and tests to assemble models in code.

// Primitive returns a primitive type (int, long, boolean, ...)
func Primitive(name string) TypeInfo {
	return TypeInfo{Kind: KindPrimitive, Name: name}
}

// Boxed returns a boxed primitive type from java.lang (Integer, Long, ...)
func Boxed(name string) TypeInfo {
	return TypeInfo{Kind: KindBoxed, Name: name}
}

// StringType returns java.lang.String
func StringType() TypeInfo {
	return TypeInfo{Kind: KindString, Name: "String"}
}

// Void returns the void type
func Void() TypeInfo {
	return TypeInfo{Kind: KindVoid, Name: "void"}
}

// Enum returns an enum type
func Enum(pkg, name string) TypeInfo {
	return TypeInfo{Kind: KindEnum, Name: name, Package: pkg}
}

// Class returns a user-defined class that is passed through unchanged
func Class(pkg, name string) TypeInfo {
	return TypeInfo{Kind: KindClass, Name: name, Package: pkg}
}

// APIClass returns a user-defined class that is itself under generation
func APIClass(pkg, name string) TypeInfo {
	return TypeInfo{Kind: KindClass, Name: name, Package: pkg, API: true}
}

// TypeVar returns a type variable reference
func TypeVar(name string) TypeInfo {
	return TypeInfo{Kind: KindTypeVar, Name: name}
}

// Parameterized returns raw<args...>
func Parameterized(raw TypeInfo, args ...TypeInfo) TypeInfo {
	raw.Kind = KindParameterized
	raw.Args = args
	return raw
}

// HandlerOf returns a single-value callback of t
func HandlerOf(t TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindHandler, Name: "Handler", Package: "io.vertx.core", Args: []TypeInfo{t}}
}

// ErrorHandler returns a failure callback
func ErrorHandler() TypeInfo {
	return TypeInfo{Kind: KindErrorHandler, Name: "Handler", Package: "io.vertx.core"}
}

// FutureOf returns future-of-value t
func FutureOf(t TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindFuture, Name: "Future", Package: "io.vertx.core", Args: []TypeInfo{t}}
}

// StreamOf returns stream-of-value t
func StreamOf(t TypeInfo) TypeInfo {
	return TypeInfo{Kind: KindStream, Name: "ReadStream", Package: "io.vertx.core.streams", Args: []TypeInfo{t}}
}

// Param returns a named parameter
func Param(name string, t TypeInfo) ParamInfo {
	return ParamInfo{Name: name, Type: t}
}
