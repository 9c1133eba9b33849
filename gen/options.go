package gen

import (
	"strings"

	"github.com/teranos/mutigen/errors"
)

// Default option values
const (
	DefaultBlockingSuffix = "AndAwait"
	DefaultForgetSuffix   = "AndForget"
	DefaultSingleType     = "io.smallrye.mutiny.Uni"
	DefaultMultiType      = "io.smallrye.mutiny.Multi"
	DefaultFailureSink    = "io.smallrye.mutiny.infrastructure.Infrastructure::handleDroppedException"
	DefaultPackageFrom    = "io.vertx"
	DefaultPackageTo      = "io.vertx.mutiny"
)

// Fixed runtime types referenced by generated code
const (
	delegateInterface = "io.smallrye.mutiny.vertx.MutinyDelegate"
	genAnnotation     = "io.smallrye.mutiny.vertx.MutinyGen"
	uniHelper         = "io.smallrye.mutiny.vertx.UniHelper"
	multiHelper       = "io.smallrye.mutiny.vertx.MultiHelper"
	consumerType      = "java.util.function.Consumer"
	collectorsType    = "java.util.stream.Collectors"
	javaStreamType    = "java.util.stream.Stream"
	iterableType      = "java.lang.Iterable"
	objectType        = "java.lang.Object"
)

// Options control the emitted text. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// BlockingSuffix names blocking variants: connect -> connectAndAwait
	BlockingSuffix string
	// ForgetSuffix names fire-and-forget variants: connect -> connectAndForget
	ForgetSuffix string
	// IncludeDocs emits documentation blocks
	IncludeDocs bool
	// IncludeFireAndForget emits fire-and-forget variants for completion-shaped methods
	IncludeFireAndForget bool
	// SingleType is the qualified single-value reactive type
	SingleType string
	// MultiType is the qualified multi-value reactive type
	MultiType string
	// FailureSink is the expression receiving failures dropped by fire-and-forget variants
	FailureSink string
	// PackageFrom is rewritten to PackageTo for classes under generation
	PackageFrom string
	PackageTo   string
	// Stamp, when set, is written as a "// Source version:" header line
	Stamp string
}

// DefaultOptions returns the Mutiny-over-Vert.x defaults
func DefaultOptions() Options {
	return Options{
		BlockingSuffix:       DefaultBlockingSuffix,
		ForgetSuffix:         DefaultForgetSuffix,
		IncludeDocs:          true,
		IncludeFireAndForget: true,
		SingleType:           DefaultSingleType,
		MultiType:            DefaultMultiType,
		FailureSink:          DefaultFailureSink,
		PackageFrom:          DefaultPackageFrom,
		PackageTo:            DefaultPackageTo,
	}
}

// Validate rejects options that would produce uncompilable or colliding output
func (o Options) Validate() error {
	switch {
	case o.BlockingSuffix == "":
		return errors.New("blocking suffix must not be empty")
	case o.ForgetSuffix == "":
		return errors.New("fire-and-forget suffix must not be empty")
	case o.BlockingSuffix == o.ForgetSuffix:
		return errors.Newf("blocking and fire-and-forget suffixes are both %q", o.BlockingSuffix)
	case !isQualified(o.SingleType):
		return errors.Newf("single-value type %q is not a qualified name", o.SingleType)
	case !isQualified(o.MultiType):
		return errors.Newf("multi-value type %q is not a qualified name", o.MultiType)
	case o.FailureSink == "":
		return errors.New("failure sink must not be empty")
	case (o.PackageFrom == "") != (o.PackageTo == ""):
		return errors.New("package_from and package_to must be set together")
	}
	return nil
}

func isQualified(name string) bool {
	return strings.Contains(name, ".") && !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, ".")
}

// TargetName rewrites a qualified original name into the generated namespace.
// Names outside PackageFrom are returned unchanged.
func (o Options) TargetName(qualified string) string {
	if o.PackageFrom == "" || o.PackageFrom == o.PackageTo {
		return qualified
	}
	if qualified == o.PackageFrom {
		return o.PackageTo
	}
	if strings.HasPrefix(qualified, o.PackageFrom+".") {
		return o.PackageTo + strings.TrimPrefix(qualified, o.PackageFrom)
	}
	return qualified
}
