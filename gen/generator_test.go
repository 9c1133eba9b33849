package gen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/model"
)

func generate(t *testing.T, cm model.ClassModel, opts Options) string {
	t.Helper()
	unit, err := New(opts).Generate(cm)
	require.NoError(t, err)
	return string(unit.Text)
}

func netClient() model.ClassModel {
	return model.ClassModel{
		Name:     "io.vertx.core.net.NetClient",
		Concrete: true,
		Constants: []model.ConstantInfo{
			{Name: "MAX_SIZE", Type: model.Primitive("int"), Accessor: "Original.MAX_SIZE"},
		},
		Methods: []model.MethodInfo{
			{
				Name: "connect",
				Params: []model.ParamInfo{
					model.Param("host", model.StringType()),
					model.Param("port", model.Primitive("int")),
					model.Param("onResult", model.HandlerOf(socket)),
					model.Param("onError", model.ErrorHandler()),
				},
				Return: model.Void(),
			},
		},
	}
}

const netClientGolden = `// Code generated by mutigen from io.vertx.core.net.NetClient. DO NOT EDIT.

package io.vertx.mutiny.core.net;

import io.smallrye.mutiny.vertx.MutinyDelegate;
import reactive.SingleValue;

@io.smallrye.mutiny.vertx.MutinyGen(io.vertx.core.net.NetClient.class)
public class NetClient implements MutinyDelegate {

  public static final int MAX_SIZE = Original.MAX_SIZE;

  private final io.vertx.core.net.NetClient delegate;

  public NetClient(io.vertx.core.net.NetClient delegate) {
    this.delegate = delegate;
  }

  public io.vertx.core.net.NetClient getDelegate() {
    return delegate;
  }

  public SingleValue<NetSocket> connect(String host, int port) {
    return SingleValue.createFrom().emitter(emitter -> delegate.connect(host, port, result -> emitter.complete(NetSocket.newInstance((io.vertx.core.net.NetSocket)result)), emitter::fail));
  }

  public NetSocket connectAndAwait(String host, int port) {
    return connect(host, port).await().indefinitely();
  }

  public void connectAndForget(String host, int port) {
    connect(host, port).subscribe().with(ignored -> {}, io.smallrye.mutiny.infrastructure.Infrastructure::handleDroppedException);
  }

  @Override
  public String toString() {
    return delegate.toString();
  }

  @Override
  public boolean equals(Object o) {
    if (this == o) return true;
    if (o == null || getClass() != o.getClass()) return false;
    NetClient that = (NetClient) o;
    return delegate.equals(that.delegate);
  }

  @Override
  public int hashCode() {
    return delegate.hashCode();
  }

  public static NetClient newInstance(io.vertx.core.net.NetClient arg) {
    return arg != null ? new NetClient(arg) : null;
  }
}
`

func TestGenerateGolden(t *testing.T) {
	unit, err := New(testOptions()).Generate(netClient())
	require.NoError(t, err)
	assert.Equal(t, "io.vertx.core.net.NetClient", unit.Class)
	assert.Equal(t, "io.vertx.mutiny.core.net.NetClient", unit.Name)
	assert.Empty(t, unit.Warnings)
	assert.Equal(t, netClientGolden, string(unit.Text))
}

func TestConstants(t *testing.T) {
	tests := []struct {
		name     string
		concrete bool
		constant model.ConstantInfo
		want     string
	}{
		{
			name:     "primitive in class",
			concrete: true,
			constant: model.ConstantInfo{Name: "MAX_SIZE", Type: model.Primitive("int"), Accessor: "Original.MAX_SIZE"},
			want:     "  public static final int MAX_SIZE = Original.MAX_SIZE;\n",
		},
		{
			name:     "primitive in interface",
			constant: model.ConstantInfo{Name: "MAX_SIZE", Type: model.Primitive("int"), Accessor: "Original.MAX_SIZE"},
			want:     "  int MAX_SIZE = Original.MAX_SIZE;\n",
		},
		{
			name:     "default accessor",
			concrete: true,
			constant: model.ConstantInfo{Name: "NAME", Type: model.StringType()},
			want:     "  public static final String NAME = io.vertx.core.net.NetClient.NAME;\n",
		},
		{
			name:     "api type is wrapped",
			concrete: true,
			constant: model.ConstantInfo{Name: "EMPTY", Type: buffer},
			want:     "  public static final Buffer EMPTY = Buffer.newInstance((io.vertx.core.buffer.Buffer)io.vertx.core.net.NetClient.EMPTY);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := model.ClassModel{Name: "io.vertx.core.net.NetClient", Concrete: tt.concrete, Constants: []model.ConstantInfo{tt.constant}}
			out := generate(t, cm, testOptions())
			assert.Contains(t, out, tt.want)
			if !tt.concrete {
				assert.NotContains(t, out, "public static final")
			}
		})
	}
}

func TestCompletionVariants(t *testing.T) {
	result := model.Class("com.acme.model", "Result")
	cm := model.ClassModel{
		Name:     "com.acme.Client",
		Concrete: true,
		Methods: []model.MethodInfo{{
			Name: "connect",
			Params: []model.ParamInfo{
				model.Param("host", model.StringType()),
				model.Param("port", model.Primitive("int")),
				model.Param("onResult", model.HandlerOf(result)),
				model.Param("onError", model.ErrorHandler()),
			},
			Return: model.Void(),
		}},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "  public SingleValue<Result> connect(String host, int port) {\n"+
		"    return SingleValue.createFrom().emitter(emitter -> delegate.connect(host, port, result -> emitter.complete(result), emitter::fail));\n")
	assert.Contains(t, out, "  public Result connectAndAwait(String host, int port) {\n"+
		"    return connect(host, port).await().indefinitely();\n")
	assert.Contains(t, out, "  public void connectAndForget(String host, int port) {\n"+
		"    connect(host, port).subscribe().with(ignored -> {}, io.smallrye.mutiny.infrastructure.Infrastructure::handleDroppedException);\n")
	assert.Contains(t, out, "import com.acme.model.Result;\n")
}

func TestCompletionOptions(t *testing.T) {
	cm := model.ClassModel{
		Name:     "com.acme.Client",
		Concrete: true,
		Methods: []model.MethodInfo{{
			Name:   "ping",
			Params: []model.ParamInfo{model.Param("done", model.HandlerOf(model.StringType())), model.Param("failed", model.ErrorHandler())},
			Return: model.Void(),
		}},
	}

	opts := testOptions()
	opts.BlockingSuffix = "Blocking"
	opts.IncludeFireAndForget = false
	opts.FailureSink = "sink::accept"

	out := generate(t, cm, opts)
	assert.Contains(t, out, "public String pingBlocking() {")
	assert.NotContains(t, out, "AndAwait")
	assert.NotContains(t, out, "AndForget")

	opts.IncludeFireAndForget = true
	out = generate(t, cm, opts)
	assert.Contains(t, out, "    ping().subscribe().with(ignored -> {}, sink::accept);\n")
}

func TestVoidResultBlocksWithoutValue(t *testing.T) {
	cm := model.ClassModel{
		Name:     "com.acme.Client",
		Concrete: true,
		Methods: []model.MethodInfo{{
			Name:   "close",
			Params: []model.ParamInfo{model.Param("done", model.HandlerOf(model.Boxed("Void"))), model.Param("failed", model.ErrorHandler())},
			Return: model.Void(),
		}},
	}
	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "  public SingleValue<Void> close() {\n")
	assert.Contains(t, out, "  public void closeAndAwait() {\n    close().await().indefinitely();\n  }\n")
}

func TestFutureVariants(t *testing.T) {
	cm := model.ClassModel{
		Name:     "com.acme.Counter",
		Concrete: true,
		Methods: []model.MethodInfo{
			{Name: "size", Return: model.FutureOf(model.Boxed("Integer"))},
			{Name: "read", Params: []model.ParamInfo{model.Param("offset", model.Primitive("long"))}, Return: model.FutureOf(buffer)},
		},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "  public SingleValue<Integer> size() {\n    return UniHelper.toUni(delegate.size());\n  }\n")
	assert.Contains(t, out, "  public Integer sizeAndAwait() {\n    return size().await().indefinitely();\n  }\n")
	assert.Contains(t, out, "    return UniHelper.toUni(delegate.read(offset)).map(item -> Buffer.newInstance((io.vertx.core.buffer.Buffer)item));\n")
	assert.Contains(t, out, "  public Buffer readAndAwait(long offset) {\n")
	assert.NotContains(t, out, "AndForget")
}

func TestStreamVariants(t *testing.T) {
	cm := model.ClassModel{
		Name:     "com.acme.Topic",
		Concrete: true,
		Methods: []model.MethodInfo{
			{
				Name:   "records",
				Params: []model.ParamInfo{model.Param("topic", model.StringType()), model.Param("channel", model.StreamOf(buffer))},
				Return: model.Void(),
			},
			{
				Name:   "names",
				Params: []model.ParamInfo{model.Param("channel", model.StreamOf(model.StringType()))},
				Return: model.Void(),
			},
			{Name: "history", Return: model.StreamOf(buffer)},
		},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "  public MultiValue<Buffer> records(String topic) {\n"+
		"    return MultiValue.createFrom().<io.vertx.core.buffer.Buffer>emitter(emitter -> delegate.records(topic, MultiHelper.toChannel(emitter))).map(item -> Buffer.newInstance((io.vertx.core.buffer.Buffer)item));\n")
	assert.Contains(t, out, "  public MultiValue<String> names() {\n"+
		"    return MultiValue.createFrom().emitter(emitter -> delegate.names(MultiHelper.toChannel(emitter)));\n")
	assert.Contains(t, out, "    return MultiHelper.toMulti(delegate.history()).map(item -> Buffer.newInstance((io.vertx.core.buffer.Buffer)item));\n")
	assert.NotContains(t, out, "AndAwait")
}

func TestTypeVariablesAreNeverConverted(t *testing.T) {
	tv := model.TypeVar("T")
	cm := model.ClassModel{
		Name:     "com.acme.Cache",
		Concrete: true,
		Methods: []model.MethodInfo{
			{
				Name:       "echo",
				TypeParams: []model.TypeParam{{Name: "T"}},
				Params:     []model.ParamInfo{model.Param("value", tv)},
				Return:     tv,
			},
			{
				Name:       "get",
				TypeParams: []model.TypeParam{{Name: "T", Bounds: []model.TypeInfo{buffer}}},
				Params: []model.ParamInfo{
					model.Param("key", tv),
					model.Param("onResult", model.HandlerOf(tv)),
					model.Param("onError", model.ErrorHandler()),
				},
				Return: model.Void(),
			},
		},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "  public <T> T echo(T value) {\n    return delegate.echo(value);\n  }\n")
	assert.Contains(t, out, "  public <T extends Buffer> SingleValue<T> get(T key) {\n"+
		"    return SingleValue.createFrom().emitter(emitter -> delegate.get(key, result -> emitter.complete(result), emitter::fail));\n")
	assert.Contains(t, out, "  public <T extends Buffer> T getAndAwait(T key) {\n")
	assert.Contains(t, out, "  public <T extends Buffer> void getAndForget(T key) {\n")
}

func TestDirectMethods(t *testing.T) {
	self := model.APIClass("io.vertx.core.net", "NetClient")
	cm := model.ClassModel{
		Name:     "io.vertx.core.net.NetClient",
		Concrete: true,
		Methods: []model.MethodInfo{
			{Name: "setTimeout", Params: []model.ParamInfo{model.Param("millis", model.Primitive("long"))}, Return: self},
			{Name: "create", Params: []model.ParamInfo{model.Param("name", model.StringType())}, Return: self, Static: true},
			{Name: "write", Params: []model.ParamInfo{model.Param("data", buffer)}, Return: model.Void()},
			{Name: "onData", Params: []model.ParamInfo{model.Param("handler", model.HandlerOf(buffer))}, Return: model.Void()},
			{Name: "isOpen", Return: model.Primitive("boolean")},
		},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "  public NetClient setTimeout(long millis) {\n    delegate.setTimeout(millis);\n    return this;\n  }\n")
	assert.Contains(t, out, "  public static NetClient create(String name) {\n"+
		"    return NetClient.newInstance((io.vertx.core.net.NetClient)io.vertx.core.net.NetClient.create(name));\n  }\n")
	assert.Contains(t, out, "  public void write(Buffer data) {\n    delegate.write(data.getDelegate());\n  }\n")
	assert.Contains(t, out, "  public void onData(Consumer<Buffer> handler) {\n"+
		"    delegate.onData(value -> handler.accept(Buffer.newInstance((io.vertx.core.buffer.Buffer)value)));\n  }\n")
	assert.Contains(t, out, "  public boolean isOpen() {\n    return delegate.isOpen();\n  }\n")
	assert.Contains(t, out, "import java.util.function.Consumer;\n")
}

func TestInterfaceEmission(t *testing.T) {
	cm := model.ClassModel{
		Name: "io.vertx.core.Closeable",
		Constants: []model.ConstantInfo{
			{Name: "MAX_SIZE", Type: model.Primitive("int"), Accessor: "Original.MAX_SIZE"},
		},
		Methods: []model.MethodInfo{
			{
				Name:   "close",
				Params: []model.ParamInfo{model.Param("done", model.HandlerOf(model.Boxed("Void"))), model.Param("failed", model.ErrorHandler())},
				Return: model.Void(),
			},
			{Name: "id", Return: model.StringType(), Static: true},
		},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "@io.smallrye.mutiny.vertx.MutinyGen(io.vertx.core.Closeable.class)\npublic interface Closeable extends MutinyDelegate {\n")
	assert.Contains(t, out, "  int MAX_SIZE = Original.MAX_SIZE;\n")
	assert.Contains(t, out, "  io.vertx.core.Closeable getDelegate();\n")
	assert.Contains(t, out, "  SingleValue<Void> close();\n")
	assert.Contains(t, out, "  default void closeAndAwait() {\n    close().await().indefinitely();\n  }\n")
	assert.Contains(t, out, "  default void closeAndForget() {\n    close().subscribe().with(ignored -> {}, ")
	assert.Contains(t, out, "  static String id() {\n    return io.vertx.core.Closeable.id();\n  }\n")
	assert.Contains(t, out, "  static Closeable newInstance(io.vertx.core.Closeable arg) {\n    return arg != null ? new Impl(arg) : null;\n  }\n")
	assert.Contains(t, out, "  class Impl implements Closeable {\n")
	assert.Contains(t, out, "    @Override\n    public SingleValue<Void> close() {\n"+
		"      return SingleValue.createFrom().emitter(emitter -> delegate.close(result -> emitter.complete(result), emitter::fail));\n    }\n")
	assert.Contains(t, out, "      Impl that = (Impl) o;\n")
	assert.True(t, strings.HasSuffix(out, "    return delegate.hashCode();\n    }\n  }\n}\n"))
	assert.NotContains(t, out, "public static final")
}

func TestGenericClassAndStreamSupertype(t *testing.T) {
	cm := model.ClassModel{
		Name:       "io.vertx.core.streams.Pipe",
		TypeParams: []model.TypeParam{{Name: "T"}},
		Supertypes: []model.TypeInfo{model.StreamOf(model.TypeVar("T"))},
		Concrete:   true,
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "public class Pipe<T> implements MutinyDelegate, ReadStream<T> {\n")
	assert.Contains(t, out, "  private final io.vertx.core.streams.Pipe<T> delegate;\n")
	assert.Contains(t, out, "  public MultiValue<T> toMulti() {\n    return MultiHelper.toMulti(delegate);\n  }\n")
	assert.Contains(t, out, "  public Iterable<T> toBlockingIterable() {\n")
	assert.Contains(t, out, "  public Stream<T> toBlockingStream() {\n")
	assert.Contains(t, out, "    Pipe<?> that = (Pipe<?>) o;\n")
	assert.Contains(t, out, "  public static <T> Pipe<T> newInstance(io.vertx.core.streams.Pipe<T> arg) {\n"+
		"    return arg != null ? new Pipe<T>(arg) : null;\n")
	assert.Contains(t, out, "import java.util.stream.Stream;\n")
	assert.NotContains(t, out, "import io.vertx.mutiny.core.streams.ReadStream;")
}

func TestApiSupertypeIsRewritten(t *testing.T) {
	cm := model.ClassModel{
		Name:       "io.vertx.core.http.HttpServer",
		Supertypes: []model.TypeInfo{model.APIClass("io.vertx.core", "Measured")},
		Concrete:   true,
	}
	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "public class HttpServer implements MutinyDelegate, Measured {\n")
	assert.Contains(t, out, "import io.vertx.mutiny.core.Measured;\n")
}

func TestDeterminism(t *testing.T) {
	cm := netClient()
	cm.Methods = append(cm.Methods,
		model.MethodInfo{Name: "read", Return: model.FutureOf(list(buffer))},
		model.MethodInfo{Name: "headers", Return: model.Parameterized(model.Class("java.util", "Map"), model.StringType(), buffer)},
	)

	first, err := New(testOptions()).Generate(cm)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := New(testOptions()).Generate(cm)
		require.NoError(t, err)
		assert.Equal(t, first.Text, again.Text)
	}
}

func TestOrderPreservation(t *testing.T) {
	cm := model.ClassModel{
		Name:     "com.acme.Ordered",
		Concrete: true,
		Constants: []model.ConstantInfo{
			{Name: "ZULU", Type: model.Primitive("int")},
			{Name: "ALPHA", Type: model.Primitive("int")},
			{Name: "MIKE", Type: model.Primitive("int")},
		},
		Methods: []model.MethodInfo{
			{Name: "zeta", Return: model.Void()},
			{Name: "alpha", Return: model.FutureOf(model.StringType())},
			{Name: "mid", Return: model.Void()},
		},
	}

	out := generate(t, cm, testOptions())
	order := []string{
		"int ZULU", "int ALPHA", "int MIKE",
		"void zeta()", "SingleValue<String> alpha()", "String alphaAndAwait()", "void mid()",
	}
	last := -1
	for _, needle := range order {
		idx := strings.Index(out, needle)
		require.GreaterOrEqual(t, idx, 0, needle)
		assert.Greater(t, idx, last, needle)
		last = idx
	}
}

func TestOverloads(t *testing.T) {
	completion := func(first model.TypeInfo) model.MethodInfo {
		return model.MethodInfo{
			Name:   "connect",
			Params: []model.ParamInfo{model.Param("target", first), model.Param("h", model.HandlerOf(socket)), model.Param("e", model.ErrorHandler())},
			Return: model.Void(),
		}
	}

	t.Run("distinct parameter types stay distinct", func(t *testing.T) {
		cm := model.ClassModel{
			Name:     "io.vertx.core.net.NetClient",
			Concrete: true,
			Methods:  []model.MethodInfo{completion(model.StringType()), completion(model.Primitive("int"))},
		}
		out := generate(t, cm, testOptions())
		assert.Contains(t, out, "connect(String target)")
		assert.Contains(t, out, "connect(int target)")
		assert.Contains(t, out, "connectAndAwait(String target)")
		assert.Contains(t, out, "connectAndAwait(int target)")
	})

	collisions := []struct {
		name  string
		other model.MethodInfo
	}{
		{
			name:  "primary collides with a direct overload",
			other: model.MethodInfo{Name: "connect", Params: []model.ParamInfo{model.Param("host", model.StringType())}, Return: model.Primitive("int")},
		},
		{
			name:  "blocking variant collides with a declared method",
			other: model.MethodInfo{Name: "connectAndAwait", Params: []model.ParamInfo{model.Param("host", model.StringType())}, Return: model.Void()},
		},
		{
			name:  "generated member collides",
			other: model.MethodInfo{Name: "getDelegate", Return: model.Void()},
		},
	}
	for _, tt := range collisions {
		t.Run(tt.name, func(t *testing.T) {
			cm := model.ClassModel{
				Name:     "io.vertx.core.net.NetClient",
				Concrete: true,
				Methods:  []model.MethodInfo{completion(model.StringType()), tt.other},
			}
			_, err := New(testOptions()).Generate(cm)
			require.Error(t, err)
			assert.True(t, errors.IsAmbiguousOverload(err))
			assert.Equal(t, 1, strings.Count(err.Error(), "class io.vertx.core.net.NetClient"), err.Error())
		})
	}

	t.Run("bounded type variable erases to its bound", func(t *testing.T) {
		put := model.MethodInfo{
			Name:       "put",
			TypeParams: []model.TypeParam{{Name: "T", Bounds: []model.TypeInfo{buffer}}},
			Params:     []model.ParamInfo{model.Param("t", model.TypeVar("T"))},
			Return:     model.Void(),
		}
		send := model.MethodInfo{
			Name:   "put",
			Params: []model.ParamInfo{model.Param("b", buffer), model.Param("h", model.HandlerOf(model.Boxed("Void"))), model.Param("e", model.ErrorHandler())},
			Return: model.Void(),
		}
		cm := model.ClassModel{Name: "io.vertx.core.Store", Concrete: true, Methods: []model.MethodInfo{put, send}}
		_, err := New(testOptions()).Generate(cm)
		require.Error(t, err)
		assert.True(t, errors.IsAmbiguousOverload(err))
		assert.Contains(t, err.Error(), "put(io.vertx.mutiny.core.buffer.Buffer)")

		put.TypeParams = []model.TypeParam{{Name: "T"}}
		cm.Methods = []model.MethodInfo{put, send}
		out := generate(t, cm, testOptions())
		assert.Contains(t, out, "  public <T> void put(T t) {\n")
		assert.Contains(t, out, "  public SingleValue<Void> put(Buffer b) {\n")
	})

	t.Run("class type variable bound", func(t *testing.T) {
		cm := model.ClassModel{
			Name:       "io.vertx.core.Store",
			Concrete:   true,
			TypeParams: []model.TypeParam{{Name: "T", Bounds: []model.TypeInfo{buffer}}},
			Methods: []model.MethodInfo{
				{Name: "put", Params: []model.ParamInfo{model.Param("t", model.TypeVar("T"))}, Return: model.Void()},
				{Name: "putAndAwait", Params: []model.ParamInfo{model.Param("b", buffer)}, Return: model.Void()},
				{
					Name:   "put",
					Params: []model.ParamInfo{model.Param("id", model.StringType()), model.Param("h", model.HandlerOf(model.StringType())), model.Param("e", model.ErrorHandler())},
					Return: model.Void(),
				},
			},
		}
		out := generate(t, cm, testOptions())
		assert.Contains(t, out, "  public void put(T t) {\n")
		assert.Contains(t, out, "  public void putAndAwait(Buffer b) {\n")

		clash := cm.Methods[2]
		clash.Params = []model.ParamInfo{model.Param("other", buffer), clash.Params[1], clash.Params[2]}
		cm.Methods = []model.MethodInfo{cm.Methods[0], clash}
		_, err := New(testOptions()).Generate(cm)
		require.Error(t, err)
		assert.True(t, errors.IsAmbiguousOverload(err))
	})

	t.Run("duplicate signature keys in the model", func(t *testing.T) {
		cm := model.ClassModel{
			Name:     "io.vertx.core.net.NetClient",
			Concrete: true,
			Methods:  []model.MethodInfo{completion(model.StringType()), completion(model.StringType())},
		}
		_, err := New(testOptions()).Generate(cm)
		require.Error(t, err)
		assert.True(t, errors.IsAmbiguousOverload(err))
	})
}

func TestObjectMethodsAreForwardedOnce(t *testing.T) {
	object := model.Class("java.lang", "Object")
	methods := func() []model.MethodInfo {
		return []model.MethodInfo{
			{Name: "toString", Return: model.StringType()},
			{Name: "hashCode", Return: model.Primitive("int")},
			{Name: "equals", Params: []model.ParamInfo{model.Param("other", object)}, Return: model.Primitive("boolean")},
			{Name: "equals", Params: []model.ParamInfo{model.Param("other", buffer)}, Return: model.Primitive("boolean")},
			{Name: "toString", Params: []model.ParamInfo{model.Param("indent", model.Primitive("int"))}, Return: model.StringType()},
		}
	}

	for _, concrete := range []bool{true, false} {
		t.Run(fmt.Sprintf("concrete=%v", concrete), func(t *testing.T) {
			cm := model.ClassModel{Name: "io.vertx.core.Foo", Concrete: concrete, Methods: methods()}
			out := generate(t, cm, testOptions())

			assert.Equal(t, 1, strings.Count(out, "public String toString() {"))
			assert.Equal(t, 1, strings.Count(out, "public int hashCode() {"))
			assert.Equal(t, 1, strings.Count(out, "public boolean equals(Object o) {"))
			assert.NotContains(t, out, "String toString();")
			assert.NotContains(t, out, "equals(Object other)")
			// overloads that differ from the java.lang.Object methods are kept
			assert.Contains(t, out, "boolean equals(Buffer other)")
			assert.Contains(t, out, "String toString(int indent)")
		})
	}

	t.Run("reactive variant named like an object method", func(t *testing.T) {
		cm := model.ClassModel{
			Name: "io.vertx.core.Foo",
			Methods: []model.MethodInfo{{
				Name:   "hashCode",
				Params: []model.ParamInfo{model.Param("h", model.HandlerOf(model.Boxed("Integer"))), model.Param("e", model.ErrorHandler())},
				Return: model.Void(),
			}},
		}
		_, err := New(testOptions()).Generate(cm)
		require.Error(t, err)
		assert.True(t, errors.IsAmbiguousOverload(err))
	})
}

func TestParameterNamedDelegate(t *testing.T) {
	methods := []model.MethodInfo{
		{Name: "write", Params: []model.ParamInfo{model.Param("delegate", buffer)}, Return: model.Void()},
		{
			Name:   "send",
			Params: []model.ParamInfo{model.Param("delegate", model.StringType()), model.Param("h", model.HandlerOf(model.StringType())), model.Param("e", model.ErrorHandler())},
			Return: model.Void(),
		},
		{Name: "size", Return: model.Primitive("int")},
	}

	for _, concrete := range []bool{true, false} {
		t.Run(fmt.Sprintf("concrete=%v", concrete), func(t *testing.T) {
			cm := model.ClassModel{Name: "io.vertx.core.Foo", Concrete: concrete, Methods: methods}
			out := generate(t, cm, testOptions())
			assert.Contains(t, out, "this.delegate.write(delegate.getDelegate());\n")
			assert.Contains(t, out, "emitter -> this.delegate.send(delegate, result -> emitter.complete(result), emitter::fail)")
			assert.Contains(t, out, "return delegate.size();\n")
			assert.Contains(t, out, "sendAndAwait(String delegate) {\n")
			assert.Contains(t, out, "return send(delegate).await().indefinitely();\n")
		})
	}
}

func TestUnresolvedTypeFailsClass(t *testing.T) {
	cm := netClient()
	cm.Methods = append(cm.Methods, model.MethodInfo{
		Name:   "boxes",
		Return: model.Parameterized(model.Class("com.acme", "Box"), buffer),
	})

	_, err := New(testOptions()).Generate(cm)
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedType(err))
	assert.Contains(t, err.Error(), "boxes()")

	g := &Generator{Options: testOptions(), Table: NewTable()}
	_, err = g.Generate(netClient())
	require.Error(t, err)
	assert.True(t, errors.IsUnresolvedType(err))
}

func TestEveryKindResolves(t *testing.T) {
	var params []model.ParamInfo
	for i, typ := range []model.TypeInfo{
		model.Primitive("double"), model.Boxed("Long"), model.StringType(),
		model.Enum("io.vertx.core.http", "HttpMethod"), model.Class("com.acme", "Settings"), buffer,
		model.TypeVar("T"), list(buffer), model.HandlerOf(buffer), model.ErrorHandler(),
		model.FutureOf(buffer), model.StreamOf(buffer), model.Primitive("int"),
	} {
		params = append(params, model.Param(string(rune('a'+i)), typ))
	}
	cm := model.ClassModel{
		Name:       "io.vertx.core.Everything",
		TypeParams: []model.TypeParam{{Name: "T"}},
		Concrete:   true,
		Methods:    []model.MethodInfo{{Name: "all", Params: params, Return: model.Void()}},
	}

	out := generate(t, cm, testOptions())
	assert.Contains(t, out, "public void all(double a, Long b, String c, HttpMethod d, Settings e, Buffer f, T g, List<Buffer> h, "+
		"Consumer<Buffer> i, Consumer<Throwable> j, SingleValue<Buffer> k, MultiValue<Buffer> l, int m) {")
	assert.Contains(t, out, "UniHelper.toFuture(k.map(")
	assert.Contains(t, out, "MultiHelper.toReadStream(l.map(")
	assert.Contains(t, out, "j::accept")
}

func TestDocsAndVariantDocs(t *testing.T) {
	cm := netClient()
	cm.Doc = model.NewDoc(model.Text("A TCP client."))
	cm.Methods[0].Doc = model.NewDoc(model.Text("Opens a connection to "), model.LinkTo(&socket, "", "a socket"), model.Text("."))

	unit, err := New(testOptions()).Generate(cm)
	require.NoError(t, err)
	out := string(unit.Text)
	assert.Contains(t, out, "/**\n * A TCP client.\n */\n@io.smallrye.mutiny.vertx.MutinyGen")
	assert.Contains(t, out, "  /**\n   * Opens a connection to {@link io.vertx.mutiny.core.net.NetSocket a socket}.\n   */\n  public SingleValue<NetSocket> connect(")
	assert.Contains(t, out, "   * Blocking variant of {@link #connect(java.lang.String,int)}.\n   * <p>\n")
	assert.Contains(t, out, "   * Variant of {@link #connect(java.lang.String,int)} that ignores the result of the operation.\n")
	assert.Empty(t, unit.Warnings)

	opts := testOptions()
	opts.IncludeDocs = false
	assert.NotContains(t, generate(t, cm, opts), "/**")
}

func TestMalformedDocIsAWarning(t *testing.T) {
	cm := netClient()
	tv := model.TypeVar("T")
	cm.Methods[0].Doc = model.NewDoc(model.Text("See "), model.LinkTo(&tv, "", "the value"))

	unit, err := New(testOptions()).Generate(cm)
	require.NoError(t, err)
	assert.Contains(t, string(unit.Text), "   * See the value\n")
	require.Len(t, unit.Warnings, 1)
	assert.Equal(t, "connect", unit.Warnings[0].Member)
	assert.True(t, errors.Is(unit.Warnings[0].Err, errors.ErrMalformedDoc))
	assert.Contains(t, unit.Warnings[0].String(), "io.vertx.core.net.NetClient#connect")
}

func TestStampHeader(t *testing.T) {
	opts := testOptions()
	opts.Stamp = "3f9c2e1"
	out := generate(t, netClient(), opts)
	assert.True(t, strings.HasPrefix(out,
		"// Code generated by mutigen from io.vertx.core.net.NetClient. DO NOT EDIT.\n// Source version: 3f9c2e1\n\npackage "))
}

func TestInvalidModel(t *testing.T) {
	_, err := New(testOptions()).Generate(model.ClassModel{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidModel))
}

func TestOptions(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"empty blocking suffix", func(o *Options) { o.BlockingSuffix = "" }},
		{"same suffixes", func(o *Options) { o.ForgetSuffix = o.BlockingSuffix }},
		{"unqualified single type", func(o *Options) { o.SingleType = "Uni" }},
		{"unqualified multi type", func(o *Options) { o.MultiType = "Multi." }},
		{"empty failure sink", func(o *Options) { o.FailureSink = "" }},
		{"half package mapping", func(o *Options) { o.PackageTo = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			assert.Error(t, opts.Validate())
		})
	}

	opts := DefaultOptions()
	assert.Equal(t, "io.vertx.mutiny.core.Vertx", opts.TargetName("io.vertx.core.Vertx"))
	assert.Equal(t, "io.vertxx.Other", opts.TargetName("io.vertxx.Other"))
	assert.Equal(t, "com.acme.Thing", opts.TargetName("com.acme.Thing"))
}
