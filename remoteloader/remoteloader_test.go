package remoteloader

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/gofortran/asr"
	"github.com/gofortran/asr/modcache/wire"
)

func grpcNotFound(name string) error {
	return status.Errorf(codes.NotFound, "module %q not found", name)
}

// fakeRegistry answers LoadModule from an in-memory map, standing in for
// the remote build-farm service this package's production Loader talks
// to. It is wired to the same method name/shape the client invokes, with
// no generated stubs on either side.
type fakeRegistry struct {
	blobs map[string][]byte
}

func (f *fakeRegistry) loadModule(ctx context.Context, dec func(any) error) (any, error) {
	req := new(wrapperspb.StringValue)
	if err := dec(req); err != nil {
		return nil, err
	}
	blob, ok := f.blobs[req.GetValue()]
	if !ok {
		return nil, grpcNotFound(req.GetValue())
	}
	return wrapperspb.Bytes(blob), nil
}

func startFakeRegistry(t *testing.T, blobs map[string][]byte) string {
	t.Helper()
	reg := &fakeRegistry{blobs: blobs}

	desc := &grpc.ServiceDesc{
		ServiceName: "gofortran.modregistry.ModuleRegistry",
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "LoadModule",
				Handler: func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
					return srv.(*fakeRegistry).loadModule(ctx, dec)
				},
			},
		},
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer()
	server.RegisterService(desc, reg)
	go server.Serve(lis)
	t.Cleanup(server.GracefulStop)

	return lis.Addr().String()
}

func buildEncodedModule(t *testing.T) []byte {
	t.Helper()
	store := asr.NewStore()
	table := store.NewTable(nil)
	mod := asr.NewModule("geometry", table, nil)
	table.SetOwner(mod)
	fn := asr.NewFunction("area", table, nil)
	if err := table.Define("area", fn); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return wire.EncodeModule(mod)
}

func TestLoadModuleFetchesAndDecodesRemoteBlob(t *testing.T) {
	blob := buildEncodedModule(t)
	addr := startFakeRegistry(t, map[string][]byte{"geometry": blob})

	l, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer l.Close()

	mod, ok := l.LoadModule("geometry")
	if !ok {
		t.Fatal("expected a remote hit")
	}
	if mod.Name() != "geometry" {
		t.Errorf("expected name %q, got %q", "geometry", mod.Name())
	}
	if _, ok := mod.Table.GetLocal("area"); !ok {
		t.Error("expected area to round-trip from the remote blob")
	}
}

func TestLoadModuleMissingNameMisses(t *testing.T) {
	addr := startFakeRegistry(t, map[string][]byte{})

	l, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer l.Close()

	if _, ok := l.LoadModule("nosuchmodule"); ok {
		t.Error("expected a miss for a module the registry doesn't have")
	}
}
