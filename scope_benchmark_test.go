package scenedi_test

import (
	"testing"

	"github.com/scenedi/scenedi"
	"github.com/scenedi/scenedi/mock"
)

func BenchmarkLocalResolve(b *testing.B) {
	dir := scenedi.New()
	scope := dir.NewScope(nil)
	if err := scenedi.Register[mock.AudioService](scope, &mock.StubAudio{}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := scenedi.TryGet[mock.AudioService](scope); !ok {
			b.Fatal("lookup missed")
		}
	}
}

func BenchmarkChainResolve(b *testing.B) {
	dir := scenedi.New()
	global := dir.NewScope(nil)
	global.ConfigureAsGlobal()
	if err := scenedi.Register[mock.AudioService](global, &mock.StubAudio{}); err != nil {
		b.Fatal(err)
	}

	root := mock.NewHost("root", "bench", nil)
	sceneScope := dir.NewScope(root)
	sceneScope.ConfigureForScene()
	leaf := dir.NewScope(mock.NewHost("leaf", "bench", root))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := scenedi.TryGet[mock.AudioService](leaf); !ok {
			b.Fatal("lookup missed")
		}
	}
}

func BenchmarkInject(b *testing.B) {
	dir := scenedi.New()
	scope := dir.NewScope(nil)
	global := dir.NewScope(nil)
	global.ConfigureAsGlobal()
	if err := scenedi.Register[mock.AudioService](scope, &mock.StubAudio{}); err != nil {
		b.Fatal(err)
	}
	if err := scenedi.Register[mock.SaveService](scope, &mock.StubSave{}); err != nil {
		b.Fatal(err)
	}
	if err := scenedi.Register[mock.HUDService](global, &mock.StubHUD{}); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		actor := &mock.Actor{}
		if err := dir.Injector().Inject(actor, scope); err != nil {
			b.Fatal(err)
		}
	}
}
