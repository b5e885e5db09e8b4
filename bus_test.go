package scenedi_test

import (
	"reflect"
	"testing"

	"github.com/scenedi/scenedi"
	"github.com/scenedi/scenedi/mock"
	"github.com/stretchr/testify/suite"
)

type BusSuite struct {
	suite.Suite
	dir *scenedi.Directory
}

func (s *BusSuite) SetupTest() {
	s.dir = scenedi.New()
}

func (s *BusSuite) TestPublishOnRegistration() {
	scope := s.dir.NewScope(nil)
	var gotType reflect.Type
	var gotInstance any
	var gotScope *scenedi.Scope

	owner := struct{ name string }{"listener"}
	s.dir.Subscribe(audioType(), &owner, func(t reflect.Type, instance any, origin *scenedi.Scope) {
		gotType = t
		gotInstance = instance
		gotScope = origin
	})

	audio := &mock.StubAudio{}
	s.NoError(scenedi.Register[mock.AudioService](scope, audio))
	s.Equal(audioType(), gotType)
	s.Same(audio, gotInstance)
	s.Same(scope, gotScope)
}

func (s *BusSuite) TestDuplicateRegistrationDoesNotPublish() {
	scope := s.dir.NewScope(nil)
	fired := 0
	owner := new(int)
	s.dir.Subscribe(audioType(), owner, func(reflect.Type, any, *scenedi.Scope) {
		fired++
	})

	s.NoError(scenedi.Register[mock.AudioService](scope, &mock.StubAudio{}))
	s.Error(scenedi.Register[mock.AudioService](scope, &mock.StubAudio{}))
	s.Equal(1, fired)
}

func (s *BusSuite) TestDuplicateSubscribeSameOwnerIsNoOp() {
	fired := 0
	owner := new(int)
	fn := func(reflect.Type, any, *scenedi.Scope) { fired++ }
	s.dir.Subscribe(audioType(), owner, fn)
	s.dir.Subscribe(audioType(), owner, fn)

	s.NoError(scenedi.Register[mock.AudioService](s.dir.NewScope(nil), &mock.StubAudio{}))
	s.Equal(1, fired)
}

// Callbacks run against a snapshot: subscribing or unsubscribing during
// dispatch affects later publishes, never the running one.
func (s *BusSuite) TestSnapshotDispatchAllowsMutation() {
	order := []string{}
	first := new(int)
	late := new(int)

	s.dir.Subscribe(audioType(), first, func(reflect.Type, any, *scenedi.Scope) {
		order = append(order, "first")
		// Mutations from inside the callback must not reach this dispatch.
		s.dir.Unsubscribe(audioType(), first)
		s.dir.Subscribe(audioType(), late, func(reflect.Type, any, *scenedi.Scope) {
			order = append(order, "late")
		})
	})

	scopeA := s.dir.NewScope(nil)
	scopeB := s.dir.NewScope(nil)
	s.NoError(scenedi.Register[mock.AudioService](scopeA, &mock.StubAudio{}))
	s.Equal([]string{"first"}, order)

	s.NoError(scenedi.Register[mock.AudioService](scopeB, &mock.StubAudio{}))
	s.Equal([]string{"first", "late"}, order)
}

// A panicking subscriber is reported and the remaining subscribers still
// run.
func (s *BusSuite) TestPanicIsolation() {
	ran := false
	s.dir.Subscribe(audioType(), new(int), func(reflect.Type, any, *scenedi.Scope) {
		panic("subscriber exploded")
	})
	s.dir.Subscribe(audioType(), new(int), func(reflect.Type, any, *scenedi.Scope) {
		ran = true
	})

	s.NotPanics(func() {
		s.NoError(scenedi.Register[mock.AudioService](s.dir.NewScope(nil), &mock.StubAudio{}))
	})
	s.True(ran)
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}
