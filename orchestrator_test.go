package scenedi_test

import (
	"testing"

	"github.com/scenedi/scenedi"
	"github.com/scenedi/scenedi/mock"
	"github.com/stretchr/testify/suite"
)

type OrchestratorSuite struct {
	suite.Suite
	dir   *scenedi.Directory
	world *mock.World
}

func (s *OrchestratorSuite) SetupTest() {
	s.world = mock.NewWorld()
	s.dir = scenedi.New(scenedi.WithWorld(s.world))
}

func (s *OrchestratorSuite) configureScene(key scenedi.SceneKey) *scenedi.Scope {
	root := mock.NewHost(string(key)+"-root", key, nil)
	scope := s.dir.NewScope(root)
	scope.ConfigureForScene()
	return scope
}

func (s *OrchestratorSuite) TestSweepInjectsSceneObjects() {
	const arena = scenedi.SceneKey("arena")
	scope := s.configureScene(arena)
	audio := &mock.StubAudio{}
	save := &mock.StubSave{}
	hud := &mock.StubHUD{}
	s.NoError(scenedi.Register[mock.AudioService](scope, audio))
	s.NoError(scenedi.Register[mock.SaveService](scope, save))
	s.NoError(scenedi.Register[mock.HUDService](ensureGlobal(s.dir), hud))

	a := &mock.Actor{}
	b := &mock.Actor{}
	s.world.AddObject(arena, a)
	s.world.AddObject(arena, b)

	s.dir.Orchestrator().SceneConfigured(scope)
	s.Same(audio, a.Audio)
	s.Same(audio, b.Audio)
	s.Same(hud, a.HUD)
	s.True(s.dir.Orchestrator().Swept(scope))
}

func (s *OrchestratorSuite) TestSweepIsIdempotentPerScope() {
	const arena = scenedi.SceneKey("arena")
	scope := s.configureScene(arena)

	s.dir.Orchestrator().SceneConfigured(scope)
	s.dir.Orchestrator().SceneConfigured(scope)
	s.Equal(1, s.world.ObjectCalls)
}

func (s *OrchestratorSuite) TestReinjectForcesFreshSweep() {
	const arena = scenedi.SceneKey("arena")
	scope := s.configureScene(arena)
	actor := &mock.Actor{}
	s.world.AddObject(arena, actor)

	s.dir.Orchestrator().SceneConfigured(scope)
	s.Nil(actor.Audio)

	// A later runtime registration plus a retrigger completes the actor.
	audio := &mock.StubAudio{}
	s.NoError(scenedi.Register[mock.AudioService](scope, audio))
	s.dir.Orchestrator().Reinject(scope)
	s.Same(audio, actor.Audio)
	s.Equal(2, s.world.ObjectCalls)
}

func (s *OrchestratorSuite) TestReinjectObject() {
	scope := s.dir.NewScope(nil)
	audio := &mock.StubAudio{}
	s.NoError(scenedi.Register[mock.AudioService](scope, audio))

	actor := &mock.Actor{}
	s.NoError(s.dir.Orchestrator().ReinjectObject(actor, scope))
	s.Same(audio, actor.Audio)
}

// Host objects in the sweep resolve against their own nearest scope, not
// the swept scene scope.
func (s *OrchestratorSuite) TestHostObjectsResolveAgainstOwnScope() {
	const arena = scenedi.SceneKey("arena")
	sceneScope := s.configureScene(arena)
	sceneAudio := &mock.StubAudio{Name: "scene"}
	s.NoError(scenedi.Register[mock.AudioService](sceneScope, sceneAudio))

	pawn := &mock.Pawn{Host: mock.NewHost("nested", arena, nil)}
	nested := s.dir.NewScope(pawn)
	nestedAudio := &mock.StubAudio{Name: "nested"}
	s.NoError(scenedi.Register[mock.AudioService](nested, nestedAudio))

	s.world.AddObject(arena, pawn)
	s.dir.Orchestrator().Reinject(sceneScope)
	s.Same(nestedAudio, pawn.Audio)
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}
