package scenedi_test

import (
	"testing"

	"github.com/scenedi/scenedi"
	"github.com/scenedi/scenedi/mock"
	"github.com/stretchr/testify/suite"
)

type DispatchSuite struct {
	suite.Suite
	dir *scenedi.Directory
}

func (s *DispatchSuite) SetupTest() {
	s.dir = scenedi.New()
}

func (s *DispatchSuite) TestTickPhasesFireInRegistrationOrder() {
	scope := s.dir.NewScope(nil)
	log := []string{}
	one := &mock.TickProbe{Label: "1", Log: &log}
	two := &mock.TickProbeB{TickProbe: mock.TickProbe{Label: "2", Log: &log}}

	s.NoError(scenedi.RegisterTicking[*mock.TickProbe](scope, one, scenedi.PrePhysics, scenedi.Physics, scenedi.PostPhysics))
	s.NoError(scenedi.RegisterTicking[*mock.TickProbeB](scope, two, scenedi.PrePhysics, scenedi.Physics, scenedi.PostPhysics))

	scope.Tick(scenedi.PrePhysics, 0.016)
	scope.Tick(scenedi.Physics, 0.02)
	scope.Tick(scenedi.PostPhysics, 0.016)

	s.Equal([]string{
		"1:pre", "2:pre",
		"1:fixed", "2:fixed",
		"1:post", "2:post",
	}, log)
}

func (s *DispatchSuite) TestElapsedTimeIsPassedThrough() {
	scope := s.dir.NewScope(nil)
	log := []string{}
	probe := &mock.TickProbe{Label: "p", Log: &log}

	s.NoError(scenedi.RegisterTicking[*mock.TickProbe](scope, probe, scenedi.Physics))
	scope.Tick(scenedi.Physics, 0.02)
	s.InDelta(0.02, probe.LastDT, 1e-9)
}

func (s *DispatchSuite) TestDuplicateTickRegistrationIsNoOp() {
	scope := s.dir.NewScope(nil)
	log := []string{}
	probe := &mock.TickProbe{Label: "p", Log: &log}

	s.NoError(scope.AddTicking(probe, scenedi.PrePhysics))
	s.NoError(scope.AddTicking(probe, scenedi.PrePhysics))

	scope.Tick(scenedi.PrePhysics, 0.016)
	s.Equal([]string{"p:pre"}, log)
}

func (s *DispatchSuite) TestCapabilityVerifiedAtRegistration() {
	scope := s.dir.NewScope(nil)
	err := scenedi.RegisterTicking[*mock.Inert](scope, &mock.Inert{}, scenedi.PrePhysics)
	s.Error(err)
	s.IsType(&scenedi.CapabilityError{}, err)

	err = scenedi.RegisterDisposable[*mock.Inert](scope, &mock.Inert{})
	s.Error(err)
	s.IsType(&scenedi.CapabilityError{}, err)
}

func (s *DispatchSuite) TestTeardownOrderExactlyOnce() {
	scope := s.dir.NewScope(nil)
	log := []string{}
	one := &mock.DisposeProbe{Label: "1", Log: &log}
	two := &mock.DisposeProbeB{DisposeProbe: mock.DisposeProbe{Label: "2", Log: &log}}
	three := &mock.DisposeProbeC{DisposeProbe: mock.DisposeProbe{Label: "3", Log: &log}}

	s.NoError(scenedi.RegisterDisposable[*mock.DisposeProbe](scope, one))
	s.NoError(scenedi.RegisterDisposable[*mock.DisposeProbeB](scope, two))
	s.NoError(scenedi.RegisterDisposable[*mock.DisposeProbeC](scope, three))

	scope.Teardown()
	s.Equal([]string{"1", "2", "3"}, log)

	// A second Teardown is a no-op at the scope level.
	scope.Teardown()
	s.Equal([]string{"1", "2", "3"}, log)
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchSuite))
}
