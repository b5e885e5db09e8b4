package scenedi

import (
	"reflect"

	"go.uber.org/zap"
)

// Fault carries one injection failure to the active strategy: a member whose
// service was missing, or a tagged member without write access.
type Fault struct {
	Target any
	Member string
	Type   reflect.Type
	Scope  *Scope
	Err    error
}

// Strategy is the process-wide policy deciding what an injection fault does.
// Returning nil lets the injector continue with the next member; returning a
// non-nil error aborts the pass, leaving later members unattempted.
type Strategy interface {
	OnInjectionFault(f Fault) error
}

// WarnStrategy reports every fault and keeps going, so each tagged member is
// attempted even when earlier ones failed.
type WarnStrategy struct {
	Log *zap.Logger
}

func (s *WarnStrategy) OnInjectionFault(f Fault) error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Warn("injection fault",
		zap.String("target", fmtTarget(f.Target)),
		zap.String("member", f.Member),
		zap.String("serviceType", f.Type.String()),
		zap.String("scope", scopeID(f.Scope)),
		zap.Error(f.Err))
	return nil
}

// FailStrategy aborts the injection pass at the first fault. Members
// declared after the faulting one are left unset even if they would have
// resolved; callers wanting per-member isolation use WarnStrategy.
type FailStrategy struct{}

func (s *FailStrategy) OnInjectionFault(f Fault) error {
	return &InjectionError{
		Target: reflect.TypeOf(f.Target),
		Member: f.Member,
		Err:    f.Err,
	}
}

func fmtTarget(target any) string {
	if target == nil {
		return "<nil>"
	}
	return reflect.TypeOf(target).String()
}

func scopeID(s *Scope) string {
	if s == nil {
		return "<none>"
	}
	return s.ID()
}
