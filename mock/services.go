package mock

import "fmt"

// Sample service interfaces and stubs used across the test suites.

type AudioService interface {
	Play(clip string)
}

type StubAudio struct {
	Name   string
	Played []string
}

func (a *StubAudio) Play(clip string) {
	a.Played = append(a.Played, clip)
}

type SaveService interface {
	Save(slot string) error
}

type StubSave struct {
	Saved []string
}

func (s *StubSave) Save(slot string) error {
	if slot == "" {
		return fmt.Errorf("empty save slot")
	}
	s.Saved = append(s.Saved, slot)
	return nil
}

type HUDService interface {
	Show(msg string)
}

type StubHUD struct {
	Shown []string
}

func (h *StubHUD) Show(msg string) {
	h.Shown = append(h.Shown, msg)
}

// TickProbe implements all three tick capabilities and appends a labelled
// entry per callback to a shared log.
type TickProbe struct {
	Label  string
	Log    *[]string
	LastDT float64
}

func (p *TickProbe) PrePhysicsTick(elapsed float64) {
	p.LastDT = elapsed
	*p.Log = append(*p.Log, p.Label+":pre")
}

func (p *TickProbe) PhysicsTick(elapsed float64) {
	p.LastDT = elapsed
	*p.Log = append(*p.Log, p.Label+":fixed")
}

func (p *TickProbe) PostPhysicsTick(elapsed float64) {
	p.LastDT = elapsed
	*p.Log = append(*p.Log, p.Label+":post")
}

// TickProbeB and TickProbeC are distinct registry types sharing TickProbe's
// behavior, so one scope can hold several ordered tick handles.
type TickProbeB struct{ TickProbe }

type TickProbeC struct{ TickProbe }

// DisposeProbe records teardown invocations in order.
type DisposeProbe struct {
	Label string
	Log   *[]string
}

func (p *DisposeProbe) Dispose() {
	*p.Log = append(*p.Log, p.Label)
}

// DisposeProbeB and DisposeProbeC mirror the tick probe wrappers for
// teardown-ordering tests.
type DisposeProbeB struct{ DisposeProbe }

type DisposeProbeC struct{ DisposeProbe }

// Inert implements no lifecycle capability at all.
type Inert struct{}

// Injection targets.

// Actor has one chain-resolved, one forced-global, and one chain-resolved
// member, in declaration order.
type Actor struct {
	Audio AudioService `inject:""`
	HUD   HUDService   `inject:"global"`
	Save  SaveService  `inject:""`
}

// ActorBase carries an inherited tagged member for the embedded-chain tests.
type ActorBase struct {
	Audio AudioService `inject:""`
}

// Enemy inherits ActorBase.Audio through embedding.
type Enemy struct {
	ActorBase
	HUD HUDService `inject:""`
}

// Pawn is both a host object and an injection target, for sweep tests where
// hosts resolve against their own nearest scope.
type Pawn struct {
	*Host
	ActorBase
}

// Sealed has a tagged member without write access.
type Sealed struct {
	audio AudioService `inject:""`
}

// NewSealed pre-fills the read-only member from inside the package, the way
// an owning type would wire it by hand.
func NewSealed(audio AudioService) *Sealed {
	return &Sealed{audio: audio}
}

// Audio reads the unexported member back, so tests can assert it stayed nil.
func (s *Sealed) Audio() AudioService { return s.audio }

// Mixer declares two members of the same service type, one chain-resolved
// and one forced-global.
type Mixer struct {
	Local  AudioService `inject:""`
	Shared AudioService `inject:"global"`
}

// TwoDeps declares two members in a fixed order for the strategy-contract
// tests.
type TwoDeps struct {
	A AudioService `inject:""`
	B SaveService  `inject:""`
}
