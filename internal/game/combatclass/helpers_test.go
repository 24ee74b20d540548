package combatclass_test

import (
	"sync"
	"testing"
	"time"

	"github.com/udisondev/combatclasses/internal/clock"
	"github.com/udisondev/combatclasses/internal/config"
	"github.com/udisondev/combatclasses/internal/game/combatclass"
	"github.com/udisondev/combatclasses/internal/model"
	"github.com/udisondev/combatclasses/internal/world"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const modIndex = 1

var (
	adaID        = model.NewFormID(modIndex, 0x14000)
	bjornID      = model.NewFormID(modIndex, 0x14003)
	strangerID   = model.NewFormID(0, 0x1A2B3)
	banditID     = model.NewFormID(0, 0x1E7E5)
	playerID     = model.NewFormID(0, 0x7)
	truthseeker  = model.Item{ID: model.NewFormID(modIndex, 0x14001), Name: "Truthseeker", Kind: model.ItemKindWeapon, WeaponType: model.WeaponBow}
	huntingBow   = model.Item{ID: model.NewFormID(0, 0x13985), Name: "Hunting Bow", Kind: model.ItemKindWeapon, WeaponType: model.WeaponBow}
	sevenfold    = model.Item{ID: model.NewFormID(modIndex, 0x14002), Name: "Sevenfold", Kind: model.ItemKindWeapon, WeaponType: model.WeaponOneHandSword}
	ironSword    = model.Item{ID: model.NewFormID(0, 0x12EB7), Name: "Iron Sword", Kind: model.ItemKindWeapon, WeaponType: model.WeaponOneHandSword}
	leatherArmor = model.Item{ID: model.NewFormID(0, 0x3619E), Name: "Leather Armor", Kind: model.ItemKindArmor}
)

// rosterBox is a RosterSource whose roster can be swapped mid-test.
type rosterBox struct {
	mu sync.RWMutex
	r  model.Roster
}

func (b *rosterBox) Roster() model.Roster {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.r
}

func (b *rosterBox) Set(r model.Roster) {
	b.mu.Lock()
	b.r = r
	b.mu.Unlock()
}

type recorderStub struct {
	mu      sync.Mutex
	entries []model.JournalEntry
}

func (r *recorderStub) Record(e model.JournalEntry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
}

func (r *recorderStub) kinds() []model.JournalKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.JournalKind, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Kind)
	}
	return out
}

func defaultTuning() model.Tuning {
	return config.DefaultGeneral().Tuning()
}

func testRoster(tuning model.Tuning) model.Roster {
	return model.NewRoster(tuning,
		[]model.TrackedCharacter{
			{Name: "Ada", ID: adaID, Enabled: true},
			{Name: "Bjorn", ID: bjornID, Enabled: false},
		},
		[]model.SpecialWeapon{
			{Name: "Truthseeker", ID: truthseeker.ID, Category: model.CategoryBow},
			{Name: "Sevenfold", ID: sevenfold.ID, Category: model.CategorySword},
		},
	)
}

type fixture struct {
	world    *world.World
	clock    *clock.Mock
	roster   *rosterBox
	recorder *recorderStub
	mgr      *combatclass.Manager

	ada      *world.Actor
	bjorn    *world.Actor
	stranger *world.Actor
	bandit   *world.Actor
	player   *world.Actor
}

func newFixture(t *testing.T, tuning model.Tuning) *fixture {
	t.Helper()

	w := world.New()
	if _, err := w.AddPlugin("YourMod.esp"); err != nil {
		t.Fatalf("AddPlugin: %v", err)
	}
	for _, item := range []model.Item{truthseeker, huntingBow, sevenfold, ironSword, leatherArmor} {
		w.AddItem(item)
	}

	f := &fixture{
		world:    w,
		clock:    clock.NewMock(testStart),
		roster:   &rosterBox{r: testRoster(tuning)},
		recorder: &recorderStub{},
		ada:      newCompanion(adaID, "Ada"),
		bjorn:    newCompanion(bjornID, "Bjorn"),
		stranger: newCompanion(strangerID, "Lydia"),
		bandit:   world.NewActor(banditID, "Bandit", "bandit"),
		player:   world.NewActor(playerID, "Player", "player"),
	}
	f.bandit.SetLoaded(true)
	f.bandit.SetPosition(model.NewPosition(500, 0, 0))
	f.player.SetLoaded(true)

	for _, a := range []*world.Actor{f.ada, f.bjorn, f.stranger, f.bandit, f.player} {
		w.AddActor(a)
	}
	w.SetPlayer(playerID)

	f.mgr = combatclass.NewManager(w, f.roster,
		combatclass.WithClock(f.clock),
		combatclass.WithRecorder(f.recorder))
	return f
}

func newCompanion(id model.FormID, name string) *world.Actor {
	a := world.NewActor(id, name, "player")
	a.SetTeammate(true)
	a.SetLoaded(true)
	a.SetActorValue(model.AVMarksman, 25)
	a.SetActorValue(model.AVAttackAngleMult, 1.0)
	a.SetActorValue(model.AVAimOffsetV, 1.0)
	a.SetActorValue(model.AVAimSightedDelay, 0.25)
	a.SetActorValue(model.AVCombatHealthRegenMult, 1.0)
	return a
}

func snapshot(a *world.Actor) map[model.ActorValue]float64 {
	out := make(map[model.ActorValue]float64, len(model.OverlayValues))
	for _, av := range model.OverlayValues {
		out[av] = a.ActorValue(av)
	}
	return out
}
