package combatclass_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/combatclasses/internal/game/combatclass"
	"github.com/udisondev/combatclasses/internal/model"
)

func TestManager_OnLoad_AppliesOverlay(t *testing.T) {
	f := newFixture(t, defaultTuning())
	before := snapshot(f.ada)

	f.mgr.OnLoad(f.ada)

	st, ok := f.mgr.State(adaID)
	require.True(t, ok, "state entry must exist after load")
	assert.True(t, st.ImprovementsApplied)
	assert.Equal(t, before[model.AVMarksman], st.Baseline.Marksman)
	assert.Equal(t, before[model.AVAttackAngleMult], st.Baseline.AttackAngleMult)
	assert.Equal(t, before[model.AVAimOffsetV], st.Baseline.AimOffsetV)
	assert.Equal(t, before[model.AVAimSightedDelay], st.Baseline.AimSightedDelay)
	assert.Equal(t, before[model.AVCombatHealthRegenMult], st.Baseline.HealthRegenMult)

	assert.Equal(t, 55.0, f.ada.ActorValue(model.AVMarksman))
	assert.Equal(t, 0.5, f.ada.ActorValue(model.AVAttackAngleMult))
	assert.Equal(t, 0.85, f.ada.ActorValue(model.AVAimOffsetV))
	assert.Equal(t, 0.1, f.ada.ActorValue(model.AVAimSightedDelay))
	assert.Equal(t, combatclass.HealthRegenMult, f.ada.ActorValue(model.AVCombatHealthRegenMult))

	assert.Equal(t, []string{"Ada's Accuracy Improvements Applied"}, f.world.Notifications())
}

func TestManager_ApplyOverlay_Idempotent(t *testing.T) {
	f := newFixture(t, defaultTuning())

	f.mgr.OnLoad(f.ada)
	first, _ := f.mgr.State(adaID)
	afterFirst := snapshot(f.ada)

	f.mgr.OnLoad(f.ada)
	second, _ := f.mgr.State(adaID)

	assert.Equal(t, first.Baseline, second.Baseline, "baseline must be captured once")
	assert.Equal(t, afterFirst, snapshot(f.ada), "second apply must not change live values")
	assert.Len(t, f.world.Notifications(), 1)
}

func TestManager_ApplyOverlay_NeverLowersMarksman(t *testing.T) {
	tuning := defaultTuning()
	tuning.BaseAccuracyBonus = -10
	f := newFixture(t, tuning)

	f.mgr.OnLoad(f.ada)

	assert.Equal(t, 25.0, f.ada.ActorValue(model.AVMarksman))
}

func TestManager_OverlayRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values map[model.ActorValue]float64
	}{
		{
			name: "stock companion",
			values: map[model.ActorValue]float64{
				model.AVMarksman: 25, model.AVAttackAngleMult: 1, model.AVAimOffsetV: 1,
				model.AVAimSightedDelay: 0.25, model.AVCombatHealthRegenMult: 1,
			},
		},
		{
			name: "master archer",
			values: map[model.ActorValue]float64{
				model.AVMarksman: 100, model.AVAttackAngleMult: 0.35, model.AVAimOffsetV: 0.123456789,
				model.AVAimSightedDelay: 0, model.AVCombatHealthRegenMult: 0.7,
			},
		},
		{
			name: "negative and fractional",
			values: map[model.ActorValue]float64{
				model.AVMarksman: -3.75, model.AVAttackAngleMult: 1e-9, model.AVAimOffsetV: -0.5,
				model.AVAimSightedDelay: 12.5, model.AVCombatHealthRegenMult: 3.3333333,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, defaultTuning())
			for av, v := range tt.values {
				f.ada.SetActorValue(av, v)
			}

			f.mgr.OnLoad(f.ada)
			f.mgr.OnUnload(f.ada)

			assert.Equal(t, tt.values, snapshot(f.ada))
			_, ok := f.mgr.State(adaID)
			assert.False(t, ok, "state entry must be erased on unload")
		})
	}
}

func TestManager_AutoApplyDisabled(t *testing.T) {
	tuning := defaultTuning()
	tuning.AutoApplyImprovements = false
	f := newFixture(t, tuning)
	before := snapshot(f.ada)

	f.mgr.OnLoad(f.ada)

	st, ok := f.mgr.State(adaID)
	require.True(t, ok)
	assert.False(t, st.ImprovementsApplied)
	assert.Equal(t, before, snapshot(f.ada))
}

func TestManager_DisabledFollower(t *testing.T) {
	f := newFixture(t, defaultTuning())
	before := snapshot(f.bjorn)

	f.mgr.OnLoad(f.bjorn)

	_, ok := f.mgr.State(bjornID)
	assert.False(t, ok)
	assert.Equal(t, before, snapshot(f.bjorn))
}

func TestManager_NonRosterIsNoOp(t *testing.T) {
	f := newFixture(t, defaultTuning())
	before := snapshot(f.stranger)

	f.mgr.OnLoad(f.stranger)
	f.mgr.OnEquip(f.stranger, truthseeker)
	f.mgr.OnEquip(f.stranger, sevenfold)
	f.clock.Advance(time.Minute)
	f.mgr.OnTick(f.stranger)
	f.mgr.OnUnequip(f.stranger, truthseeker)
	f.mgr.OnUnload(f.stranger)

	assert.Equal(t, before, snapshot(f.stranger))
	assert.Equal(t, 0, f.mgr.TrackedCount())
	assert.Empty(t, f.world.Notifications())
	assert.Empty(t, f.world.Knockbacks())
	assert.Empty(t, f.recorder.kinds())
}

func TestManager_NilActorIsNoOp(t *testing.T) {
	f := newFixture(t, defaultTuning())

	assert.NotPanics(t, func() {
		f.mgr.OnLoad(nil)
		f.mgr.OnUnload(nil)
		f.mgr.OnEquip(nil, truthseeker)
		f.mgr.OnUnequip(nil, truthseeker)
		f.mgr.OnTick(nil)
	})
	assert.Equal(t, 0, f.mgr.TrackedCount())
}

func TestManager_OnUnload_WithoutState(t *testing.T) {
	f := newFixture(t, defaultTuning())
	before := snapshot(f.ada)

	f.mgr.OnUnload(f.ada)

	assert.Equal(t, before, snapshot(f.ada))
	assert.Equal(t, 0, f.mgr.TrackedCount())
}

func TestManager_OnUnload_RevertsAllBonuses(t *testing.T) {
	f := newFixture(t, defaultTuning())
	before := snapshot(f.ada)

	f.mgr.OnLoad(f.ada)
	f.mgr.OnEquip(f.ada, truthseeker)
	f.mgr.OnEquip(f.ada, sevenfold)

	st, _ := f.mgr.State(adaID)
	require.True(t, st.HasSpecialBowBonus)
	require.True(t, st.SwordKnockbackActive)

	f.mgr.OnUnload(f.ada)

	assert.Equal(t, before, snapshot(f.ada), "no bonus may leak past unload")
	_, ok := f.mgr.State(adaID)
	assert.False(t, ok)

	f.clock.Advance(time.Minute)
	f.mgr.OnTick(f.ada)
	assert.Empty(t, f.world.Knockbacks(), "no knockback after unload")
}

func TestManager_UnloadRestoresBaseline_AnyEventOrder(t *testing.T) {
	tests := []struct {
		name      string
		autoApply bool
		events    func(f *fixture)
	}{
		{
			name:      "load then bow",
			autoApply: true,
			events: func(f *fixture) {
				f.mgr.OnLoad(f.ada)
				f.mgr.OnEquip(f.ada, huntingBow)
			},
		},
		{
			name:      "bow then load",
			autoApply: true,
			events: func(f *fixture) {
				f.mgr.OnEquip(f.ada, huntingBow)
				f.mgr.OnLoad(f.ada)
			},
		},
		{
			name:      "special bow then load",
			autoApply: true,
			events: func(f *fixture) {
				f.mgr.OnEquip(f.ada, truthseeker)
				f.mgr.OnLoad(f.ada)
			},
		},
		{
			name:      "special bow then load then unequip",
			autoApply: true,
			events: func(f *fixture) {
				f.mgr.OnEquip(f.ada, truthseeker)
				f.mgr.OnLoad(f.ada)
				f.mgr.OnUnequip(f.ada, truthseeker)
			},
		},
		{
			name:      "sword then load",
			autoApply: true,
			events: func(f *fixture) {
				f.mgr.OnEquip(f.ada, sevenfold)
				f.mgr.OnLoad(f.ada)
			},
		},
		{
			name:      "bow without overlay",
			autoApply: false,
			events: func(f *fixture) {
				f.mgr.OnLoad(f.ada)
				f.mgr.OnEquip(f.ada, huntingBow)
			},
		},
		{
			name:      "bow without overlay then unequip",
			autoApply: false,
			events: func(f *fixture) {
				f.mgr.OnEquip(f.ada, huntingBow)
				f.mgr.OnUnequip(f.ada, huntingBow)
			},
		},
		{
			name:      "resync over drawn bow",
			autoApply: false,
			events: func(f *fixture) {
				f.mgr.OnLoad(f.ada)
				f.ada.Equip(huntingBow.ID)
				f.mgr.OnEquip(f.ada, huntingBow)
				f.mgr.Initialize()
			},
		},
		{
			name:      "resync over drawn special bow",
			autoApply: false,
			events: func(f *fixture) {
				f.ada.Equip(truthseeker.ID)
				f.mgr.OnEquip(f.ada, truthseeker)
				f.mgr.Initialize()
				f.mgr.Initialize()
			},
		},
		{
			name:      "bow swap before load",
			autoApply: true,
			events: func(f *fixture) {
				f.mgr.OnEquip(f.ada, truthseeker)
				f.mgr.OnEquip(f.ada, huntingBow)
				f.mgr.OnLoad(f.ada)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := defaultTuning()
			tuning.AutoApplyImprovements = tt.autoApply
			f := newFixture(t, tuning)
			before := snapshot(f.ada)

			tt.events(f)
			f.mgr.OnUnload(f.ada)

			assert.Equal(t, before, snapshot(f.ada))
			_, ok := f.mgr.State(adaID)
			assert.False(t, ok)
		})
	}
}

func TestManager_OnLoad_LayersDrawnBowOverOverlay(t *testing.T) {
	f := newFixture(t, defaultTuning())

	f.mgr.OnEquip(f.ada, truthseeker)
	f.mgr.OnLoad(f.ada)

	st, ok := f.mgr.State(adaID)
	require.True(t, ok)
	assert.Equal(t, 25.0, st.Baseline.Marksman, "bow tiers stay out of the baseline")
	assert.Equal(t, 1.0, st.Baseline.AttackAngleMult)

	assert.Equal(t, 25.0+30+20+15, f.ada.ActorValue(model.AVMarksman))
	assert.InDelta(t, 0.5*0.6, f.ada.ActorValue(model.AVAttackAngleMult), 1e-12)

	f.mgr.OnUnequip(f.ada, truthseeker)
	assert.Equal(t, 55.0, f.ada.ActorValue(model.AVMarksman))
	assert.InDelta(t, 0.5, f.ada.ActorValue(model.AVAttackAngleMult), 1e-12)
}

func TestManager_Initialize(t *testing.T) {
	f := newFixture(t, defaultTuning())
	f.ada.Equip(truthseeker.ID)

	f.mgr.Initialize()

	st, ok := f.mgr.State(adaID)
	require.True(t, ok)
	assert.True(t, st.ImprovementsApplied)
	assert.Equal(t, truthseeker.ID, st.EquippedBowID)
	assert.True(t, st.HasSpecialBowBonus)
	assert.Equal(t, 90.0, f.ada.ActorValue(model.AVMarksman))

	_, ok = f.mgr.State(bjornID)
	assert.False(t, ok, "disabled follower must not be initialized")

	// Resync is idempotent.
	f.mgr.Initialize()
	assert.Equal(t, 90.0, f.ada.ActorValue(model.AVMarksman))
}

func TestManager_Initialize_SkipsUnloaded(t *testing.T) {
	f := newFixture(t, defaultTuning())
	f.ada.SetLoaded(false)

	f.mgr.Initialize()

	assert.Equal(t, 0, f.mgr.TrackedCount())
}

func TestManager_Reconcile_DropsFormerFollowers(t *testing.T) {
	f := newFixture(t, defaultTuning())
	before := snapshot(f.ada)

	f.mgr.OnLoad(f.ada)
	f.mgr.OnEquip(f.ada, huntingBow)
	require.Equal(t, 1, f.mgr.TrackedCount())

	f.roster.Set(model.NewRoster(defaultTuning(), nil, nil))
	f.mgr.Reconcile()

	assert.Equal(t, 0, f.mgr.TrackedCount())
	assert.Equal(t, before, snapshot(f.ada))
}

func TestManager_Notifications_OnlyForTeammates(t *testing.T) {
	f := newFixture(t, defaultTuning())
	f.ada.SetTeammate(false)

	f.mgr.OnLoad(f.ada)
	f.mgr.OnEquip(f.ada, truthseeker)
	f.mgr.OnEquip(f.ada, sevenfold)

	st, _ := f.mgr.State(adaID)
	assert.True(t, st.ImprovementsApplied)
	assert.True(t, st.HasSpecialBowBonus)
	assert.True(t, st.SwordKnockbackActive)
	assert.Empty(t, f.world.Notifications())
}

func TestManager_RecordsJournal(t *testing.T) {
	f := newFixture(t, defaultTuning())

	f.mgr.OnLoad(f.ada)
	f.mgr.OnEquip(f.ada, truthseeker)
	f.mgr.OnUnequip(f.ada, truthseeker)
	f.mgr.OnUnload(f.ada)

	assert.Equal(t, []model.JournalKind{
		model.JournalImprovementsApplied,
		model.JournalBowBonusApplied,
		model.JournalSpecialBowApplied,
		model.JournalSpecialBowRemoved,
		model.JournalBowBonusRemoved,
		model.JournalImprovementsRemoved,
		model.JournalStateCleared,
	}, f.recorder.kinds())
}

func TestManager_Forget(t *testing.T) {
	f := newFixture(t, defaultTuning())
	f.mgr.OnLoad(f.ada)
	loaded := snapshot(f.ada)

	f.mgr.Forget(adaID)
	f.mgr.Forget(adaID)

	_, ok := f.mgr.State(adaID)
	assert.False(t, ok)
	assert.Equal(t, loaded, snapshot(f.ada), "forget never writes attributes")

	// The same form loads again with fresh values.
	f.ada.SetActorValue(model.AVMarksman, 40)
	f.mgr.OnLoad(f.ada)

	st, ok := f.mgr.State(adaID)
	require.True(t, ok)
	assert.Equal(t, 40.0, st.Baseline.Marksman)
	assert.Equal(t, 70.0, f.ada.ActorValue(model.AVMarksman))
}
