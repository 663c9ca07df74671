package strategies

import (
	"context"
	"errors"
	"testing"

	"github.com/leefowlercu/assetbridge/internal/asset"
	"github.com/leefowlercu/assetbridge/internal/host/hosttest"
	"github.com/leefowlercu/assetbridge/internal/ledger"
)

func TestDispatcher_StrategyForIsTotal(t *testing.T) {
	d := NewDispatcher(hosttest.New(), testOptions()...)

	for _, k := range asset.Kinds {
		s, ok := d.StrategyFor(k)
		if !ok || s == nil {
			t.Errorf("no strategy for %v", k)
			continue
		}
		if s.Kind() != k {
			t.Errorf("strategy for %v reports kind %v", k, s.Kind())
		}
	}

	for _, k := range []asset.Kind{asset.KindUnknown, asset.Kind(42), asset.Kind(-1)} {
		if _, ok := d.StrategyFor(k); ok {
			t.Errorf("kind %d should have no strategy", k)
		}
	}
}

func TestDispatcher_UnsupportedProducesNoRecord(t *testing.T) {
	ctx := context.Background()
	fake := hosttest.New()
	bp := fake.Asset("/Game/BP/Door.Door", "Blueprint", "Door")
	odd := asset.Handle{Identity: "/Game/X.X", Kind: asset.Kind(99), DisplayName: "X"}

	l := ledger.New()
	stats := NewDispatcher(fake, testOptions()...).DispatchAll(ctx, []asset.Handle{bp, odd}, t.TempDir(), l)

	if stats.Unsupported != 2 {
		t.Errorf("Unsupported = %d, want 2", stats.Unsupported)
	}
	if stats.TotalSucceeded() != 0 || l.Len() != 0 {
		t.Errorf("unsupported assets must not produce records, got %d", l.Len())
	}
	if stats.TotalFailed() != 0 {
		t.Errorf("unsupported assets are not failures, got %d", stats.TotalFailed())
	}
	if len(fake.Writes) != 0 {
		t.Errorf("unsupported assets must not reach the host writer, got %d writes", len(fake.Writes))
	}
}

func TestDispatcher_FailureIsolation(t *testing.T) {
	ctx := context.Background()
	fake := hosttest.New()
	m1 := fake.Asset("/Game/P/A.A", "StaticMesh", "A")
	m2 := fake.Asset("/Game/P/B.B", "StaticMesh", "B")
	m3 := fake.Asset("/Game/P/C.C", "StaticMesh", "C")
	fake.DeclineFor = map[string]bool{m2.Identity: true}

	l := ledger.New()
	stats := NewDispatcher(fake, testOptions()...).DispatchAll(ctx, []asset.Handle{m1, m2, m3}, t.TempDir(), l)

	if stats.Succeeded[asset.KindStaticMesh] != 2 {
		t.Errorf("StaticMesh count = %d, want 2", stats.Succeeded[asset.KindStaticMesh])
	}
	if stats.Failed[asset.KindStaticMesh] != 1 {
		t.Errorf("StaticMesh failures = %d, want 1", stats.Failed[asset.KindStaticMesh])
	}
	if stats.Processed != 3 {
		t.Errorf("Processed = %d, want 3", stats.Processed)
	}

	snap := l.Snapshot()
	if len(snap.Records) != 2 || snap.Records[0].SourceName != "A" || snap.Records[1].SourceName != "C" {
		t.Errorf("records = %+v, want A and C", snap.Records)
	}
}

func TestDispatcher_HostErrorDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	fake := hosttest.New()
	tex := fake.Asset("/Game/T/Bad.Bad", "Texture2D", "Bad")
	anim := fake.Asset("/Game/A/Walk.Walk", "AnimSequence", "Walk")
	fake.FailFor = map[string]error{tex.Identity: errors.New("source missing")}

	l := ledger.New()
	stats := NewDispatcher(fake, testOptions()...).DispatchAll(ctx, []asset.Handle{tex, anim}, t.TempDir(), l)

	if stats.Failed[asset.KindTexture] != 1 {
		t.Errorf("Texture failures = %d, want 1", stats.Failed[asset.KindTexture])
	}
	if stats.Succeeded[asset.KindAnimation] != 1 {
		t.Errorf("Animation count = %d, want 1", stats.Succeeded[asset.KindAnimation])
	}
}

func TestDispatcher_LedgerConsistency(t *testing.T) {
	ctx := context.Background()
	fake := hosttest.New()
	mat := fake.Asset("/Game/M/Wood.Wood", "Material", "Wood")
	oak := fake.Asset("/Game/T/Oak.Oak", "Texture2D", "Oak")
	fake.BindTexture(mat, "BaseColor", oak.Identity)
	assets := []asset.Handle{
		fake.Asset("/Game/P/Chair.Chair", "StaticMesh", "Chair"),
		fake.Asset("/Game/C/Hero.Hero", "SkeletalMesh", "Hero"),
		fake.Asset("/Game/A/Run.Run", "AnimSequence", "Run"),
		mat,
		oak,
		fake.Asset("/Game/S/Sound.Sound", "SoundWave", "Sound"),
	}

	l := ledger.New()
	stats := NewDispatcher(fake, testOptions()...).DispatchAll(ctx, assets, t.TempDir(), l)
	snap := l.Snapshot()

	for _, k := range asset.Kinds {
		n := 0
		for _, r := range snap.Records {
			if r.Kind == k {
				n++
			}
		}
		if stats.Succeeded[k] != n {
			t.Errorf("%v: stats %d != records %d", k, stats.Succeeded[k], n)
		}
	}
	if stats.Succeeded[asset.KindTexture] != 2 {
		t.Errorf("Texture count = %d, want 2 (direct + dependency)", stats.Succeeded[asset.KindTexture])
	}
	if stats.Unsupported != 1 {
		t.Errorf("Unsupported = %d, want 1", stats.Unsupported)
	}
}

func TestDispatcher_EmptySelection(t *testing.T) {
	l := ledger.New()
	stats := NewDispatcher(hosttest.New(), testOptions()...).DispatchAll(context.Background(), nil, t.TempDir(), l)

	if stats.Processed != 0 || stats.TotalSucceeded() != 0 || stats.TotalFailed() != 0 || stats.Unsupported != 0 {
		t.Errorf("expected all-zero stats, got %+v", stats)
	}
	for _, k := range asset.Kinds {
		if stats.Succeeded[k] != 0 {
			t.Errorf("%v count = %d, want 0", k, stats.Succeeded[k])
		}
	}
}

func TestDispatcher_WithAnimationSkeleton(t *testing.T) {
	ctx := context.Background()
	fake := hosttest.New()
	run := fake.Asset("/Game/A/Run.Run", "AnimSequence", "Run")
	hero := fake.Asset("/Game/C/Hero.Hero", "SkeletalMesh", "Hero")

	d := NewDispatcher(fake, testOptions()...).WithAnimationSkeleton(&hero)
	d.Dispatch(ctx, run, t.TempDir(), ledger.New())

	if skel := fake.Writes[0].Options.Skeleton; skel == nil || skel.Identity != hero.Identity {
		t.Errorf("animation not bound to skeleton, got %+v", skel)
	}
}
