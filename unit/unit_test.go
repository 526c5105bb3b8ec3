package unit_test

import (
	"testing"
	"time"

	"github.com/mobanhawi/prodash/unit"
)

func TestPercentageClampsAndRounds(t *testing.T) {
	testCases := []struct {
		name       string
		step, max  uint64
		wantPctStr string
	}{
		{name: "GivenZeroMax_WhenPercentageComputed_ThenReturnsZero", step: 5, max: 0, wantPctStr: "0%"},
		{name: "GivenStepEqualsMax_WhenPercentageComputed_ThenReturns100", step: 100, max: 100, wantPctStr: "100%"},
		{name: "GivenStepExceedsMax_WhenPercentageComputed_ThenClampsTo100", step: 150, max: 100, wantPctStr: "100%"},
		{name: "GivenHalfway_WhenPercentageComputed_ThenReturns50", step: 50, max: 100, wantPctStr: "50%"},
	}
	b := unit.Bytes{}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.DisplayPercentage(tc.step, tc.max); got != tc.wantPctStr {
				t.Errorf("DisplayPercentage() = %q, want %q", got, tc.wantPctStr)
			}
		})
	}
}

// TestBytesReachesFullPercentage covers a Bytes unit initialized with
// a max of 100 and incremented to exactly that max, reaching 100%.
func TestBytesReachesFullPercentage(t *testing.T) {
	b := unit.Bytes{}
	max := uint64(100)
	step := uint64(0)
	for i := 0; i < 4; i++ {
		step += 25
	}
	if got, want := b.DisplayValue(step, &max), "100 B / 100 B"; got != want {
		t.Errorf("DisplayValue() = %q, want %q", got, want)
	}
	if got, want := b.DisplayPercentage(step, max), "100%"; got != want {
		t.Errorf("DisplayPercentage() = %q, want %q", got, want)
	}
}

func TestBytesThroughputOptIn(t *testing.T) {
	t.Run("GivenThroughputDisabled_WhenDisplayed_ThenEmpty", func(t *testing.T) {
		b := unit.Bytes{Throughput: false}
		if got := b.DisplayThroughput(1024); got != "" {
			t.Errorf("DisplayThroughput() = %q, want empty", got)
		}
	})
	t.Run("GivenThroughputEnabled_WhenDisplayed_ThenFormatted", func(t *testing.T) {
		b := unit.Bytes{Throughput: true}
		if got := b.DisplayThroughput(1024); got == "" {
			t.Error("DisplayThroughput() = empty, want formatted rate")
		}
	})
}

func TestDynamicNeverShowsThroughput(t *testing.T) {
	d := unit.Dynamic{Label: "objects"}
	if got := d.DisplayThroughput(123); got != "" {
		t.Errorf("DisplayThroughput() = %q, want empty", got)
	}
}

func TestStaticModes(t *testing.T) {
	t.Run("GivenModeCount_WhenDisplayValue_ThenNoFraction", func(t *testing.T) {
		s := unit.Static{Label: "errors", Mode: unit.ModeCount}
		max := uint64(10)
		if got, want := s.DisplayValue(3, &max), "3 errors"; got != want {
			t.Errorf("DisplayValue() = %q, want %q", got, want)
		}
	})
	t.Run("GivenModeRange_WhenDisplayValue_ThenShowsFraction", func(t *testing.T) {
		s := unit.Static{Label: "items", Mode: unit.ModeRange}
		max := uint64(10)
		if got, want := s.DisplayValue(3, &max), "3 / 10 items"; got != want {
			t.Errorf("DisplayValue() = %q, want %q", got, want)
		}
	})
}

// TestThroughputComputesRateAcrossSamples asserts samples at
// t=0,100,200,300ms with steps 0,1024,2048,3072 yield the rate implied
// by the first and last sample (Δstep/Δt), independent of the samples
// in between.
func TestThroughputComputesRateAcrossSamples(t *testing.T) {
	th := unit.NewThroughput()
	base := time.Unix(0, 0)
	th.Sample(base, 0)
	th.Sample(base.Add(100*time.Millisecond), 1024)
	th.Sample(base.Add(200*time.Millisecond), 2048)
	th.Sample(base.Add(300*time.Millisecond), 3072)

	rate, ok := th.Rate()
	if !ok {
		t.Fatal("Rate() ok = false, want true")
	}
	const want = 3072.0 / 0.3
	if diff := rate - want; diff > 1 || diff < -1 {
		t.Errorf("Rate() = %v, want ~%v", rate, want)
	}
}

func TestThroughputInsufficientWindow(t *testing.T) {
	th := unit.NewThroughput()
	base := time.Unix(0, 0)
	th.Sample(base, 0)
	th.Sample(base.Add(10*time.Millisecond), 10)
	if _, ok := th.Rate(); ok {
		t.Error("Rate() ok = true, want false (window below minimum)")
	}
}

func TestThroughputSingleSample(t *testing.T) {
	th := unit.NewThroughput()
	th.Sample(time.Unix(0, 0), 5)
	if _, ok := th.Rate(); ok {
		t.Error("Rate() ok = true, want false (only one sample)")
	}
}

func TestThroughputCapacityEviction(t *testing.T) {
	th := unit.NewThroughput()
	base := time.Unix(0, 0)
	for i := 0; i < 20; i++ {
		th.Sample(base.Add(time.Duration(i)*100*time.Millisecond), uint64(i))
	}
	rate, ok := th.Rate()
	if !ok {
		t.Fatal("Rate() ok = false after many samples, want true")
	}
	// With a capacity of 10, only the last 10 samples (indices 10..19)
	// remain, so the rate should still reflect ~1 step per 100ms.
	if rate < 9 || rate > 11 {
		t.Errorf("Rate() = %v, want ~10", rate)
	}
}

func TestThroughputResetAfterInit(t *testing.T) {
	th := unit.NewThroughput()
	base := time.Unix(0, 0)
	th.Sample(base, 100)
	th.Sample(base.Add(200*time.Millisecond), 200)
	th.Reset()
	if _, ok := th.Rate(); ok {
		t.Error("Rate() ok = true after Reset, want false")
	}
}
