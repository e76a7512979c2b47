package popularity

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/sched"
)

type recordingListener struct {
	outcomes []Outcome
}

func (l *recordingListener) PopularityDecided(o Outcome) {
	l.outcomes = append(l.outcomes, o)
}

func newTestAggregator() (*Aggregator, *sched.Scheduler, *recordingListener) {
	s := sched.New()
	l := &recordingListener{}
	return New(config.Default(), s, l, zerolog.Nop()), s, l
}

func TestLossFiresExactlyOnce(t *testing.T) {
	a, _, l := newTestAggregator()
	a.Setup(450)

	a.Add(-200, 0)
	if len(l.outcomes) != 0 {
		t.Fatalf("decided too early at %v", a.Value())
	}

	a.Add(-100, 0)
	if len(l.outcomes) != 1 || l.outcomes[0] != Lost {
		t.Fatalf("outcomes = %v, want [lost]", l.outcomes)
	}

	a.Add(-50, 0)
	a.Add(900, 0)
	if len(l.outcomes) != 1 {
		t.Errorf("outcome fired again: %v", l.outcomes)
	}
	if a.Value() != 150 {
		t.Errorf("Value() = %v, want 150 (updates after decision are ignored)", a.Value())
	}
	if a.Outcome() != Lost {
		t.Errorf("Outcome() = %v, want lost", a.Outcome())
	}
}

func TestWinAtThreshold(t *testing.T) {
	a, _, l := newTestAggregator()
	a.Setup(700)

	a.Add(50, 0)
	if len(l.outcomes) != 1 || l.outcomes[0] != Won {
		t.Fatalf("outcomes = %v, want [won]", l.outcomes)
	}
}

func TestDecidedBeforeBarCatchesUp(t *testing.T) {
	a, _, l := newTestAggregator()
	a.Setup(700)

	a.Add(50, 500*time.Millisecond)
	if len(l.outcomes) != 1 || l.outcomes[0] != Won {
		t.Fatalf("outcomes = %v, want [won] as soon as the change starts", l.outcomes)
	}
	if a.Displayed() >= 750 {
		t.Errorf("Displayed() = %v, bar should still be filling", a.Displayed())
	}
}

func TestLoseCheckedBeforeWin(t *testing.T) {
	opts := config.Default()
	opts.Game.PopularityToLose = 500
	opts.Game.PopularityToWin = 400
	l := &recordingListener{}
	a := New(opts, sched.New(), l, zerolog.Nop())

	a.Setup(450)
	if len(l.outcomes) != 1 || l.outcomes[0] != Lost {
		t.Errorf("outcomes = %v, want [lost]", l.outcomes)
	}
}

func TestSetupEvaluatesThresholds(t *testing.T) {
	a, _, l := newTestAggregator()
	a.Setup(100)
	if len(l.outcomes) != 1 || l.outcomes[0] != Lost {
		t.Errorf("outcomes = %v, want [lost]", l.outcomes)
	}
}

func TestBarEasesAndRedirects(t *testing.T) {
	a, s, _ := newTestAggregator()
	a.Setup(450)

	a.Add(90, time.Second)
	s.Tick(500 * time.Millisecond)
	if got := a.Displayed(); got != 495 {
		t.Fatalf("Displayed() halfway = %v, want 495", got)
	}

	a.Add(10, time.Second)
	if a.Value() != 550 {
		t.Fatalf("Value() = %v, want 550", a.Value())
	}
	s.Advance(time.Second, 100*time.Millisecond)
	if got := a.Displayed(); got != 550 {
		t.Errorf("Displayed() after settle = %v, want 550", got)
	}
	if s.Len() != 0 {
		t.Errorf("%d bar transitions still live", s.Len())
	}
}

func TestBarNormalization(t *testing.T) {
	a, _, _ := newTestAggregator()
	a.Setup(450)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"scale", a.Scale(), 900},
		{"fraction", a.Fraction(), 0.5},
		{"lose marker", a.LoseMarker(), 150.0 / 900},
		{"win marker", a.WinMarker(), 750.0 / 900},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{Undecided, "undecided"},
		{Lost, "lost"},
		{Won, "won"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}
