package signal

import (
	"errors"
	"testing"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

func TestNewSession(t *testing.T) {
	s := series(t, [][2]float64{{0, 1}, {0.5, 2}, {1, 1}, {2, 1}})

	st, err := NewSession(s, DefaultMinZoom, DefaultRatio)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if st.Anchor != 1 {
		t.Errorf("Anchor: got %v, want 1", st.Anchor)
	}
	if st.Zoom != 2 {
		t.Errorf("Zoom: got %v, want 2", st.Zoom)
	}
	if st.Ratio != DefaultRatio {
		t.Errorf("Ratio: got %v, want %v", st.Ratio, DefaultRatio)
	}
	if st.View != ViewLabeled {
		t.Errorf("View: got %s, want %s", st.View, ViewLabeled)
	}

	w, err := st.Window()
	if err != nil {
		t.Fatalf("Window failed: %v", err)
	}
	if w.Min != 0 || w.Max != 2 {
		t.Errorf("Window: got [%v, %v], want [0, 2]", w.Min, w.Max)
	}
}

func TestNewSession_ShortSeries(t *testing.T) {
	// A series shorter than the minimum zoom still gets a usable zoom range.
	s := series(t, [][2]float64{{0, 1}, {0.001, 2}})

	st, err := NewSession(s, DefaultMinZoom, 0.5)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if st.Zoom != DefaultMinZoom || st.Limits.ZoomMax != DefaultMinZoom {
		t.Errorf("Zoom: got %v (max %v), want %v", st.Zoom, st.Limits.ZoomMax, DefaultMinZoom)
	}
}

func TestSessionState_Setters(t *testing.T) {
	s := series(t, [][2]float64{{0, 1}, {10, 2}})
	st, err := NewSession(s, 0.5, 0.6)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	tests := []struct {
		name    string
		apply   func(SessionState) (SessionState, error)
		wantErr bool
	}{
		{"anchor in range", func(s SessionState) (SessionState, error) { return s.WithAnchor(3) }, false},
		{"anchor below", func(s SessionState) (SessionState, error) { return s.WithAnchor(-1) }, true},
		{"anchor above", func(s SessionState) (SessionState, error) { return s.WithAnchor(11) }, true},
		{"zoom in range", func(s SessionState) (SessionState, error) { return s.WithZoom(2) }, false},
		{"zoom below floor", func(s SessionState) (SessionState, error) { return s.WithZoom(0.1) }, true},
		{"ratio in range", func(s SessionState) (SessionState, error) { return s.WithRatio(1) }, false},
		{"ratio too small", func(s SessionState) (SessionState, error) { return s.WithRatio(0.001) }, true},
		{"ratio too large", func(s SessionState) (SessionState, error) { return s.WithRatio(1.5) }, true},
		{"view signals", func(s SessionState) (SessionState, error) { return s.WithView(ViewSignals) }, false},
		{"view unknown", func(s SessionState) (SessionState, error) { return s.WithView("heatmap") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.apply(st)
			if tt.wantErr {
				if !errors.Is(err, reviewerr.ErrInvalidParameter) {
					t.Fatalf("expected ErrInvalidParameter, got %v", err)
				}
				if next != st {
					t.Error("rejected update should return the state unchanged")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	// The receiver is never modified.
	moved, _ := st.WithAnchor(7)
	if st.Anchor == 7 || moved.Anchor != 7 {
		t.Errorf("WithAnchor should return a copy: orig=%v moved=%v", st.Anchor, moved.Anchor)
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewMode
		wantErr bool
	}{
		{"", ViewLabeled, false},
		{"original", ViewOriginal, false},
		{"signals", ViewSignals, false},
		{"labeled", ViewLabeled, false},
		{"Labeled", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseViewMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayState_Toggle(t *testing.T) {
	d := DefaultDisplay()
	on := d.ToggleAnnotations()
	if d.Annotations {
		t.Error("ToggleAnnotations mutated the receiver")
	}
	if !on.Annotations {
		t.Error("ToggleAnnotations should enable annotations")
	}
	if on.ToggleAnnotations().Annotations {
		t.Error("second toggle should disable annotations")
	}
}
