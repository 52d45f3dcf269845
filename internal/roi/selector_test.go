package roi

import (
	"reflect"
	"testing"
)

func TestSelector_Lifecycle(t *testing.T) {
	s := NewSelector()
	if s.State() != Idle {
		t.Fatalf("initial state: got %v, want idle", s.State())
	}
	if _, ok := s.Preview(); ok {
		t.Error("no preview before press")
	}

	s.Press(Point{5, 5})
	if s.State() != Drawing {
		t.Fatalf("after press: got %v, want drawing", s.State())
	}

	s.Move(Point{3, 8})
	preview, ok := s.Preview()
	if !ok {
		t.Fatal("preview should exist while drawing")
	}
	if want := (ROI{Point{3, 5}, Point{5, 8}}); preview != want {
		t.Errorf("Preview: got %v, want %v", preview, want)
	}
	if len(s.ROIs()) != 0 {
		t.Error("move must not commit an ROI")
	}

	s.Release(Point{2, 2})
	if s.State() != Idle {
		t.Fatalf("after release: got %v, want idle", s.State())
	}

	s.Press(Point{7, 7})
	s.Release(Point{7, 7}) // degenerate, still kept

	got := s.Finish()
	want := []ROI{{Point{2, 2}, Point{5, 5}}, {Point{7, 7}, Point{7, 7}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Finish: got %v, want %v", got, want)
	}
	if s.State() != Committed {
		t.Errorf("after finish: got %v, want committed", s.State())
	}
}

func TestSelector_IgnoresInputAfterFinish(t *testing.T) {
	s := NewSelector()
	s.Press(Point{0, 0})
	s.Release(Point{4, 4})
	s.Finish()

	s.Press(Point{1, 1})
	s.Move(Point{9, 9})
	s.Release(Point{9, 9})

	if s.State() != Committed {
		t.Errorf("state: got %v, want committed", s.State())
	}
	if got := s.ROIs(); len(got) != 1 {
		t.Errorf("got %d ROIs, want 1", len(got))
	}
	if _, ok := s.Cursor(); ok {
		t.Error("cursor should be hidden after finish")
	}
	if again := s.Finish(); len(again) != 1 {
		t.Errorf("Finish again: got %d ROIs, want 1", len(again))
	}
}

func TestSelector_ReleaseWithoutPress(t *testing.T) {
	s := NewSelector()
	s.Move(Point{3, 3})
	s.Release(Point{4, 4})

	if len(s.ROIs()) != 0 {
		t.Error("release in idle should be ignored")
	}
	if p, ok := s.Cursor(); !ok || p != (Point{3, 3}) {
		t.Errorf("Cursor: got %v, %v, want (3,3)", p, ok)
	}
}

func TestSelector_FinishDiscardsDraft(t *testing.T) {
	s := NewSelector()
	s.Press(Point{1, 1})
	s.Move(Point{6, 6})

	if got := s.Finish(); len(got) != 0 {
		t.Errorf("unreleased rectangle should be dropped, got %v", got)
	}
}

func TestSelector_ROIsReturnsCopy(t *testing.T) {
	s := NewSelector()
	s.Press(Point{0, 0})
	s.Release(Point{2, 2})

	rois := s.ROIs()
	rois[0].Max.X = 99
	if s.ROIs()[0].Max.X == 99 {
		t.Error("ROIs should return an independent copy")
	}
}
