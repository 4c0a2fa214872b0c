package metrics

import "testing"

func TestSnapshot(t *testing.T) {
	r := NewRun()
	r.ClipsWritten.Add(2)
	r.FramesWritten.Add(302)
	r.FramesSkipped.Inc()
	r.ClipSeconds.Observe(1.5)

	got, err := r.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	want := Totals{ClipsWritten: 2, FramesWritten: 302, FramesSkipped: 1}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	// A second run starts from zero.
	fresh, err := NewRun().Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if fresh != (Totals{}) {
		t.Errorf("Expected empty totals, got %+v", fresh)
	}
}
