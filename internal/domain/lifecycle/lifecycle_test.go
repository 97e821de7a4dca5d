package lifecycle

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"pending", Pending, false},
		{"in-progress", InProgress, false},
		{"finished", Finished, false},
		{"  finished ", Finished, false},
		{"Finished", "", true},
		{"situation123", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				if err != ErrUnknownStatus {
					t.Errorf("ParseStatus(%q) error = %v, want ErrUnknownStatus", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckClose(t *testing.T) {
	if err := CheckClose(Pending); err != nil {
		t.Errorf("CheckClose(pending) = %v, want nil", err)
	}
	if err := CheckClose(InProgress); err != nil {
		t.Errorf("CheckClose(in-progress) = %v, want nil", err)
	}
	if err := CheckClose(Finished); err != ErrAlreadyFinished {
		t.Errorf("CheckClose(finished) = %v, want ErrAlreadyFinished", err)
	}
}

func TestCheckReopen(t *testing.T) {
	if err := CheckReopen(Finished); err != nil {
		t.Errorf("CheckReopen(finished) = %v, want nil", err)
	}
	for _, s := range []Status{Pending, InProgress} {
		if err := CheckReopen(s); err != ErrNotFinished {
			t.Errorf("CheckReopen(%s) = %v, want ErrNotFinished", s, err)
		}
	}
}

func TestCloseThenReopenRestoresPending(t *testing.T) {
	log := []entry{{1, Pending}}

	cur, _ := Current(log, entrySeq, entryStatus)
	if err := CheckClose(cur); err != nil {
		t.Fatalf("close rejected: %v", err)
	}
	log = append(log, entry{2, Finished})

	cur, _ = Current(log, entrySeq, entryStatus)
	if err := CheckReopen(cur); err != nil {
		t.Fatalf("reopen rejected: %v", err)
	}
	log = append(log, entry{3, Pending})

	cur, _ = Current(log, entrySeq, entryStatus)
	if cur != Pending {
		t.Errorf("current = %q, want pending", cur)
	}
	if err := CheckReopen(cur); err != ErrNotFinished {
		t.Errorf("second reopen = %v, want ErrNotFinished", err)
	}
}

type entry struct {
	seq    int64
	status Status
}

func entrySeq(e entry) int64     { return e.seq }
func entryStatus(e entry) string { return string(e.status) }

func TestCurrent_OutOfOrder(t *testing.T) {
	log := []entry{{5, Finished}, {2, Pending}, {9, InProgress}, {7, Finished}}
	got, ok := Current(log, entrySeq, entryStatus)
	if !ok {
		t.Fatal("expected a current status")
	}
	if got != InProgress {
		t.Errorf("Current = %q, want in-progress", got)
	}
}

func TestCurrent_Empty(t *testing.T) {
	if _, ok := Current([]entry(nil), entrySeq, entryStatus); ok {
		t.Error("expected ok=false for empty log")
	}
}
