package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"plain", "2025-01-15", NewDate(2025, time.January, 15), false},
		{"leap day", "2024-02-29", NewDate(2024, time.February, 29), false},
		{"not a leap year", "2025-02-29", Date{}, true},
		{"us order", "01/15/2025", Date{}, true},
		{"with time", "2025-01-15T10:00:00Z", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !got.Equal(tt.want.Time) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateCompareIsCalendarOrder(t *testing.T) {
	a := MustDate("2025-01-05")
	b := MustDate("2025-01-10")
	if a.Compare(b) >= 0 {
		t.Fatalf("%v should sort before %v", a, b)
	}
	if b.Compare(a) <= 0 {
		t.Fatalf("%v should sort after %v", b, a)
	}
	if a.Compare(MustDate("2025-01-05")) != 0 {
		t.Fatal("equal dates should compare 0")
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		Due  Date  `json:"due"`
		Done *Date `json:"done,omitempty"`
	}
	if err := json.Unmarshal([]byte(`{"due":"2025-02-15"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Due.String() != "2025-02-15" {
		t.Errorf("Due = %q, want 2025-02-15", v.Due.String())
	}
	if v.Done != nil {
		t.Errorf("Done = %v, want nil", v.Done)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"due":"2025-02-15"}` {
		t.Errorf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"due":"15/02/2025"}`), &v); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestEnumValidity(t *testing.T) {
	if !ProjectOverdue.Valid() || ProjectStatus("archived").Valid() {
		t.Error("ProjectStatus.Valid mismatch")
	}
	if !TaskInProgress.Valid() || TaskStatus("in_progress").Valid() {
		t.Error("TaskStatus.Valid mismatch")
	}
	if !InvoiceDraft.Valid() || InvoiceStatus("void").Valid() {
		t.Error("InvoiceStatus.Valid mismatch")
	}
	if PriorityHigh.Weight() <= PriorityMedium.Weight() || PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Error("priority weights must be ordered high > medium > low")
	}
	if !InvoiceOverdue.Outstanding() || InvoiceDraft.Outstanding() || InvoicePaid.Outstanding() {
		t.Error("Outstanding mismatch")
	}
}

// FuzzParseDate checks that the parser never panics and that anything it
// accepts round-trips through String.
func FuzzParseDate(f *testing.F) {
	f.Add("2025-01-15")
	f.Add("2024-02-29")
	f.Add("")
	f.Add("2025-13-01")
	f.Add("not a date")

	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseDate(s)
		if err != nil {
			return
		}
		again, err := ParseDate(d.String())
		if err != nil {
			t.Fatalf("round trip of %q failed: %v", s, err)
		}
		if !again.Equal(d.Time) {
			t.Fatalf("round trip of %q = %v, want %v", s, again, d)
		}
	})
}
