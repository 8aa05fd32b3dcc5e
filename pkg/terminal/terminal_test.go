package terminal

import (
	"errors"
	"os"
	"testing"
)

func TestSizeFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		cols, lines string
		want        Size
	}{
		{"unset", "", "", Size{80, 24}},
		{"set", "120", "40", Size{120, 40}},
		{"garbage", "wide", "-3", Size{80, 24}},
		{"zero", "0", "0", Size{80, 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COLUMNS", tt.cols)
			t.Setenv("LINES", tt.lines)
			if got := sizeFromEnv(); got != tt.want {
				t.Errorf("sizeFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSizeFallsBackForPipes(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	t.Setenv("COLUMNS", "101")
	t.Setenv("LINES", "33")
	if got := GetSize(w.Fd()); got != (Size{101, 33}) {
		t.Errorf("GetSize(pipe) = %v, want 101x33", got)
	}
}

func TestSizeFits(t *testing.T) {
	if !(Size{40, 12}).Fits(MinSize) {
		t.Error("MinSize should fit itself")
	}
	if (Size{39, 50}).Fits(MinSize) {
		t.Error("narrow window should not fit")
	}
	if (Size{200, 11}).Fits(MinSize) {
		t.Error("short window should not fit")
	}
}

func TestCheckRejectsPipes(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	err = Check(r, w)
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Check(pipe) = %v, want ErrNotTerminal", err)
	}
	if IsTerminal(w) {
		t.Error("a pipe is not a terminal")
	}
}

func TestSizeString(t *testing.T) {
	if got := (Size{80, 24}).String(); got != "80x24" {
		t.Errorf("String() = %q", got)
	}
}
