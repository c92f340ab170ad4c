package models

import "testing"

func TestPosTagWeight(t *testing.T) {
	tests := []struct {
		tag  PosTag
		want float64
	}{
		{PosNoun, 1.0},
		{PosVerb, 0.9},
		{PosNum, 0.8},
		{PosAdj, 0.5},
		{PosAdv, 0.4},
		{PosDet, 0.2},
		{PosAdp, 0.1},
		{PosConj, 0.05},
		{PosTag("MYSTERY"), 0.5},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			if got := tt.tag.Weight(); got != tt.want {
				t.Errorf("Weight(%s) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestDiffRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     *DiffRequest
		wantErr bool
	}{
		{"both texts", &DiffRequest{FromText: "a", ToText: "b"}, false},
		{"missing from", &DiffRequest{ToText: "b"}, true},
		{"missing to", &DiffRequest{FromText: "a"}, true},
		{"both missing", &DiffRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelRequest_Validate(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		req := &LevelRequest{Level: level}
		if err := req.Validate(); err != nil {
			t.Errorf("Validate(level=%d) unexpected error: %v", level, err)
		}
	}
	for _, level := range []int{-1, 4, 99} {
		req := &LevelRequest{Level: level}
		if err := req.Validate(); err == nil {
			t.Errorf("Validate(level=%d) expected error", level)
		}
	}
}

func TestCompressionBand(t *testing.T) {
	tests := []struct {
		level     int
		low, high float64
	}{
		{0, 1.0, 1.0},
		{1, 0.70, 0.80},
		{2, 0.40, 0.50},
		{3, 0.10, 0.20},
	}
	for _, tt := range tests {
		low, high := CompressionBand(tt.level)
		if low != tt.low || high != tt.high {
			t.Errorf("CompressionBand(%d) = (%v, %v), want (%v, %v)", tt.level, low, high, tt.low, tt.high)
		}
	}
}
