package entity

import "testing"

func TestExpressionsDominant(t *testing.T) {
	tests := []struct {
		name      string
		expr      Expressions
		wantLabel string
		wantScore float64
	}{
		{
			name:      "clear winner",
			expr:      Expressions{"happy": 0.9, "neutral": 0.05, "sad": 0.05},
			wantLabel: "happy",
			wantScore: 0.9,
		},
		{
			name:      "single entry",
			expr:      Expressions{"surprised": 0.4},
			wantLabel: "surprised",
			wantScore: 0.4,
		},
		{
			name:      "single entry with zero confidence",
			expr:      Expressions{"neutral": 0},
			wantLabel: "neutral",
			wantScore: 0,
		},
		{
			name:      "empty map",
			expr:      Expressions{},
			wantLabel: "",
			wantScore: 0,
		},
		{
			name:      "nil map",
			expr:      nil,
			wantLabel: "",
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, score := tt.expr.Dominant()
			if label != tt.wantLabel || score != tt.wantScore {
				t.Errorf("Dominant() = (%q, %v), want (%q, %v)", label, score, tt.wantLabel, tt.wantScore)
			}
		})
	}
}

func TestExpressionsDominantAllZero(t *testing.T) {
	expr := Expressions{"neutral": 0, "sad": 0, "angry": 0}

	label, score := expr.Dominant()
	if label == "" {
		t.Error("Dominant() over a non-empty map must pick an entry even when every score is zero")
	}
	if score != 0 {
		t.Errorf("Dominant() score = %v, want 0", score)
	}
}

func TestNoFace(t *testing.T) {
	frame := Surface{Width: 640, Height: 480}
	result := NoFace(frame)

	if result.FaceFound {
		t.Error("NoFace() must not report a face")
	}
	if result.Box != nil || result.Expressions != nil {
		t.Error("NoFace() must carry no box or expressions")
	}
	if result.Frame != frame {
		t.Errorf("NoFace() frame = %+v, want %+v", result.Frame, frame)
	}
}
