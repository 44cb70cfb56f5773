package expressionService

import (
	"ProjectMimic/internal/api/expression"
	"ProjectMimic/internal/entity"
	"fmt"
	"math"
)

const labelBaselineInset = 10

// BuildPlan turns one detection result into draw instructions. The
// surface is always cleared; on "no face" nothing else is drawn. The box
// is mapped from detector-space to display-space, and the dominant
// expression is rendered as "<label>: <percent>%" centered horizontally.
func BuildPlan(result *entity.DetectionResult, display entity.Surface) *expression.FramePlan {
	plan := &expression.FramePlan{
		Status: expression.StatusOK,
		Clear:  true,
	}

	if result == nil || !result.FaceFound || result.Box == nil {
		return plan
	}

	sx, sy := scaleFactors(result.Frame, display)
	plan.Box = &expression.BoxPlan{
		X:      result.Box.X * sx,
		Y:      result.Box.Y * sy,
		Width:  result.Box.Width * sx,
		Height: result.Box.Height * sy,
	}

	label, score := result.Expressions.Dominant()
	if label == "" {
		return plan
	}

	plan.Label = &expression.LabelPlan{
		Text: fmt.Sprintf("%s: %d%%", label, int(math.Round(score*100))),
		X:    display.Width / 2,
		Y:    display.Height - labelBaselineInset,
	}

	return plan
}

func scaleFactors(frame, display entity.Surface) (float64, float64) {
	sx, sy := 1.0, 1.0
	if frame.Width > 0 && display.Width > 0 {
		sx = display.Width / frame.Width
	}
	if frame.Height > 0 && display.Height > 0 {
		sy = display.Height / frame.Height
	}
	return sx, sy
}
