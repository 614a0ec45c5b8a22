// Package diagnostic maps the five-question entry diagnostic to a program
// route and business stage.
package diagnostic

import (
	"errors"
	"fmt"
	"math"
)

const (
	QuestionCount = 5
	MaxOption     = 3
	MaxScore      = QuestionCount * MaxOption

	// Upper bounds (inclusive) of the lower buckets, in percent.
	IdeaThreshold      = 33.0
	PreIncubaThreshold = 66.0
)

const (
	RoutePre = "pre"
	RouteInc = "inc"

	StageIdea       = "idea"
	StagePreIncuba  = "pre-incubacion"
	StageIncubacion = "incubacion"
)

var ErrInvalidAnswers = errors.New("invalid diagnostic answers")

var routeLabels = map[string]string{
	RoutePre: "Pre-incubadora",
	RouteInc: "Incubadora",
}

var stageLabels = map[string]string{
	StageIdea:       "Idea",
	StagePreIncuba:  "Pre-incubación",
	StageIncubacion: "Incubación",
}

type Result struct {
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	Percentage float64 `json:"percentage"`
	Route      string  `json:"route"`
	RouteLabel string  `json:"route_label"`
	Stage      string  `json:"stage"`
	StageLabel string  `json:"stage_label"`
}

// Score sums the option indices and buckets the percentage of MaxScore.
// A percentage equal to a threshold stays in the lower bucket.
func Score(answers []int) (Result, error) {
	if len(answers) != QuestionCount {
		return Result{}, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidAnswers, QuestionCount, len(answers))
	}
	score := 0
	for i, a := range answers {
		if a < 0 || a > MaxOption {
			return Result{}, fmt.Errorf("%w: answer %d out of range", ErrInvalidAnswers, i+1)
		}
		score += a
	}

	pct := float64(score) / float64(MaxScore) * 100
	route, stage := Classify(pct)
	return Result{
		Score:      score,
		MaxScore:   MaxScore,
		Percentage: math.Round(pct*100) / 100,
		Route:      route,
		RouteLabel: routeLabels[route],
		Stage:      stage,
		StageLabel: stageLabels[stage],
	}, nil
}

// Classify buckets an unrounded percentage.
func Classify(pct float64) (route, stage string) {
	switch {
	case pct <= IdeaThreshold:
		return RoutePre, StageIdea
	case pct <= PreIncubaThreshold:
		return RoutePre, StagePreIncuba
	default:
		return RouteInc, StageIncubacion
	}
}

// RouteLabel returns the display name for a route code.
func RouteLabel(route string) string { return routeLabels[route] }

// StageLabel returns the display name for a stage code.
func StageLabel(stage string) string { return stageLabels[stage] }
