package completion

import (
	"math"

	"github.com/hammamikhairi/fuelquest/internal/domain"
)

// CurveClass is the verdict on a simulated blood-sugar curve.
type CurveClass int

const (
	CurveWarning CurveClass = iota
	CurveGood
	CurveCrash
	CurveDanger
	CurveOverload
)

// String returns a human-readable class name.
func (c CurveClass) String() string {
	switch c {
	case CurveGood:
		return "good"
	case CurveWarning:
		return "warning"
	case CurveCrash:
		return "crash"
	case CurveDanger:
		return "danger"
	case CurveOverload:
		return "overload"
	default:
		return "unknown"
	}
}

// Curve tuning. Energy is plotted on a 0-100 scale where lower values mean
// more energy, so spikes pull the curve down and crashes push it up.
const (
	Baseline = 50.0

	FirstFoodAt = 30.0 // minutes
	FoodSpacing = 30.0 // minutes between consecutive foods
	SampleStep  = 5.0  // minutes
	TailLength  = 180.0

	CrashDelay    = 60.0 // minutes after the last sugar item
	CrashWidth    = 30.0
	CrashPerSugar = 12.0

	OverloadSugarCount = 3
	CrashSugarCount    = 2

	DangerLevel     = 12.0 // minimum below this is a dangerous spike
	CrashLevel      = 70.0 // maximum above this is a crash
	GoodCeiling     = 22.0 // good curves never rise past this
	MinRise         = 8.0  // steady fuel has to lift energy at least this much
	ReturnWindow    = 120.0
	ReturnTolerance = 5.0
)

// Point is one curve sample.
type Point struct {
	Minute float64
	Level  float64
}

type bump struct {
	center float64
	height float64 // positive pulls the curve down
	sigma  float64
}

func (b bump) at(t float64) float64 {
	d := t - b.center
	return b.height * math.Exp(-(d*d)/(2*b.sigma*b.sigma))
}

func foodBump(i int, f domain.FoodItem) bump {
	sigma := f.Duration / 2
	if sigma <= 0 {
		sigma = 1
	}
	return bump{
		center: FirstFoodAt + float64(i)*FoodSpacing,
		height: math.Max(f.Spike, 0),
		sigma:  sigma,
	}
}

// bumps returns the food bumps and, when enough sugar is on the plate, the
// crash bump.
func bumps(foods []domain.FoodItem, onlyNonSugar bool) (food []bump, crash *bump) {
	lastSugar := -1
	sugar := 0
	for i, f := range foods {
		if f.Category == domain.CategorySugar {
			sugar++
			lastSugar = i
			if onlyNonSugar {
				continue
			}
		}
		food = append(food, foodBump(i, f))
	}
	if !onlyNonSugar && sugar >= CrashSugarCount {
		crash = &bump{
			center: FirstFoodAt + float64(lastSugar)*FoodSpacing + CrashDelay,
			height: CrashPerSugar * float64(sugar),
			sigma:  CrashWidth,
		}
	}
	return food, crash
}

func level(t float64, food []bump, crash *bump) float64 {
	v := Baseline
	for _, b := range food {
		v -= b.at(t)
	}
	if crash != nil {
		v += crash.at(t)
	}
	return v
}

// BuildCurve samples the energy curve for the foods in insertion order.
func BuildCurve(foods []domain.FoodItem) []Point {
	food, crash := bumps(foods, false)
	end := FirstFoodAt + float64(len(foods))*FoodSpacing + TailLength
	if crash != nil {
		end = math.Max(end, crash.center+TailLength)
	}

	pts := make([]Point, 0, int(end/SampleStep)+1)
	for t := 0.0; t <= end; t += SampleStep {
		pts = append(pts, Point{Minute: t, Level: level(t, food, crash)})
	}
	return pts
}

// ClassifyCurve grades the foods. The first matching rule wins: overload,
// danger, crash, good, warning. Adding a sugar item can never move the
// result to good, because the rise-and-return test only looks at the
// non-sugar foods and sugar only pushes the curve further from the band.
func ClassifyCurve(foods []domain.FoodItem) CurveClass {
	sugar := domain.CountCategory(foods, domain.CategorySugar)
	if sugar >= OverloadSugarCount {
		return CurveOverload
	}

	lo, hi := extremes(BuildCurve(foods))
	if lo < DangerLevel {
		return CurveDanger
	}
	if hi > CrashLevel {
		return CurveCrash
	}
	if sugar < CrashSugarCount && lo >= GoodCeiling && steadyRise(foods) {
		return CurveGood
	}
	return CurveWarning
}

func extremes(pts []Point) (lo, hi float64) {
	lo, hi = Baseline, Baseline
	for _, p := range pts {
		lo = math.Min(lo, p.Level)
		hi = math.Max(hi, p.Level)
	}
	return lo, hi
}

// steadyRise reports whether the non-sugar foods alone lift energy by a
// meaningful amount and let it settle back near baseline afterwards.
func steadyRise(foods []domain.FoodItem) bool {
	food, _ := bumps(foods, true)
	if len(food) == 0 {
		return false
	}

	last := food[len(food)-1].center
	settle := last + ReturnWindow
	peak := 0.0
	for t := 0.0; t <= settle; t += SampleStep {
		peak = math.Max(peak, Baseline-level(t, food, nil))
	}
	if peak < MinRise {
		return false
	}
	return math.Abs(level(settle, food, nil)-Baseline) <= ReturnTolerance
}
