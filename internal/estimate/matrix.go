package estimate

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
)

// MatrixInput carries the Digital Delivery lookup inputs.
type MatrixInput struct {
	ProjectCostK   float64 `json:"project_cost_k"`
	DurationMonths int     `json:"duration_months"`
	Complexity     string  `json:"complexity_group"`
}

// ComplexityGroups lists the supported Digital Delivery complexity
// group names.
func ComplexityGroups() []string {
	return []string{"Very Low", "Low", "Med", "High", "Very High"}
}

// sizeTiers maps construction cost ($1000s) to a base size score. The
// scores mirror a nonlinear industry scale, not a 1..6 sequence.
var sizeTiers = []struct {
	maxCostK float64
	score    int
}{
	{100_000, 1},   // < $100M
	{200_000, 2},   // $100M - $200M
	{400_000, 3},   // $200M - $400M
	{700_000, 6},   // $400M - $700M
	{1_000_000, 10}, // $700M - $1B
}

const maxSizeScore = 12 // > $1B

func sizeScore(costK float64) int {
	for _, t := range sizeTiers {
		if costK < t.maxCostK {
			return t.score
		}
	}
	return maxSizeScore
}

// complexityTable amplifies the size score into the final complexity
// score, keyed by group then size score. A second lookup, not a
// percentage multiplier.
var complexityTable = map[string]map[int]int{
	"Very Low":  {1: 1, 2: 1, 3: 2, 6: 4, 10: 8, 12: 8},
	"Low":       {1: 1, 2: 2, 3: 4, 6: 8, 10: 12, 12: 16},
	"Med":       {1: 2, 2: 4, 3: 12, 6: 16, 10: 20, 12: 24},
	"High":      {1: 4, 2: 8, 3: 16, 6: 24, 10: 32, 12: 40},
	"Very High": {1: 8, 2: 16, 3: 24, 6: 32, 10: 40, 12: 48},
}

// matrixDurations is the ordered duration axis (months). A requested
// duration not on the axis resolves to the nearest value at or above,
// or the maximum when nothing is.
var matrixDurations = []int{6, 8, 10, 12, 14, 16, 18, 20, 22, 24}

// matrixKeys is the sparse complexity-score axis, ascending.
var matrixKeys = []int{1, 2, 4, 8, 16, 24}

// matrixManHours holds the Digital Delivery man-hour table: one row
// per sparse complexity key, one column per duration.
var matrixManHours = map[int][]int{
	1:  {160, 180, 200, 220, 240, 260, 280, 300, 320, 340},
	2:  {240, 270, 300, 330, 360, 390, 420, 450, 480, 510},
	4:  {360, 400, 450, 500, 550, 600, 650, 700, 750, 800},
	8:  {540, 600, 680, 760, 840, 920, 1000, 1080, 1160, 1240},
	16: {800, 900, 1020, 1140, 1260, 1380, 1500, 1620, 1740, 1860},
	24: {1100, 1240, 1400, 1560, 1720, 1880, 2040, 2200, 2360, 2520},
}

// floorKey returns the greatest key <= target from an ascending key
// list, or the smallest key when target sits below the axis. Never
// interpolates, never exceeds the target once on the axis.
func floorKey(keys []int, target int) int {
	idx := sort.SearchInts(keys, target+1) - 1
	if idx < 0 {
		return keys[0]
	}
	return keys[idx]
}

// durationIndex resolves the column for a requested duration: exact
// match, else nearest at or above, else the maximum column.
func durationIndex(months int) int {
	for i, d := range matrixDurations {
		if d >= months {
			return i
		}
	}
	return len(matrixDurations) - 1
}

// EstimateMatrix runs the Digital Delivery lookup. The output is a
// deterministic industry-table figure with no probabilistic bounds.
// An unrecognized complexity group is a caller error, not a sentinel
// state.
func (e *Engine) EstimateMatrix(in MatrixInput) (Result, error) {
	row, ok := complexityTable[in.Complexity]
	if !ok {
		return Result{}, eris.Errorf("estimate: unknown complexity group %q", in.Complexity)
	}

	if in.ProjectCostK <= 0 {
		est := &DisciplineEstimate{DisciplineID: benchmark.DisciplineDigitalDelivery}
		return okResult(est), nil
	}

	size := sizeScore(in.ProjectCostK)
	score := row[size]
	key := floorKey(matrixKeys, score)
	col := durationIndex(in.DurationMonths)
	mh := matrixManHours[key][col]

	zap.L().Debug("matrix estimate",
		zap.Float64("cost_k", in.ProjectCostK),
		zap.Int("size_score", size),
		zap.Int("complexity_score", score),
		zap.Int("matrix_key", key),
		zap.Int("duration", matrixDurations[col]),
		zap.Int("man_hours", mh),
	)

	return okResult(&DisciplineEstimate{
		DisciplineID: benchmark.DisciplineDigitalDelivery,
		Quantity:     in.ProjectCostK,
		Rate:         float64(mh) / in.ProjectCostK,
		ManHours:     mh,
		LowerBound:   mh,
		UpperBound:   mh,
	}), nil
}
