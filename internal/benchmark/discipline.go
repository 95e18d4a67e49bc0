package benchmark

// CalculationType selects the estimation strategy for a discipline.
// It is fixed per discipline; no discipline mixes strategies.
type CalculationType string

const (
	// CalcBenchmark multiplies quantity by a rate derived from
	// historical projects, with statistical bounds when enough
	// evidence exists.
	CalcBenchmark CalculationType = "benchmark"

	// CalcPercentage converts a base figure (construction cost or the
	// man-hours of base disciplines) through a percentage rate.
	CalcPercentage CalculationType = "percentage"

	// CalcMatrix reads man-hours from the Digital Delivery industry
	// table keyed by complexity score and design duration.
	CalcMatrix CalculationType = "matrix"
)

// BridgeType narrows the shared bridges dataset to one bridge
// discipline. Empty for non-bridge disciplines.
type BridgeType string

const (
	BridgePCGirder BridgeType = "pc_girder"
	BridgeSteel    BridgeType = "steel"
	BridgeRehab    BridgeType = "rehab"
)

// Discipline ids referenced across the engine.
const (
	DisciplineRoadway         = "roadway"
	DisciplineDrainage        = "drainage"
	DisciplineTraffic         = "traffic"
	DisciplineMOT             = "mot"
	DisciplineLighting        = "lighting"
	DisciplineUtilities       = "utilities"
	DisciplineSurvey          = "survey"
	DisciplineRetainingWalls  = "retaining_walls"
	DisciplineNoiseWalls      = "noise_walls"
	DisciplineBridgePCGirder  = "bridge_pc_girder"
	DisciplineBridgeSteel     = "bridge_steel"
	DisciplineBridgeRehab     = "bridge_rehab"
	DisciplineMiscStructures  = "misc_structures"
	DisciplineESDC            = "esdc"
	DisciplineTSCD            = "tscd"
	DisciplineDigitalDelivery = "digital_delivery"
)

// bridgesDataset is the shared dataset name partitioned across the
// three bridge disciplines at load time.
const bridgesDataset = "bridges"

// DisciplineConfig is the static per-discipline configuration.
type DisciplineConfig struct {
	ID                  string          `json:"id"`
	DisplayName         string          `json:"display_name"`
	Unit                string          `json:"unit"`
	QuantityDescription string          `json:"quantity_description"`
	Calculation         CalculationType `json:"calculation"`
	BridgeType          BridgeType      `json:"bridge_type,omitempty"`
}

// disciplineConfigs is ordered: benchmark disciplines first, then the
// dependent and cost-driven ones. The aggregate builder relies on this
// order for its dependency pass.
var disciplineConfigs = []DisciplineConfig{
	{ID: DisciplineRoadway, DisplayName: "Roadway", Unit: "LF", QuantityDescription: "centerline length", Calculation: CalcBenchmark},
	{ID: DisciplineDrainage, DisplayName: "Drainage", Unit: "AC", QuantityDescription: "drainage area", Calculation: CalcBenchmark},
	{ID: DisciplineTraffic, DisplayName: "Traffic Engineering", Unit: "LF", QuantityDescription: "signed/marked length", Calculation: CalcBenchmark},
	{ID: DisciplineMOT, DisplayName: "Maintenance of Traffic", Unit: "LF", QuantityDescription: "work-zone length", Calculation: CalcBenchmark},
	{ID: DisciplineLighting, DisplayName: "Lighting", Unit: "LF", QuantityDescription: "lit corridor length", Calculation: CalcBenchmark},
	{ID: DisciplineUtilities, DisplayName: "Utility Coordination", Unit: "LF", QuantityDescription: "corridor length", Calculation: CalcBenchmark},
	{ID: DisciplineSurvey, DisplayName: "Survey", Unit: "AC", QuantityDescription: "surveyed area", Calculation: CalcBenchmark},
	{ID: DisciplineRetainingWalls, DisplayName: "Retaining Walls", Unit: "SF", QuantityDescription: "wall face area", Calculation: CalcBenchmark},
	{ID: DisciplineNoiseWalls, DisplayName: "Noise Walls", Unit: "SF", QuantityDescription: "wall face area", Calculation: CalcBenchmark},
	{ID: DisciplineBridgePCGirder, DisplayName: "Bridges - PC Girder", Unit: "SF", QuantityDescription: "deck area", Calculation: CalcBenchmark, BridgeType: BridgePCGirder},
	{ID: DisciplineBridgeSteel, DisplayName: "Bridges - Steel", Unit: "SF", QuantityDescription: "deck area", Calculation: CalcBenchmark, BridgeType: BridgeSteel},
	{ID: DisciplineBridgeRehab, DisplayName: "Bridges - Rehabilitation", Unit: "SF", QuantityDescription: "deck area", Calculation: CalcBenchmark, BridgeType: BridgeRehab},
	{ID: DisciplineDigitalDelivery, DisplayName: "Digital Delivery", Unit: "K$", QuantityDescription: "construction cost ($1000s)", Calculation: CalcMatrix},
	{ID: DisciplineMiscStructures, DisplayName: "Misc Structures", Unit: "MHR", QuantityDescription: "roadway+drainage+traffic man-hours", Calculation: CalcPercentage},
	{ID: DisciplineESDC, DisplayName: "ESDC", Unit: "K$", QuantityDescription: "construction cost ($1000s)", Calculation: CalcPercentage},
	{ID: DisciplineTSCD, DisplayName: "TSCD", Unit: "K$", QuantityDescription: "construction cost ($1000s)", Calculation: CalcPercentage},
}

// Disciplines returns the ordered discipline configuration table.
func Disciplines() []DisciplineConfig {
	out := make([]DisciplineConfig, len(disciplineConfigs))
	copy(out, disciplineConfigs)
	return out
}

// Config returns the configuration for one discipline id.
func Config(id string) (DisciplineConfig, bool) {
	for _, c := range disciplineConfigs {
		if c.ID == id {
			return c, true
		}
	}
	return DisciplineConfig{}, false
}
