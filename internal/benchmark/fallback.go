package benchmark

import "sync"

// fallbackDatasets are the bundled literal tables used before the
// dynamic load completes or when a source omits a discipline. Rates are
// persisted next to the raw fields, same as source data.
var fallbackDatasets = []Dataset{
	{
		Name: DisciplineRoadway,
		Projects: []*HistoricalProject{
			{ID: "rdwy-001", Name: "SR-826 Corridor Widening", Quantity: 42000, ManHours: 10164, Rate: 0.242, Unit: "LF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "rdwy-002", Name: "US-301 Reconstruction", Quantity: 18500, ManHours: 9305.5, Rate: 0.503, Unit: "LF", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
			{ID: "rdwy-003", Name: "CR-210 Resurfacing", Quantity: 61000, ManHours: 9943, Rate: 0.163, Unit: "LF", ProjectType: "highway", Complexity: "low", Location: "St. Johns, FL"},
			{ID: "rdwy-004", Name: "I-4 Managed Lanes Segment 2", Quantity: 12800, ManHours: 9062.4, Rate: 0.708, Unit: "LF", ProjectType: "highway", Complexity: "high", Location: "Orlando, FL"},
		},
	},
	{
		Name: DisciplineDrainage,
		Projects: []*HistoricalProject{
			{ID: "drng-001", Name: "SR-826 Corridor Widening", Quantity: 140, ManHours: 3640, Rate: 26, Unit: "AC", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "drng-002", Name: "US-301 Reconstruction", Quantity: 85, ManHours: 3145, Rate: 37, Unit: "AC", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
			{ID: "drng-003", Name: "Turnpike Mainline Ponds", Quantity: 220, ManHours: 4180, Rate: 19, Unit: "AC", ProjectType: "highway", Complexity: "low", Location: "Osceola, FL"},
			{ID: "drng-004", Name: "CR-484 Drainage Retrofit", Quantity: 60, ManHours: 1920, Rate: 32, Unit: "AC", ProjectType: "utility", Complexity: "medium", Location: "Marion, FL"},
		},
	},
	{
		Name: DisciplineTraffic,
		Projects: []*HistoricalProject{
			{ID: "traf-001", Name: "SR-826 Corridor Widening", Quantity: 42000, ManHours: 3360, Rate: 0.08, Unit: "LF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "traf-002", Name: "US-301 Reconstruction", Quantity: 18500, ManHours: 2220, Rate: 0.12, Unit: "LF", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
			{ID: "traf-003", Name: "CR-210 Resurfacing", Quantity: 61000, ManHours: 3050, Rate: 0.05, Unit: "LF", ProjectType: "highway", Complexity: "low", Location: "St. Johns, FL"},
			{ID: "traf-004", Name: "Downtown Transit Signal Priority", Quantity: 9600, ManHours: 1344, Rate: 0.14, Unit: "LF", ProjectType: "transit", Complexity: "high", Location: "Jacksonville, FL"},
		},
	},
	{
		Name: DisciplineMOT,
		Projects: []*HistoricalProject{
			{ID: "mot-001", Name: "SR-826 Corridor Widening", Quantity: 42000, ManHours: 2520, Rate: 0.06, Unit: "LF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "mot-002", Name: "US-301 Reconstruction", Quantity: 18500, ManHours: 1665, Rate: 0.09, Unit: "LF", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
			{ID: "mot-003", Name: "CR-210 Resurfacing", Quantity: 61000, ManHours: 2440, Rate: 0.04, Unit: "LF", ProjectType: "highway", Complexity: "low", Location: "St. Johns, FL"},
		},
	},
	{
		Name: DisciplineLighting,
		Projects: []*HistoricalProject{
			{ID: "ltg-001", Name: "I-4 Managed Lanes Segment 2", Quantity: 12800, ManHours: 768, Rate: 0.06, Unit: "LF", ProjectType: "highway", Complexity: "high", Location: "Orlando, FL"},
			{ID: "ltg-002", Name: "SR-826 Corridor Widening", Quantity: 42000, ManHours: 1260, Rate: 0.03, Unit: "LF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "ltg-003", Name: "US-17 Corridor Lighting", Quantity: 26400, ManHours: 1056, Rate: 0.04, Unit: "LF", ProjectType: "highway", Complexity: "low", Location: "Punta Gorda, FL"},
		},
	},
	{
		Name: DisciplineUtilities,
		Projects: []*HistoricalProject{
			{ID: "util-001", Name: "US-301 Reconstruction", Quantity: 18500, ManHours: 1480, Rate: 0.08, Unit: "LF", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
			{ID: "util-002", Name: "SR-826 Corridor Widening", Quantity: 42000, ManHours: 2100, Rate: 0.05, Unit: "LF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "util-003", Name: "CR-484 Utility Relocation", Quantity: 14200, ManHours: 1420, Rate: 0.1, Unit: "LF", ProjectType: "utility", Complexity: "medium", Location: "Marion, FL"},
		},
	},
	{
		Name: DisciplineSurvey,
		Projects: []*HistoricalProject{
			{ID: "srvy-001", Name: "SR-826 Corridor Widening", Quantity: 140, ManHours: 700, Rate: 5, Unit: "AC", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "srvy-002", Name: "Turnpike Mainline Ponds", Quantity: 220, ManHours: 660, Rate: 3, Unit: "AC", ProjectType: "highway", Complexity: "low", Location: "Osceola, FL"},
			{ID: "srvy-003", Name: "US-301 Reconstruction", Quantity: 85, ManHours: 680, Rate: 8, Unit: "AC", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
		},
	},
	{
		Name: DisciplineRetainingWalls,
		Projects: []*HistoricalProject{
			{ID: "rwall-001", Name: "I-4 Managed Lanes Segment 2", Quantity: 48000, ManHours: 16800, Rate: 0.35, Unit: "SF", ProjectType: "highway", Complexity: "high", Location: "Orlando, FL"},
			{ID: "rwall-002", Name: "SR-836 Ramp Walls", Quantity: 21500, ManHours: 5375, Rate: 0.25, Unit: "SF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "rwall-003", Name: "US-92 Grade Separation", Quantity: 9800, ManHours: 4410, Rate: 0.45, Unit: "SF", ProjectType: "highway", Complexity: "high", Location: "Daytona Beach, FL"},
		},
	},
	{
		Name: DisciplineNoiseWalls,
		Projects: []*HistoricalProject{
			{ID: "nwall-001", Name: "I-4 Managed Lanes Segment 2", Quantity: 96000, ManHours: 11520, Rate: 0.12, Unit: "SF", ProjectType: "highway", Complexity: "medium", Location: "Orlando, FL"},
			{ID: "nwall-002", Name: "I-275 Noise Abatement", Quantity: 64000, ManHours: 11520, Rate: 0.18, Unit: "SF", ProjectType: "highway", Complexity: "medium", Location: "St. Petersburg, FL"},
		},
	},
	{
		Name: bridgesDataset,
		Projects: []*HistoricalProject{
			{ID: "brdg-001", Name: "SR-836 Mainline Bridge", Quantity: 58000, ManHours: 87000, Rate: 1.5, Unit: "SF", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL", Notes: "Six-span PC girder over canal"},
			{ID: "brdg-002", Name: "St. Johns River Crossing", Quantity: 112000, ManHours: 313600, Rate: 2.8, Unit: "SF", ProjectType: "highway", Complexity: "high", Location: "Jacksonville, FL", Notes: "Steel plate girder main spans"},
			{ID: "brdg-003", Name: "US-41 Bridge Replacement", Quantity: 24000, ManHours: 43200, Rate: 1.8, Unit: "SF", ProjectType: "highway", Complexity: "medium", Location: "Fort Myers, FL", Notes: "PC girder replacement, phased construction"},
			{ID: "brdg-004", Name: "SR-60 Overpass Rehabilitation", Quantity: 18500, ManHours: 40700, Rate: 2.2, Unit: "SF", ProjectType: "highway", Complexity: "medium", Location: "Brandon, FL", Notes: "Deck rehab and widening"},
			{ID: "brdg-005", Name: "CSX Flyover", Quantity: 41000, ManHours: 131200, Rate: 3.2, Unit: "SF", ProjectType: "transit", Complexity: "high", Location: "Winter Haven, FL", Notes: "Curved steel box girder over rail"},
			{ID: "brdg-006", Name: "Matanzas Inlet Bridge Repairs", Quantity: 15200, ManHours: 28880, Rate: 1.9, Unit: "SF", ProjectType: "highway", Complexity: "low", Location: "St. Augustine, FL", Notes: "Substructure rehab, corrosion mitigation"},
		},
	},
	{
		Name: DisciplineMiscStructures,
		Projects: []*HistoricalProject{
			{ID: "misc-001", Name: "SR-826 Corridor Widening", Quantity: 17164, ManHours: 858.2, Rate: 0.05, Unit: "MHR", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "misc-002", Name: "US-301 Reconstruction", Quantity: 14670.5, ManHours: 1026.9, Rate: 0.07, Unit: "MHR", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
			{ID: "misc-003", Name: "CR-210 Resurfacing", Quantity: 15433, ManHours: 617.3, Rate: 0.04, Unit: "MHR", ProjectType: "highway", Complexity: "low", Location: "St. Johns, FL"},
		},
	},
	{
		Name: DisciplineESDC,
		Projects: []*HistoricalProject{
			{ID: "esdc-001", Name: "SR-826 Corridor Widening", Quantity: 148000, Rate: 0.012, Unit: "K$", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "esdc-002", Name: "I-4 Managed Lanes Segment 2", Quantity: 412000, Rate: 0.01, Unit: "K$", ProjectType: "highway", Complexity: "high", Location: "Orlando, FL"},
			{ID: "esdc-003", Name: "US-301 Reconstruction", Quantity: 96000, Rate: 0.014, Unit: "K$", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
		},
	},
	{
		Name: DisciplineTSCD,
		Projects: []*HistoricalProject{
			{ID: "tscd-001", Name: "SR-826 Corridor Widening", Quantity: 148000, Rate: 0.008, Unit: "K$", ProjectType: "highway", Complexity: "medium", Location: "Miami, FL"},
			{ID: "tscd-002", Name: "I-4 Managed Lanes Segment 2", Quantity: 412000, Rate: 0.006, Unit: "K$", ProjectType: "highway", Complexity: "high", Location: "Orlando, FL"},
			{ID: "tscd-003", Name: "US-301 Reconstruction", Quantity: 96000, Rate: 0.01, Unit: "K$", ProjectType: "highway", Complexity: "high", Location: "Tampa, FL"},
		},
	},
}

var (
	fallbackOnce sync.Once
	fallbackByID map[string]*Bundle
)

// fallbackBundle returns a session-local copy of the bundled table for
// one discipline, or nil when no fallback exists (e.g. matrix
// disciplines carry no historical projects).
func fallbackBundle(disciplineID string) *Bundle {
	fallbackOnce.Do(func() {
		fallbackByID = buildBundles(fallbackDatasets)
		for _, b := range fallbackByID {
			b.SourceName = "bundled"
		}
	})
	tmpl, ok := fallbackByID[disciplineID]
	if !ok {
		return nil
	}
	return copyBundle(tmpl)
}

// copyBundle deep-copies a bundle so that session-local mutations
// (applicable toggles, custom rates) never write through to the shared
// fallback template.
func copyBundle(b *Bundle) *Bundle {
	out := &Bundle{
		DisciplineID: b.DisciplineID,
		DefaultRate:  b.DefaultRate,
		SourceName:   b.SourceName,
		Projects:     make([]*HistoricalProject, len(b.Projects)),
	}
	if b.CustomRate != nil {
		cr := *b.CustomRate
		out.CustomRate = &cr
	}
	for i, p := range b.Projects {
		cp := *p
		if p.Applicable != nil {
			a := *p.Applicable
			cp.Applicable = &a
		}
		out.Projects[i] = &cp
	}
	return out
}
