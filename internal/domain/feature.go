package domain

// FeatureID identifies a selectable entry in the fixed feature catalog.
type FeatureID string

// Selectable feature ids. Each maps to candidate-specific deltas.
const (
	FeatureAppleWatchBolusing  FeatureID = "apple-watch-bolusing"
	FeatureTubelessDesign      FeatureID = "tubeless-design"
	FeatureTouchscreenControl  FeatureID = "touchscreen-control"
	FeaturePhoneBolusing       FeatureID = "phone-bolusing"
	FeatureNoCarbCounting      FeatureID = "no-carb-counting"
	FeatureAggressiveControl   FeatureID = "aggressive-automation"
	FeatureSmallestSize        FeatureID = "smallest-size"
	FeatureWaterproof          FeatureID = "waterproof-pump"
	FeatureExtendedWear        FeatureID = "extended-wear-sets"
	FeatureMultipleCGMs        FeatureID = "multiple-cgm-options"
	FeatureCaregiverRemoteView FeatureID = "caregiver-remote-view"
	FeatureRemoteUpdates       FeatureID = "remote-software-updates"
)

// Feature is one catalog entry: a user-selectable pump capability tagged
// with per-candidate boost and penalty deltas.
type Feature struct {
	ID        FeatureID               `json:"id"`
	Title     string                  `json:"title"`
	Boosts    map[CandidateID]float64 `json:"boosts"`
	Penalties map[CandidateID]float64 `json:"penalties"` // stored positive, applied negative
}

var featureCatalog = []Feature{
	{
		ID:    FeatureAppleWatchBolusing,
		Title: "Bolus from an Apple Watch",
		Boosts: map[CandidateID]float64{
			CandidateTwiist: 8,
		},
		Penalties: map[CandidateID]float64{
			CandidateMedtronic780G: 2, CandidateILet: 2,
		},
	},
	{
		ID:    FeatureTubelessDesign,
		Title: "Tubeless patch design",
		Boosts: map[CandidateID]float64{
			CandidateOmnipod5: 8,
		},
		Penalties: map[CandidateID]float64{
			CandidateMedtronic780G: 3, CandidateTSlimX2: 3, CandidateILet: 2,
		},
	},
	{
		ID:    FeatureTouchscreenControl,
		Title: "On-pump touchscreen",
		Boosts: map[CandidateID]float64{
			CandidateTSlimX2: 6,
		},
		Penalties: map[CandidateID]float64{
			CandidateMedtronic780G: 2,
		},
	},
	{
		ID:    FeaturePhoneBolusing,
		Title: "Bolus from your phone",
		Boosts: map[CandidateID]float64{
			CandidateTandemMobi: 5, CandidateOmnipod5: 4, CandidateTwiist: 4,
		},
		Penalties: map[CandidateID]float64{
			CandidateILet: 3, CandidateMedtronic780G: 2,
		},
	},
	{
		ID:    FeatureNoCarbCounting,
		Title: "No carb counting required",
		Boosts: map[CandidateID]float64{
			CandidateILet: 7,
		},
		Penalties: map[CandidateID]float64{
			CandidateTwiist: 2, CandidateTSlimX2: 1,
		},
	},
	{
		ID:    FeatureAggressiveControl,
		Title: "Aggressive automated corrections",
		Boosts: map[CandidateID]float64{
			CandidateMedtronic780G: 6, CandidateTSlimX2: 3,
		},
		Penalties: map[CandidateID]float64{
			CandidateILet: 2,
		},
	},
	{
		ID:    FeatureSmallestSize,
		Title: "Smallest possible device",
		Boosts: map[CandidateID]float64{
			CandidateTandemMobi: 7, CandidateTwiist: 3,
		},
		Penalties: map[CandidateID]float64{
			CandidateMedtronic780G: 3,
		},
	},
	{
		ID:    FeatureWaterproof,
		Title: "Swim without disconnecting",
		Boosts: map[CandidateID]float64{
			CandidateMedtronic780G: 5, CandidateOmnipod5: 4,
		},
		Penalties: map[CandidateID]float64{
			CandidateTSlimX2: 3, CandidateTwiist: 2,
		},
	},
	{
		ID:    FeatureExtendedWear,
		Title: "Extended-wear infusion sets",
		Boosts: map[CandidateID]float64{
			CandidateMedtronic780G: 4,
		},
	},
	{
		ID:    FeatureMultipleCGMs,
		Title: "Choice of CGM sensors",
		Boosts: map[CandidateID]float64{
			CandidateTSlimX2: 4, CandidateTwiist: 3,
		},
		Penalties: map[CandidateID]float64{
			CandidateMedtronic780G: 2,
		},
	},
	{
		ID:    FeatureCaregiverRemoteView,
		Title: "Remote viewing for caregivers",
		Boosts: map[CandidateID]float64{
			CandidateOmnipod5: 3, CandidateMedtronic780G: 3, CandidateTSlimX2: 2,
		},
	},
	{
		ID:    FeatureRemoteUpdates,
		Title: "Feature updates without replacing hardware",
		Boosts: map[CandidateID]float64{
			CandidateTSlimX2: 4, CandidateTandemMobi: 3, CandidateTwiist: 3,
		},
		Penalties: map[CandidateID]float64{
			CandidateMedtronic780G: 2,
		},
	},
}

// FeatureCatalog returns the fixed feature catalog in declared order.
// Callers must not mutate the returned slice or its maps.
func FeatureCatalog() []Feature { return featureCatalog }

// FeatureByID returns the catalog entry for id.
func FeatureByID(id FeatureID) (Feature, bool) {
	for _, f := range featureCatalog {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}
