// Package domain defines the reference data and request-scoped types for the
// pump recommendation engine: the fixed candidate catalog with its dimension
// matrix, the user profile, the per-request score ledger, and the assembled
// recommendation result.
//
// Reference data (candidates, dimensions, features) is loaded once at process
// start and shared read-only across requests. Request-scoped state (profile,
// score ledger, result) is created fresh per request and never shared.
package domain

// CandidateID identifies one of the fixed set of recommendable pumps.
type CandidateID string

// The fixed candidate set. Exactly six devices; immutable reference data.
const (
	CandidateMedtronic780G CandidateID = "medtronic-780g"
	CandidateTSlimX2       CandidateID = "tslim-x2"
	CandidateTandemMobi    CandidateID = "tandem-mobi"
	CandidateOmnipod5      CandidateID = "omnipod-5"
	CandidateILet          CandidateID = "beta-bionics-ilet"
	CandidateTwiist        CandidateID = "twiist"
)

// DefaultCandidate is returned by the deterministic fallback when no rule
// matches and seeds tie-breaking order in aggregation.
const DefaultCandidate = CandidateOmnipod5

// Strength is a qualitative rating of a candidate along one dimension.
type Strength string

// Qualitative strength ratings used throughout the dimension matrix.
const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Candidate is one recommendable pump with its dimension matrix row.
// Immutable after process start; callers must not mutate Strengths.
type Candidate struct {
	ID        CandidateID              `json:"id"`
	Name      string                   `json:"name"`
	Summary   string                   `json:"summary"` // one-line framing for AI prompts
	Strengths map[DimensionID]Strength `json:"strengths"`
}

var candidateCatalog = []Candidate{
	{
		ID:      CandidateMedtronic780G,
		Name:    "Medtronic MiniMed 780G",
		Summary: "Aggressive automation with auto-corrections every 5 minutes, submersible, AA battery, tubed",
		Strengths: map[DimensionID]Strength{
			DimBatteryLife: StrengthStrong, DimPhoneControl: StrengthWeak,
			DimTubingStyle: StrengthWeak, DimAutomationAlgorithm: StrengthStrong,
			DimCGMCompatibility: StrengthWeak, DimTargetAdjustability: StrengthModerate,
			DimExerciseMode: StrengthModerate, DimBolusWorkflow: StrengthModerate,
			DimReservoirCapacity: StrengthStrong, DimAdhesiveTolerance: StrengthStrong,
			DimWaterResistance: StrengthStrong, DimAlertsCustomization: StrengthModerate,
			DimUserInterface: StrengthWeak, DimDataSharing: StrengthStrong,
			DimClinicSupport: StrengthStrong, DimTravelLogistics: StrengthStrong,
			DimCaregiverAccess: StrengthStrong, DimDiscretion: StrengthWeak,
			DimCarbCountingBurden: StrengthModerate, DimDeviceSize: StrengthWeak,
			DimSoftwareUpdates: StrengthWeak, DimWearStyle: StrengthWeak,
		},
	},
	{
		ID:      CandidateTSlimX2,
		Name:    "Tandem t:slim X2",
		Summary: "Touchscreen pump with Control-IQ, multiple CGM options, remote software updates, tubed",
		Strengths: map[DimensionID]Strength{
			DimBatteryLife: StrengthModerate, DimPhoneControl: StrengthModerate,
			DimTubingStyle: StrengthWeak, DimAutomationAlgorithm: StrengthStrong,
			DimCGMCompatibility: StrengthStrong, DimTargetAdjustability: StrengthStrong,
			DimExerciseMode: StrengthStrong, DimBolusWorkflow: StrengthStrong,
			DimReservoirCapacity: StrengthStrong, DimAdhesiveTolerance: StrengthStrong,
			DimWaterResistance: StrengthWeak, DimAlertsCustomization: StrengthStrong,
			DimUserInterface: StrengthStrong, DimDataSharing: StrengthStrong,
			DimClinicSupport: StrengthStrong, DimTravelLogistics: StrengthModerate,
			DimCaregiverAccess: StrengthModerate, DimDiscretion: StrengthModerate,
			DimCarbCountingBurden: StrengthModerate, DimDeviceSize: StrengthModerate,
			DimSoftwareUpdates: StrengthStrong, DimWearStyle: StrengthModerate,
		},
	},
	{
		ID:      CandidateTandemMobi,
		Name:    "Tandem Mobi",
		Summary: "Smallest pump on the market, fully phone-controlled, short tubing, very discreet",
		Strengths: map[DimensionID]Strength{
			DimBatteryLife: StrengthModerate, DimPhoneControl: StrengthStrong,
			DimTubingStyle: StrengthModerate, DimAutomationAlgorithm: StrengthStrong,
			DimCGMCompatibility: StrengthModerate, DimTargetAdjustability: StrengthStrong,
			DimExerciseMode: StrengthStrong, DimBolusWorkflow: StrengthStrong,
			DimReservoirCapacity: StrengthWeak, DimAdhesiveTolerance: StrengthModerate,
			DimWaterResistance: StrengthStrong, DimAlertsCustomization: StrengthStrong,
			DimUserInterface: StrengthModerate, DimDataSharing: StrengthStrong,
			DimClinicSupport: StrengthModerate, DimTravelLogistics: StrengthModerate,
			DimCaregiverAccess: StrengthModerate, DimDiscretion: StrengthStrong,
			DimCarbCountingBurden: StrengthModerate, DimDeviceSize: StrengthStrong,
			DimSoftwareUpdates: StrengthStrong, DimWearStyle: StrengthStrong,
		},
	},
	{
		ID:      CandidateOmnipod5,
		Name:    "Omnipod 5",
		Summary: "Tubeless patch pump, waterproof pod, phone or controller driven, no disconnecting",
		Strengths: map[DimensionID]Strength{
			DimBatteryLife: StrengthStrong, DimPhoneControl: StrengthStrong,
			DimTubingStyle: StrengthStrong, DimAutomationAlgorithm: StrengthModerate,
			DimCGMCompatibility: StrengthModerate, DimTargetAdjustability: StrengthModerate,
			DimExerciseMode: StrengthStrong, DimBolusWorkflow: StrengthModerate,
			DimReservoirCapacity: StrengthModerate, DimAdhesiveTolerance: StrengthWeak,
			DimWaterResistance: StrengthStrong, DimAlertsCustomization: StrengthModerate,
			DimUserInterface: StrengthModerate, DimDataSharing: StrengthStrong,
			DimClinicSupport: StrengthStrong, DimTravelLogistics: StrengthStrong,
			DimCaregiverAccess: StrengthStrong, DimDiscretion: StrengthStrong,
			DimCarbCountingBurden: StrengthModerate, DimDeviceSize: StrengthModerate,
			DimSoftwareUpdates: StrengthModerate, DimWearStyle: StrengthStrong,
		},
	},
	{
		ID:      CandidateILet,
		Name:    "Beta Bionics iLet",
		Summary: "Hands-off bionic pancreas, meal announcements instead of carb counting, minimal settings",
		Strengths: map[DimensionID]Strength{
			DimBatteryLife: StrengthModerate, DimPhoneControl: StrengthWeak,
			DimTubingStyle: StrengthWeak, DimAutomationAlgorithm: StrengthStrong,
			DimCGMCompatibility: StrengthModerate, DimTargetAdjustability: StrengthWeak,
			DimExerciseMode: StrengthWeak, DimBolusWorkflow: StrengthStrong,
			DimReservoirCapacity: StrengthModerate, DimAdhesiveTolerance: StrengthModerate,
			DimWaterResistance: StrengthModerate, DimAlertsCustomization: StrengthWeak,
			DimUserInterface: StrengthModerate, DimDataSharing: StrengthModerate,
			DimClinicSupport: StrengthModerate, DimTravelLogistics: StrengthModerate,
			DimCaregiverAccess: StrengthModerate, DimDiscretion: StrengthModerate,
			DimCarbCountingBurden: StrengthStrong, DimDeviceSize: StrengthModerate,
			DimSoftwareUpdates: StrengthModerate, DimWearStyle: StrengthModerate,
		},
	},
	{
		ID:      CandidateTwiist,
		Name:    "Twiist",
		Summary: "Lightest pump, Apple Watch bolusing, emoji-based dosing, modern app-first design",
		Strengths: map[DimensionID]Strength{
			DimBatteryLife: StrengthModerate, DimPhoneControl: StrengthStrong,
			DimTubingStyle: StrengthModerate, DimAutomationAlgorithm: StrengthModerate,
			DimCGMCompatibility: StrengthStrong, DimTargetAdjustability: StrengthStrong,
			DimExerciseMode: StrengthModerate, DimBolusWorkflow: StrengthStrong,
			DimReservoirCapacity: StrengthModerate, DimAdhesiveTolerance: StrengthModerate,
			DimWaterResistance: StrengthWeak, DimAlertsCustomization: StrengthStrong,
			DimUserInterface: StrengthStrong, DimDataSharing: StrengthStrong,
			DimClinicSupport: StrengthWeak, DimTravelLogistics: StrengthModerate,
			DimCaregiverAccess: StrengthModerate, DimDiscretion: StrengthStrong,
			DimCarbCountingBurden: StrengthWeak, DimDeviceSize: StrengthStrong,
			DimSoftwareUpdates: StrengthStrong, DimWearStyle: StrengthStrong,
		},
	},
}

// Candidates returns the fixed candidate catalog in declared order.
// Callers must not mutate the returned slice or its maps.
func Candidates() []Candidate { return candidateCatalog }

// CandidateIDs returns the candidate ids in catalog order.
func CandidateIDs() []CandidateID {
	ids := make([]CandidateID, len(candidateCatalog))
	for i, c := range candidateCatalog {
		ids[i] = c.ID
	}
	return ids
}

// CandidateByID returns the catalog entry for id.
func CandidateByID(id CandidateID) (Candidate, bool) {
	for _, c := range candidateCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}

// CandidateName returns the display name for id, or the raw id when unknown.
func CandidateName(id CandidateID) string {
	if c, ok := CandidateByID(id); ok {
		return c.Name
	}
	return string(id)
}
