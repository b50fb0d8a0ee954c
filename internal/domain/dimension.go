package domain

// DimensionID identifies one named axis of comparison between candidates.
type DimensionID string

// The fixed dimension matrix axes. Loaded once, shared read-only.
const (
	DimBatteryLife         DimensionID = "battery-life"
	DimPhoneControl        DimensionID = "phone-control"
	DimTubingStyle         DimensionID = "tubing-style"
	DimAutomationAlgorithm DimensionID = "automation-algorithm"
	DimCGMCompatibility    DimensionID = "cgm-compatibility"
	DimTargetAdjustability DimensionID = "target-adjustability"
	DimExerciseMode        DimensionID = "exercise-mode"
	DimBolusWorkflow       DimensionID = "bolus-workflow"
	DimReservoirCapacity   DimensionID = "reservoir-capacity"
	DimAdhesiveTolerance   DimensionID = "adhesive-tolerance"
	DimWaterResistance     DimensionID = "water-resistance"
	DimAlertsCustomization DimensionID = "alerts-customization"
	DimUserInterface       DimensionID = "user-interface"
	DimDataSharing         DimensionID = "data-sharing"
	DimClinicSupport       DimensionID = "clinic-support"
	DimTravelLogistics     DimensionID = "travel-logistics"
	DimCaregiverAccess     DimensionID = "caregiver-access"
	DimDiscretion          DimensionID = "discretion"
	DimCarbCountingBurden  DimensionID = "carb-counting-burden"
	DimDeviceSize          DimensionID = "device-size"
	DimSoftwareUpdates     DimensionID = "software-updates"
	DimWearStyle           DimensionID = "wear-style"
)

// Dimension describes one comparison axis for AI prompt framing and
// citation validation.
type Dimension struct {
	ID          DimensionID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// dimensionCatalog is the fixed, ordered set of comparison axes.
var dimensionCatalog = []Dimension{
	{DimBatteryLife, "Battery life", "Power model: rechargeable, replaceable AA, or disposable pod battery"},
	{DimPhoneControl, "Phone control", "Whether dosing and settings can be driven from a phone app"},
	{DimTubingStyle, "Tubing style", "Tubed infusion set versus tubeless patch wear"},
	{DimAutomationAlgorithm, "Automation algorithm", "How aggressively the closed loop corrects highs and prevents lows"},
	{DimCGMCompatibility, "CGM compatibility", "Which continuous glucose monitors the pump pairs with"},
	{DimTargetAdjustability, "Target adjustability", "How far glucose targets can be customized"},
	{DimExerciseMode, "Exercise mode", "Temporary targets and basal behavior around activity"},
	{DimBolusWorkflow, "Bolus workflow", "Steps required to deliver a meal or correction bolus"},
	{DimReservoirCapacity, "Reservoir capacity", "Insulin capacity and days of wear per fill"},
	{DimAdhesiveTolerance, "Adhesive tolerance", "Skin contact surface and adhesive footprint"},
	{DimWaterResistance, "Water resistance", "Submersion rating and swim suitability"},
	{DimAlertsCustomization, "Alerts customization", "Granularity of alarm thresholds and quiet modes"},
	{DimUserInterface, "User interface", "On-device controls: touchscreen, buttons, or app-only"},
	{DimDataSharing, "Data sharing", "Cloud upload and remote viewing for clinic and family"},
	{DimClinicSupport, "Clinic support", "Prescriber familiarity and onboarding support"},
	{DimTravelLogistics, "Travel logistics", "Supplies, spares, and airport handling on trips"},
	{DimCaregiverAccess, "Caregiver access", "Remote monitoring and bolus oversight for caregivers"},
	{DimDiscretion, "Discretion", "How visible the device is under clothing and in public"},
	{DimCarbCountingBurden, "Carb counting burden", "Whether meal announcements need precise carb counts"},
	{DimDeviceSize, "Device size", "Physical footprint worn on the body"},
	{DimSoftwareUpdates, "Software updates", "Feature delivery via field software updates"},
	{DimWearStyle, "Wear style", "Clip, patch, or pocket wear options"},
}

// DimensionCatalog returns the fixed dimension matrix axes in declared order.
// Callers must not mutate the returned slice.
func DimensionCatalog() []Dimension { return dimensionCatalog }

// KnownDimension reports whether id is part of the dimension catalog.
func KnownDimension(id DimensionID) bool {
	for _, d := range dimensionCatalog {
		if d.ID == id {
			return true
		}
	}
	return false
}
