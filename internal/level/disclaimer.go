package level

// PlacementDisclaimer accompanies every placement result verbatim.
const PlacementDisclaimer = "This placement is for training purposes only and indicates a suggested starting point " +
	"within NeuroBreath's lesson library. It is NOT a diagnostic assessment and should not be compared to standardized " +
	"grade levels, reading ages, or national percentiles. For formal evaluation of reading difficulties, please consult " +
	"a qualified educational professional."

// ShortPlacementDisclaimer is the compact form for space-limited output.
const ShortPlacementDisclaimer = "Training placement only. Not a diagnosis or grade-level equivalence."
