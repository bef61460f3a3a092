package domain

import "strings"

// PubType is a categorical study-design label assigned per article.
type PubType string

const (
	TypeCaseReport            PubType = "Case Report"
	TypeCaseSeries            PubType = "Case Series"
	TypeRetrospectiveControl  PubType = "Retrospective Case Control"
	TypeRetrospectiveCohort   PubType = "Retrospective Cohort"
	TypeCrossSectional        PubType = "Cross-sectional Study"
	TypeProspectiveCohort     PubType = "Prospective Cohort"
	TypeProspectiveStudy      PubType = "Prospective Study"
	TypeRandomizedTrial       PubType = "Randomized Clinical Trial"
	TypeNonRandomizedTrial    PubType = "Non-randomized Trial"
	TypeSystematicReview      PubType = "Systematic Review"
	TypeMetaAnalysis          PubType = "Meta-Analysis"
	TypeNarrativeReview       PubType = "Narrative Review"
	TypePracticeGuideline     PubType = "Clinical Practice Guideline"
	TypeTechnicalNote         PubType = "Technical Note"
	TypeBiomechanicalStudy    PubType = "Biomechanical Study"
	TypeCadavericStudy        PubType = "Cadaveric Study"
	TypeAnimalStudy           PubType = "Animal Study"
	TypeBasicScience          PubType = "Basic Science Research"
	TypeQualityImprovement    PubType = "Quality Improvement"
	TypeCostEffectiveness     PubType = "Cost-effectiveness Analysis"
	TypeOther                 PubType = "Other"
)

// pubTypes lists every label in classification order. ParsePubType matches
// against this list first-wins, so more specific labels must precede the
// generic ones they contain (e.g. "Prospective Cohort" before
// "Prospective Study").
var pubTypes = []PubType{
	TypeCaseReport,
	TypeCaseSeries,
	TypeRetrospectiveControl,
	TypeRetrospectiveCohort,
	TypeCrossSectional,
	TypeProspectiveCohort,
	TypeProspectiveStudy,
	TypeRandomizedTrial,
	TypeNonRandomizedTrial,
	TypeSystematicReview,
	TypeMetaAnalysis,
	TypeNarrativeReview,
	TypePracticeGuideline,
	TypeTechnicalNote,
	TypeBiomechanicalStudy,
	TypeCadavericStudy,
	TypeAnimalStudy,
	TypeBasicScience,
	TypeQualityImprovement,
	TypeCostEffectiveness,
	TypeOther,
}

// pubTypeColors maps each label to the badge color used in the digest.
var pubTypeColors = map[PubType]string{
	TypeCaseReport:           "#98fb98", // Pale Green
	TypeCaseSeries:           "#8fbc8f", // Dark Sea Green
	TypeRetrospectiveControl: "#b0c4de", // Light Steel Blue
	TypeRetrospectiveCohort:  "#87cefa", // Light Sky Blue
	TypeCrossSectional:       "#add8e6", // Light Blue
	TypeProspectiveCohort:    "#e0b0ff", // Mauve
	TypeProspectiveStudy:     "#dda0dd", // Plum
	TypeRandomizedTrial:      "#ffa07a", // Light Salmon
	TypeNonRandomizedTrial:   "#f4a460", // Sandy Brown
	TypeSystematicReview:     "#ffb6c1", // Light Pink
	TypeMetaAnalysis:         "#ffd700", // Gold
	TypeNarrativeReview:      "#eee8aa", // Pale Goldenrod
	TypePracticeGuideline:    "#98fb98", // Pale Green
	TypeTechnicalNote:        "#d3d3d3", // Light Gray
	TypeBiomechanicalStudy:   "#afeeee", // Pale Turquoise
	TypeCadavericStudy:       "#bc8f8f", // Rosy Brown
	TypeAnimalStudy:          "#f0e68c", // Khaki
	TypeBasicScience:         "#7fffd4", // Aquamarine
	TypeQualityImprovement:   "#ff7f50", // Coral
	TypeCostEffectiveness:    "#da70d6", // Orchid
	TypeOther:                "#f5f5f5", // White Smoke
}

// PubTypes returns all labels in classification order.
func PubTypes() []PubType {
	out := make([]PubType, len(pubTypes))
	copy(out, pubTypes)
	return out
}

// Color returns the badge color for the label, defaulting to the "Other"
// color for anything outside the enumeration.
func (p PubType) Color() string {
	if c, ok := pubTypeColors[p]; ok {
		return c
	}
	return pubTypeColors[TypeOther]
}

// ParsePubType normalizes a raw classifier answer to a known label. The
// match is a case-insensitive substring check, first-wins in enumeration
// order; anything unrecognized becomes TypeOther.
func ParsePubType(raw string) PubType {
	lowered := strings.ToLower(raw)
	for _, t := range pubTypes {
		if strings.Contains(lowered, strings.ToLower(string(t))) {
			return t
		}
	}
	return TypeOther
}
