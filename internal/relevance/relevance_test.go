package relevance

import "testing"

func TestSpineRelated(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		title       string
		description string
		want        bool
	}{
		{"inclusion keyword in title", "Lumbar Fusion Outcomes", "", true},
		{"exclusion keyword vetoes", "Deep Brain Stimulation for Lumbar Pain", "", false},
		{"no keywords at all", "Opioid Prescribing Patterns in Primary Care", "", false},
		{"keyword only in description", "Surgical Outcomes Registry Report", "multicenter study of cervical decompression", true},
		{"exclusion only in description", "Pedicle Screw Accuracy", "with intracranial pressure monitoring", false},
		{"case insensitive", "SCOLIOSIS Correction in Adolescents", "", true},
		{"substring matching fires inside words", "Diskette Storage of Radiographs", "", true},
		{"empty title", "", "lumbar disc herniation", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SpineRelated(tc.title, tc.description); got != tc.want {
				t.Fatalf("SpineRelated(%q, %q) = %v, want %v", tc.title, tc.description, got, tc.want)
			}
		})
	}
}
