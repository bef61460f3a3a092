// Package relevance decides whether an article is spine-related, so that
// general neurosurgery feeds can be narrowed down to spine content.
package relevance

import "strings"

// spineKeywords mark an article as topically relevant when any of them
// appears in the title or description.
var spineKeywords = []string{
	"spine", "spinal", "cervical", "thoracic", "lumbar", "sacral", "vertebr",
	"disc", "disk", "scoliosis", "kyphosis", "lordosis", "myelopathy",
	"radiculopathy", "lumbar stenosis", "cervical stenosis", "fusion", "laminectomy", "discectomy",
	"foraminotomy", "decompression", "interbody", "pedicle", "screw",
	"cage", "rod", "plate", "cauda equina", "thecal sac",
}

// exclusionKeywords veto articles that are about the brain rather than the
// spine even when a spine keyword matched.
var exclusionKeywords = []string{
	"cerebrospinal",
	"deep brain stimulation", "dbs", "brain stimulation",
	"subthalamic", "subthalamic nucleus",
	"cerebral", "cerebrum", "cerebellum",
	"transcranial", "intracranial",
	"pneumocephalus", "cranial", "craniotomy",
	"electroencephalogram", "eeg",
	"brain", "brain surgery",
	"parkinson", "alzheimer", "epilepsy", "seizure",
	"glioma", "meningioma", "brain tumor",
}

// SpineRelated reports whether the title (plus optional description) looks
// spine-related: at least one inclusion keyword and no exclusion keyword.
// Matching is a plain case-insensitive substring check, so short keywords
// can fire inside longer words ("disk" inside "diskette"); that matches the
// established filter behavior and keeps recall high.
func SpineRelated(title, description string) bool {
	if title == "" {
		return false
	}

	text := strings.ToLower(title)
	if description != "" {
		text += " " + strings.ToLower(description)
	}

	included := false
	for _, kw := range spineKeywords {
		if strings.Contains(text, kw) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, kw := range exclusionKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}

	return true
}
