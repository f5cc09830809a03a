// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CitationStatus is the validation outcome for one extracted reference.
type CitationStatus string

const (
	// CitationValid means one confident bibliographic match was found.
	CitationValid CitationStatus = "valid"

	// CitationPartialMatch means the lookup returned low-confidence or
	// several competing candidates.
	CitationPartialMatch CitationStatus = "partial_match"

	// CitationNotFound means no candidate matched, or the lookup failed.
	CitationNotFound CitationStatus = "not_found"

	// CitationInvalidFormat means the reference could not be reduced to
	// searchable tokens. No lookup is attempted for these.
	CitationInvalidFormat CitationStatus = "invalid_format"
)

// CitationFormat is the surface style of a reference entry.
type CitationFormat string

const (
	FormatNumbered   CitationFormat = "numbered"
	FormatAuthorYear CitationFormat = "author_year"
	FormatOther      CitationFormat = "other"
)

// Citation is one entry from a document's reference section. The extractor
// fills the parsed fields; the validator sets Status, DOI, and Match once.
type Citation struct {
	// RawText is the trimmed reference entry as it appeared in the document.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// CleanedTitle is the best-effort title parsed from RawText. Empty when
	// no title could be isolated.
	CleanedTitle string `json:"cleaned_title" yaml:"cleaned_title"`

	// Status is the validation outcome.
	Status CitationStatus `json:"status" yaml:"status"`

	// DOI is the digital object identifier, either parsed from the entry or
	// captured from a confident lookup match.
	DOI string `json:"doi" yaml:"doi"`

	// URL is the first URL found in the entry.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Year is the publication year parsed from the entry, or 0.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Format is the detected entry style.
	Format CitationFormat `json:"format" yaml:"format"`

	// Match is the best bibliographic candidate, when one was found.
	Match *CitationMatch `json:"match,omitempty" yaml:"match,omitempty"`
}

// CitationMatch is a candidate record returned by a bibliographic lookup.
type CitationMatch struct {
	Title string `json:"title" yaml:"title"`
	Year  int    `json:"year,omitempty" yaml:"year,omitempty"`
	DOI   string `json:"doi" yaml:"doi"`

	// Source names the lookup that produced the record.
	Source string `json:"source" yaml:"source"`

	// Overlap is the title word overlap with the cleaned citation title, in [0,1].
	Overlap float64 `json:"overlap" yaml:"overlap"`
}

// CitationSummary aggregates validation outcomes across all citations.
type CitationSummary struct {
	Total          int     `json:"total" yaml:"total"`
	Valid          int     `json:"valid" yaml:"valid"`
	PartialMatch   int     `json:"partial_match" yaml:"partial_match"`
	NotFound       int     `json:"not_found" yaml:"not_found"`
	InvalidFormat  int     `json:"invalid_format" yaml:"invalid_format"`
	ValidityRatio  float64 `json:"validity_ratio" yaml:"validity_ratio"`
	QualityScore   float64 `json:"quality_score" yaml:"quality_score"`
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
}
