// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patterns holds the keyword and phrase tables every critique
// analyzer scans for. The tables are plain data; matching helpers live in
// match.go.
package patterns

// Library is the set of phrase tables used by the analyzers. A Library is
// read-only once built and safe to share between goroutines. The zero value
// is a valid, empty library that makes every analyzer report zero signal.
type Library struct {
	// SectionHeaders maps a canonical section name to the heading variants
	// that introduce it.
	SectionHeaders map[string][]string `yaml:"section_headers"`

	// RequiredSections lists the canonical sections expected in a paper.
	RequiredSections []string `yaml:"required_sections"`

	// ReferenceHeadings introduce the bibliography.
	ReferenceHeadings []string `yaml:"reference_headings"`

	// StopHeadings end the bibliography when they follow it.
	StopHeadings []string `yaml:"stop_headings"`

	// Connectors maps a connector category (causal, contrastive, additive)
	// to its words.
	Connectors map[string][]string `yaml:"connectors"`

	// AbstractComponents maps each expected abstract component to cue phrases.
	AbstractComponents map[string][]string `yaml:"abstract_components"`

	StatisticalTests    []string `yaml:"statistical_tests"`
	EffectSizes         []string `yaml:"effect_sizes"`
	ConfidenceIntervals []string `yaml:"confidence_intervals"`
	PValues             []string `yaml:"p_values"`

	// Assumptions maps each checklist assumption to the phrases that name it.
	Assumptions map[string][]string `yaml:"assumptions"`

	GapPhrases     []string `yaml:"gap_phrases"`
	NoveltyPhrases []string `yaml:"novelty_phrases"`
	FutureWork     []string `yaml:"future_work"`

	Reproducibility []string `yaml:"reproducibility"`
	PeerReview      []string `yaml:"peer_review"`
	Methodology     []string `yaml:"methodology"`

	Limitations      []string `yaml:"limitations"`
	Generalizability []string `yaml:"generalizability"`
	DataAvailability []string `yaml:"data_availability"`
	Ethics           []string `yaml:"ethics"`

	BiasTerms []string `yaml:"bias_terms"`
	RedFlags  []string `yaml:"red_flags"`
	Hedges    []string `yaml:"hedges"`
	Jargon    []string `yaml:"jargon"`
}

// Default returns the built-in library.
func Default() *Library {
	return &Library{
		SectionHeaders: map[string][]string{
			"abstract":     {"abstract"},
			"introduction": {"introduction", "background", "motivation"},
			"methods": {
				"methods", "method", "methodology", "materials and methods",
				"experimental setup", "experimental design", "research design", "approach",
			},
			"results":    {"results", "findings", "evaluation", "experiments"},
			"discussion": {"discussion", "analysis and discussion", "results and discussion"},
			"conclusion": {"conclusion", "conclusions", "concluding remarks", "summary and conclusions"},
		},
		RequiredSections:  []string{"introduction", "methods", "results", "discussion", "conclusion"},
		ReferenceHeadings: []string{"references", "bibliography", "works cited", "literature cited", "reference list", "cited works"},
		StopHeadings: []string{
			"appendix", "appendices", "supplementary material", "supplementary materials",
			"supplemental material", "supporting information",
		},
		Connectors: map[string][]string{
			"causal": {
				"because", "therefore", "thus", "consequently", "hence",
				"as a result", "due to", "leads to", "owing to", "accordingly",
			},
			"contrastive": {
				"however", "although", "whereas", "nevertheless", "nonetheless",
				"in contrast", "on the other hand", "conversely", "despite", "yet",
			},
			"additive": {
				"moreover", "furthermore", "in addition", "additionally",
				"similarly", "likewise", "besides", "also",
			},
		},
		AbstractComponents: map[string][]string{
			"background": {
				"background", "has been", "have been", "is known", "are known",
				"increasingly", "widely", "remains", "previous studies", "prior work",
			},
			"objective": {
				"aim", "aims", "objective", "purpose", "goal", "we investigate",
				"this study", "this paper", "we propose", "we examine", "we explore",
			},
			"methods": {
				"method", "methods", "we used", "using", "conducted", "survey",
				"experiment", "participants", "data were", "analyzed", "analysed", "sample",
			},
			"results": {
				"results", "we found", "found that", "show that", "showed", "revealed",
				"indicate", "significant", "demonstrate", "improved",
			},
			"conclusion": {
				"conclude", "conclusion", "suggest that", "implications",
				"these findings", "overall", "in summary",
			},
		},
		StatisticalTests: []string{
			"t-test", "t test", "anova", "ancova", "manova", "chi-square", "chi-squared",
			"regression", "correlation", "mann-whitney", "wilcoxon", "kruskal-wallis",
			"fisher's exact", "pearson", "spearman", "bootstrap", "tukey",
			"bonferroni", "mixed-effects", "logistic regression",
		},
		EffectSizes: []string{
			"effect size", "cohen's d", "eta squared", "partial eta", "odds ratio",
			"hedges' g", "r-squared", "r2", "relative risk", "hazard ratio",
		},
		ConfidenceIntervals: []string{"confidence interval", "confidence intervals", "95% ci", "99% ci", "credible interval"},
		PValues:             []string{"p-value", "p-values", "p value", "statistically significant"},
		Assumptions: map[string][]string{
			"normality":        {"normality", "normally distributed", "shapiro-wilk", "kolmogorov-smirnov"},
			"homogeneity":      {"homogeneity", "homoscedasticity", "equal variances", "levene"},
			"independence":     {"independence", "independent observations", "autocorrelation"},
			"linearity":        {"linearity", "linear relationship"},
			"multicollinearity": {"multicollinearity", "variance inflation factor", "vif"},
		},
		GapPhrases: []string{
			"limited research", "little research", "few studies", "remains unclear",
			"remain unclear", "has not been examined", "have not been examined",
			"has not been investigated", "have not been investigated", "poorly understood",
			"gap in the literature", "research gap", "lack of research", "understudied",
			"largely unexplored", "has received little attention", "is not well understood",
		},
		NoveltyPhrases: []string{
			"novel", "we propose", "we introduce", "we present", "first to",
			"for the first time", "our contribution", "our contributions", "we contribute",
			"this paper contributes", "new approach", "new method", "innovative",
			"unlike previous", "extends prior work",
		},
		FutureWork: []string{
			"future work", "future research", "further research", "further studies",
			"future studies", "future directions", "remains to be explored",
			"could be extended", "warrants further", "next step",
		},
		Reproducibility: []string{
			"data availability", "data are available", "data is available", "available upon request",
			"code is available", "code available", "source code", "github.com", "gitlab.com",
			"open source", "publicly available", "zenodo", "osf.io", "figshare",
			"preregistered", "pre-registered", "replication package", "reproducible",
		},
		PeerReview: []string{
			"peer-reviewed", "peer reviewed", "threats to validity", "conflict of interest",
			"conflicts of interest", "competing interests", "funding", "acknowledgments",
			"acknowledgements", "author contributions", "sensitivity analysis", "robustness check",
		},
		Methodology: []string{
			"sample size", "experiment", "survey", "hypothesis", "qualitative",
			"quantitative", "interview", "randomized", "methodology", "method",
			"analysis", "data", "statistical", "correlation", "regression",
			"significance", "p-value", "control group", "variables", "participants", "population",
		},
		Limitations:      []string{"limitation", "limitations", "threats to validity", "constraint", "restriction"},
		Generalizability: []string{"generalizability", "generalisability", "generalize", "generalise", "external validity", "broader population", "transferability"},
		DataAvailability: []string{"data available", "dataset", "code available", "replication", "open data", "github", "repository"},
		Ethics: []string{
			"ethics", "ethical", "informed consent", "irb", "institutional review board",
			"privacy", "confidentiality", "anonymized", "anonymised",
		},
		BiasTerms: []string{
			"clearly", "obviously", "undoubtedly", "without a doubt", "everyone knows",
			"we believe", "it is evident", "surely", "definitely", "absolutely",
			"certainly", "unquestionably",
		},
		RedFlags: []string{
			"prove", "proves", "proven", "proof", "always", "never", "impossible",
			"perfect", "completely", "totally", "extremely", "very unique", "most unique",
		},
		Hedges: []string{
			"might", "could", "may", "possibly", "perhaps", "seems to",
			"appears to", "suggests that", "indicates that",
		},
		Jargon: []string{
			"aforementioned", "heretofore", "wherein", "whereby", "thereof",
			"utilize", "facilitate", "implement",
		},
	}
}
