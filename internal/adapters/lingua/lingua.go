// Package lingua adapts the lingua-go statistical detector to the
// classification capability port
package lingua

import (
	"strings"

	ld "github.com/pemistahl/lingua-go"

	"langid/internal/services/classify/domain"
)

// Options configures the detector build
type Options struct {
	// ReliableThreshold marks a guess reliable when its confidence reaches it;
	// <= 0 uses the default
	ReliableThreshold float64

	// Languages restricts the model set; empty loads every supported language.
	// Restricting shrinks model load time and memory considerably
	Languages []ld.Language
}

const defaultReliableThreshold = 0.7

// Detector wraps a built lingua language detector
type Detector struct {
	det       ld.LanguageDetector
	threshold float64
}

// compile-time port check
var _ domain.Detector = (*Detector)(nil)

// New builds the detector. Model loading is the expensive part, which is why
// callers run this through the lifecycle's asynchronous Start.
func New(opt Options) *Detector {
	if opt.ReliableThreshold <= 0 {
		opt.ReliableThreshold = defaultReliableThreshold
	}
	b := ld.NewLanguageDetectorBuilder()
	var det ld.LanguageDetector
	if len(opt.Languages) > 0 {
		det = b.FromLanguages(opt.Languages...).Build()
	} else {
		det = b.FromAllLanguages().Build()
	}
	return &Detector{det: det, threshold: opt.ReliableThreshold}
}

// Detect returns the single best guess. The proportion of a lone winner is
// 1.0 by definition; probability is the model's confidence for that language.
func (d *Detector) Detect(text string) (domain.Guess, error) {
	cvs := d.det.ComputeLanguageConfidenceValues(text)
	if len(cvs) == 0 || cvs[0].Value() <= 0 {
		return domain.Undetermined(), nil
	}
	top := cvs[0]
	p := top.Value()
	return domain.Guess{
		Language:    isoCode(top.Language()),
		Probability: p,
		IsReliable:  p >= d.threshold,
		Proportion:  1.0,
	}, nil
}

// DetectTopN returns up to n guesses ordered by descending confidence, with
// proportions normalized over the returned set
func (d *Detector) DetectTopN(text string, n int) ([]domain.Guess, error) {
	cvs := d.det.ComputeLanguageConfidenceValues(text)
	out := make([]domain.Guess, 0, n)
	sum := 0.0
	for _, cv := range cvs {
		if len(out) == n || cv.Value() <= 0 {
			break
		}
		out = append(out, domain.Guess{
			Language:    isoCode(cv.Language()),
			Probability: cv.Value(),
			IsReliable:  cv.Value() >= d.threshold,
		})
		sum += cv.Value()
	}
	if sum > 0 {
		for i := range out {
			out[i].Proportion = out[i].Probability / sum
		}
	}
	return out, nil
}

// Close releases nothing today; lingua's models are plain Go memory reclaimed
// with the process. Kept to satisfy the capability port's disposal contract.
func (d *Detector) Close() error { return nil }

func isoCode(l ld.Language) string {
	code := l.IsoCode639_1().String()
	if code == "" || strings.EqualFold(code, "unknown") {
		return domain.UndeterminedLanguage
	}
	return strings.ToLower(code)
}
