package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/shipstream/invoice-extractor/internal/segment"
)

// canonicalServices is the closed set service names normalize into.
var canonicalServices = []string{
	"Express",
	"Express Saver",
	"Express Worldwide",
	"International Priority",
	"International Economy",
	"Standard",
	"Economy",
	"Premium",
	"Domestic",
	"Worldwide",
}

// UPS prints "WW Express Saver" / "TB Standard"; other carriers use the
// bare names.
var reServiceName = regexp.MustCompile(`(?i)(?:(?:WW|TB)\s+[A-Za-z ]{3,25})|(?:Express(?:\s+Saver|\s+Worldwide|\s+Domestic)?)|(?:International\s+(?:Priority|Economy))|(?:Economy\s+Select)|(?:Standard|Economy|Premium|Worldwide)`)

var reServicePrefix = regexp.MustCompile(`(?i)^(?:WW|TB)\s+`)

// servicesBySpecificity orders the canonical set longest-first so "Express
// Saver" is tried before its "Express" prefix can shadow it.
var servicesBySpecificity = func() []string {
	out := make([]string, len(canonicalServices))
	copy(out, canonicalServices)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

var levParams = levenshtein.NewParams()

// ServiceExtractor matches the shipment's service type against the
// canonical set. Unmatched text yields absence, not an error.
type ServiceExtractor struct{}

func (ServiceExtractor) Extract(block segment.Block) Fields {
	text := strings.TrimSpace(strings.ReplaceAll(block.Text, "\n", " "))
	if text == "" {
		return Fields{}
	}

	// 1) direct pattern match, then snap to the canonical set
	if raw := reServiceName.FindString(text); raw != "" {
		raw = strings.TrimSpace(reServicePrefix.ReplaceAllString(raw, ""))
		if canon := closestService(raw, 0.70); canon != "" {
			return Fields{Service: canon}
		}
	}

	// 2) fuzzy scan of the whole block for a canonical name
	low := strings.ToLower(text)
	for _, canon := range servicesBySpecificity {
		if partialSimilarity(strings.ToLower(canon), low) > 0.85 {
			return Fields{Service: canon}
		}
	}

	// 3) leading-keyword fallback ("... sent using International Priority Service")
	for _, canon := range servicesBySpecificity {
		head := strings.ToLower(strings.Fields(canon)[0])
		if strings.Contains(low, head) {
			return Fields{Service: canon}
		}
	}

	return Fields{}
}

// closestService returns the canonical name most similar to raw, or ""
// when nothing clears the threshold.
func closestService(raw string, threshold float64) string {
	best, bestScore := "", 0.0
	for _, canon := range canonicalServices {
		score := levenshtein.Similarity(strings.ToLower(raw), strings.ToLower(canon), levParams)
		if score > bestScore {
			best, bestScore = canon, score
		}
	}
	if bestScore < threshold {
		return ""
	}
	return best
}

// partialSimilarity slides a window of len(words(needle)) tokens over hay
// and returns the best whole-window similarity. A rough stand-in for a
// substring-aware ratio.
func partialSimilarity(needle, hay string) float64 {
	nTokens := strings.Fields(needle)
	hTokens := strings.Fields(hay)
	if len(nTokens) == 0 || len(hTokens) < len(nTokens) {
		return 0
	}
	best := 0.0
	for i := 0; i+len(nTokens) <= len(hTokens); i++ {
		window := strings.Join(hTokens[i:i+len(nTokens)], " ")
		if score := levenshtein.Similarity(needle, window, levParams); score > best {
			best = score
		}
	}
	return best
}
