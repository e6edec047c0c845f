package classify

import (
	"regexp"
	"strings"

	"github.com/nmoreyra/docsort/internal/core/domain"
)

// domainRule is the shared shape of the specialized classifiers: a scoped
// vocabulary, structural patterns and the elements a genuine document of that
// type cannot miss. A full match scores near 1.0 so that the higher weight of
// the specialized methods reliably wins unambiguous domain documents.
type domainRule struct {
	keywords []string
	patterns []*regexp.Regexp
	required []*regexp.Regexp
}

// termGroup is sector vocabulary that corroborates any type of its domain.
type termGroup struct {
	terms []string
	bonus float64
}

const (
	domainKeywordScore  = 0.15
	domainPatternScore  = 0.2
	domainRequiredScore = 0.25
	domainBonusCap      = 0.3
)

// scoreDomainRules evaluates every rule against the text. Missing required
// elements scale the score down; the sector-term bonus lifts the best
// candidate only.
func scoreDomainRules(text string, rules map[domain.DocumentType]domainRule, terms []termGroup) MethodResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	result := make(MethodResult)
	for docType, rule := range rules {
		score := 0.0
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				score += domainKeywordScore
			}
		}
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				score += domainPatternScore
			}
		}
		requiredFound := 0
		for _, re := range rule.required {
			if re.MatchString(text) {
				requiredFound++
				score += domainRequiredScore
			}
		}
		if len(rule.required) > 0 {
			ratio := float64(requiredFound) / float64(len(rule.required))
			score *= 0.5 + 0.5*ratio
		}
		result.set(docType, score)
	}

	if best, _, ok := result.Top(); ok {
		bonus := 0.0
		for _, group := range terms {
			for _, term := range group.terms {
				if strings.Contains(lower, term) {
					bonus += group.bonus
				}
			}
		}
		if bonus > domainBonusCap {
			bonus = domainBonusCap
		}
		result.add(best, bonus)
	}
	return result
}
