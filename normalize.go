package main

import (
	"fmt"
	"regexp"
	"strings"
)

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines converts \r\n and lone \r line endings to \n.
func normalizeNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// normalizeRule replaces every match of pattern with a literal string.
type normalizeRule struct {
	pattern *regexp.Regexp
	replace string
}

// ttlRule masks the time-to-live value printed by the tool, which changes
// from run to run.
var ttlRule = normalizeRule{
	pattern: regexp.MustCompile(`TTL: \d+,`),
	replace: "TTL: <number>,",
}

// normalizer applies its rules in order.
type normalizer []normalizeRule

func newNormalizer(extra []RuleConfig) (normalizer, error) {
	n := normalizer{ttlRule}
	for _, r := range extra {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid normalize pattern %q: %w", r.Pattern, err)
		}
		n = append(n, normalizeRule{pattern: re, replace: r.Replace})
	}
	return n, nil
}

func (n normalizer) apply(s string) string {
	for _, rule := range n {
		s = rule.pattern.ReplaceAllLiteralString(s, rule.replace)
	}
	return s
}
