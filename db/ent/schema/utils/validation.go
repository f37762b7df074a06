package utils

import (
	"fmt"
	"strings"
)

// EnumValidator accepts only the listed values.
func EnumValidator(allowed ...string) func(string) error {
	set := map[string]struct{}{}
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(s string) error {
		if _, ok := set[s]; ok {
			return nil
		}
		return fmt.Errorf("value %q not in [%s]", s, strings.Join(allowed, ", "))
	}
}

// MaxRunes rejects strings longer than n characters.
func MaxRunes(n int) func(string) error {
	return func(s string) error {
		if len([]rune(s)) > n {
			return fmt.Errorf("value longer than %d characters", n)
		}
		return nil
	}
}
