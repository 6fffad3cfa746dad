package practitioner

import (
	"regexp"
	"strconv"
	"strings"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)

// BaseSlug lower-cases "first-last" and strips everything outside [a-z0-9-].
func BaseSlug(firstName, lastName string) string {
	return slugInvalid.ReplaceAllString(strings.ToLower(firstName+"-"+lastName), "")
}

// NextSlug numbers a slug after the existing slugs that share its base.
// With none it is the base itself; with n it is base-(n+1).
func NextSlug(base string, existing int) string {
	if existing <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(existing+1)
}
