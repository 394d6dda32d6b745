package mapview

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// neutralGeography asks the map vendor for worldwide rather than
// country-specific content
const neutralGeography = "ngt"

// MarketCode builds the Bing market parameter from a POSIX locale name such
// as "en_GB". An empty locale selects the neutral geography alone.
func MarketCode(locale string) string {
	if locale == "" {
		return neutralGeography
	}
	return strings.ReplaceAll(locale, "_", "-") + "," + neutralGeography
}

// DefaultLocale returns the user's locale name from the environment, without
// codeset or modifier, or "" when none is set.
func DefaultLocale() string {
	return defaultLocale(os.Getenv)
}

func defaultLocale(getenv func(string) string) string {
	var name string
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG", "LANGUAGE"} {
		name = getenv(key)
		if name == "" {
			continue
		}
		if key == "LANGUAGE" {
			name, _, _ = strings.Cut(name, ":")
		}
		break
	}

	name, _, _ = strings.Cut(name, "@")
	name, _, _ = strings.Cut(name, ".")
	switch name {
	case "", "C", "POSIX":
		return ""
	}

	// unknown but well-formed subtags are still usable as a market
	if _, err := language.Parse(strings.ReplaceAll(name, "_", "-")); err != nil {
		var ve language.ValueError
		if !errors.As(err, &ve) {
			return ""
		}
	}
	return name
}
