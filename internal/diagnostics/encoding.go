// SPDX-License-Identifier: MPL-2.0

package diagnostics

import (
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// posixDefaultEncoding is reported when the locale names no charset, as in
// the C and POSIX locales, or names one the IANA registry does not know.
const posixDefaultEncoding = "US-ASCII"

// localeVariables are consulted in POSIX precedence order.
var localeVariables = [...]string{"LC_ALL", "LC_CTYPE", "LANG"}

// nativeEncoding derives the platform charset from the locale environment.
// A locale such as "en_US.UTF-8" or "ru_RU.KOI8-R@modifier" yields the
// canonical MIME name of its charset token.
func nativeEncoding(env map[string]string) string {
	locale := ""
	for _, name := range localeVariables {
		if v := env[name]; v != "" {
			locale = v
			break
		}
	}
	dot := strings.IndexByte(locale, '.')
	if dot < 0 {
		return posixDefaultEncoding
	}
	charset := locale[dot+1:]
	if at := strings.IndexByte(charset, '@'); at >= 0 {
		charset = charset[:at]
	}
	if enc, err := ianaindex.MIME.Encoding(charset); err == nil && enc != nil {
		if name, err := ianaindex.MIME.Name(enc); err == nil {
			return name
		}
	}
	// The UTF family is registered but has no conversion table, so the
	// index hands back a nil encoding for it.
	if strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return "UTF-8"
	}
	return posixDefaultEncoding
}
