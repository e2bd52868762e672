package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dniPattern    = regexp.MustCompile(`^(\d{8})([A-Z])$`)
	cifPattern    = regexp.MustCompile(`^([A-HJ-NP-SUVW])(\d{7})([0-9A-J])$`)
	phonePattern  = regexp.MustCompile(`^[6789]\d{8}$`)
	postalPattern = regexp.MustCompile(`^\d{5}$`)
)

// dniLetters maps (number mod 23) to the DNI control letter.
const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// cifLetters maps the CIF control digit to its letter form.
const cifLetters = "JABCDEFGHI"

// DNI reports whether the given string is a valid Spanish DNI:
// eight digits followed by the mod-23 control letter.
func DNI(value string) bool {
	m := dniPattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	return m[2] == string(dniLetters[number%23])
}

// CIF reports whether the given string is a valid Spanish CIF:
// an organization letter, seven digits and a control character. The control
// is computed Luhn-style over the digits. Organization letters K, P, Q and S
// require the letter form of the control, A, B, E and H require the digit
// form, the rest accept either.
func CIF(value string) bool {
	m := cifPattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	org, digits, control := m[1], m[2], m[3]

	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 0 {
			// Odd positions (1st, 3rd, ...) are doubled and digit-summed.
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	controlDigit := (10 - sum%10) % 10
	asDigit := strconv.Itoa(controlDigit)
	asLetter := string(cifLetters[controlDigit])

	switch {
	case strings.ContainsRune("KPQS", rune(org[0])):
		return control == asLetter
	case strings.ContainsRune("ABEH", rune(org[0])):
		return control == asDigit
	default:
		return control == asDigit || control == asLetter
	}
}

// Phone reports whether the given string is a valid Spanish phone number:
// nine digits starting with 6, 7, 8 or 9.
func Phone(value string) bool {
	return phonePattern.MatchString(value)
}

// PostalCode reports whether the given string is a valid Spanish postal
// code: five digits with a province prefix between 01 and 52.
func PostalCode(value string) bool {
	if !postalPattern.MatchString(value) {
		return false
	}
	province, _ := strconv.Atoi(value[:2])
	return province >= 1 && province <= 52
}
