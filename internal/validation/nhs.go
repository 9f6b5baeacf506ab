package validation

var nhsWeights = [9]int{10, 9, 8, 7, 6, 5, 4, 3, 2}

// NHSChecksumValid verifies the Modulus 11 check digit of a ten digit NHS
// number, as described in the NHS Data Dictionary. Anything that is not
// exactly ten ASCII digits is reported invalid.
func NHSChecksumValid(nhsNumber string) bool {
	if len(nhsNumber) != 10 {
		return false
	}
	var digits [10]int
	for i := 0; i < 10; i++ {
		c := nhsNumber[i]
		if c < '0' || c > '9' {
			return false
		}
		digits[i] = int(c - '0')
	}

	sum := 0
	for i, w := range nhsWeights {
		sum += digits[i] * w
	}

	check := 11 - sum%11
	switch check {
	case 11:
		check = 0
	case 10:
		// A check digit of 10 is never issued.
		return false
	}
	return check == digits[9]
}
