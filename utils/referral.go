package utils

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

const referralCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferralCodePrefix is the fixed prefix of every seller referral code
const ReferralCodePrefix = "REF"

// GenerateReferralCode produces a candidate referral code in the form
// REF + 8 uppercase alphanumeric characters. Uniqueness is the caller's
// problem: generation and the storage check are not atomic, so callers retry
// on duplicates.
func GenerateReferralCode() (string, error) {
	suffix, err := randomAlphanumeric(8)
	if err != nil {
		return "", err
	}
	return ReferralCodePrefix + suffix, nil
}

// GeneratePayoutReference produces a payout reference number in the form
// PAY- + 8 uppercase characters of a random UUID. It is a near-unique display
// identifier, not a key; collisions are tolerated.
func GeneratePayoutReference() string {
	return "PAY-" + strings.ToUpper(uuid.New().String()[:8])
}

func randomAlphanumeric(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = referralCharset[int(b)%len(referralCharset)]
	}
	return string(buf), nil
}
