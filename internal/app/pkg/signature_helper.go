package pkg

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyRazorpaySignature checks that a payment confirmation was signed by
// Razorpay: the signature must equal the lowercase hex HMAC-SHA256 of
// "<orderID>|<paymentID>" under the key secret. The comparison is constant
// time. Malformed input simply fails the check; there is nothing to retry.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
