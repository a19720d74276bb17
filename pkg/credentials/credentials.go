// Package credentials obfuscates broker account passwords for storage.
//
// The encoding is reversible on purpose: the trading engine needs the
// plaintext password to log in to the broker terminal. It only deters
// casual inspection of the database and provides no cryptographic
// confidentiality. Do not treat it as a security boundary.
package credentials

import "encoding/base64"

// Encode obfuscates a plaintext password. Any input is accepted.
func Encode(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext))
}

// Decode reverses Encode. It fails only on tokens that were not
// produced by Encode.
func Decode(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
