package service

import (
	"crypto/rand"
	"math/big"
)

const (
	otpMin   = 100000
	otpRange = 900000
)

var randInt = rand.Int

// GenerateOTP 產生 100000-999999 的六位數驗證碼
func GenerateOTP() (int, error) {
	n, err := randInt(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}
