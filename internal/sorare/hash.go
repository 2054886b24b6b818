package sorare

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/blowfish"
)

const (
	saltHeaderLen  = 7  // "$2a$NN$"
	encodedSaltLen = 22 // 16 bytes in bcrypt base64
	maxPasswordLen = 72
	minCost        = 4
	maxCost        = 31
)

var (
	// ErrInvalidSalt is returned when the salt is not a bcrypt salt string.
	ErrInvalidSalt = errors.New("invalid bcrypt salt")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password length exceeds 72 bytes")
)

var bcryptEncoding = base64.NewEncoding(
	"./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
).WithPadding(base64.NoPadding)

var magicCipherData = []byte("OrpheanBeholderScryDoubt")

// HashPassword computes the bcrypt hash of password using the given salt
// string, which carries both the version, the cost and the encoded salt
// (e.g. "$2a$11$N9qo8uLOickgx2ZMRZoMye"). Anything after the first 29
// characters of salt is ignored. The result is deterministic in
// (password, salt) and verifies with golang.org/x/crypto/bcrypt.
func HashPassword(password, salt string) (string, error) {
	if len(password) > maxPasswordLen {
		return "", ErrPasswordTooLong
	}

	header, cost, encoded, err := parseSalt(salt)
	if err != nil {
		return "", err
	}

	rawSalt, err := bcryptEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: decoding salt: %w", ErrInvalidSalt, err)
	}

	// C implementations include the trailing NUL in the key.
	key := append([]byte(password), 0)

	c, err := blowfish.NewSaltedCipher(key, rawSalt)
	if err != nil {
		return "", fmt.Errorf("creating blowfish cipher: %w", err)
	}

	rounds := uint64(1) << cost
	for range rounds {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(rawSalt, c)
	}

	cipherData := make([]byte, len(magicCipherData))
	copy(cipherData, magicCipherData)

	for i := 0; i < len(cipherData); i += 8 {
		for range 64 {
			c.Encrypt(cipherData[i:i+8], cipherData[i:i+8])
		}
	}

	// Only 23 of the 24 encrypted bytes are encoded.
	return header + encoded + bcryptEncoding.EncodeToString(cipherData[:23]), nil
}

func parseSalt(salt string) (header string, cost uint, encoded string, err error) {
	if len(salt) < saltHeaderLen+encodedSaltLen {
		return "", 0, "", fmt.Errorf("%w: too short (%d chars)", ErrInvalidSalt, len(salt))
	}

	if salt[0] != '$' || salt[1] != '2' || salt[3] != '$' || salt[6] != '$' {
		return "", 0, "", fmt.Errorf("%w: malformed header %q", ErrInvalidSalt, salt[:saltHeaderLen])
	}

	switch salt[2] {
	case 'a', 'b', 'y':
	default:
		return "", 0, "", fmt.Errorf("%w: unsupported version 2%c", ErrInvalidSalt, salt[2])
	}

	n, convErr := strconv.Atoi(salt[4:6])
	if convErr != nil || n < minCost || n > maxCost {
		return "", 0, "", fmt.Errorf("%w: invalid cost %q", ErrInvalidSalt, salt[4:6])
	}

	return salt[:saltHeaderLen], uint(n), salt[saltHeaderLen : saltHeaderLen+encodedSaltLen], nil
}
