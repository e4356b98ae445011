package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	keyLength   = 32
	nonceLength = 12
	saltLength  = 32
	scryptN     = 1 << 15
	scryptR     = 8
	scryptP     = 1
)

// SealedData is an encrypted blob at rest. The API profile is the only
// secret this client persists.
type SealedData struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func Seal(data []byte, passphrase string) (*SealedData, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return &SealedData{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aesGCM.Seal(nil, nonce, data, nil),
	}, nil
}

func Open(sealed *SealedData, passphrase string) ([]byte, error) {
	if sealed == nil {
		return nil, errors.New("sealed data is nil")
	}

	key, err := scrypt.Key([]byte(passphrase), sealed.Salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, sealed.Nonce, sealed.Ciphertext, nil)
	if err != nil {
		return nil, errors.New("invalid passphrase or corrupted data")
	}

	return plaintext, nil
}

func ValidatePassphrase(sealed *SealedData, passphrase string) bool {
	_, err := Open(sealed, passphrase)
	return err == nil
}
