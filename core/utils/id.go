package utils

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateReferenceCode returns a human-quotable code such as "RPT-7K2Q9XA".
func GenerateReferenceCode(prefix string) string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHJKLMNPQRSTUVWXYZ", 8)
	if err != nil {
		id = strings.ToUpper(GenerateID())
	}
	return prefix + "-" + id
}

// GenerateRandomString returns length URL-safe characters from crypto/rand.
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
