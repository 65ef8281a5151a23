package request

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/edvin/ddns/internal/ddns"
	"github.com/edvin/ddns/internal/model"
)

const (
	msgTokenMissing = "API Token missing."
	msgTokenInvalid = "Invalid API Token."
)

// ParseCredentials decodes the Authorization header, "<scheme> <base64(email:secret)>".
// The scheme is not checked and the secret is not verified here.
func ParseCredentials(r *http.Request) (model.Credentials, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return model.Credentials{}, ddns.AuthError(msgTokenMissing)
	}

	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return model.Credentials{}, ddns.AuthError(msgTokenInvalid)
	}

	decoded, ok := decodeBase64(parts[1])
	if !ok || hasControlChar(decoded) {
		return model.Credentials{}, ddns.AuthError(msgTokenInvalid)
	}

	email, secret, found := strings.Cut(decoded, ":")
	if !found {
		return model.Credentials{}, ddns.AuthError(msgTokenInvalid)
	}

	return model.Credentials{Email: email, Secret: secret}, nil
}

// decodeBase64 accepts both padded and unpadded standard encoding; some
// router firmwares strip the padding.
func decodeBase64(s string) (string, bool) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return string(b), true
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return string(b), true
	}
	return "", false
}

func hasControlChar(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}
