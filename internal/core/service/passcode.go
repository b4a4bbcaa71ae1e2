package service

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"html/template"
	"math/big"
	"strings"
	"time"
)

const passcodeDigits = 4

var passcodeModulus = big.NewInt(10000)

// generatePasscode returns a zero-padded 4-digit code from crypto/rand.
func generatePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, passcodeModulus)
	if err != nil {
		return "", fmt.Errorf("generate passcode: %w", err)
	}
	return fmt.Sprintf("%0*d", passcodeDigits, n.Int64()), nil
}

// normalizePasscode pads short numeric input so "42" and "0042" compare equal.
func normalizePasscode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > passcodeDigits {
		return code
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return code
		}
	}
	return strings.Repeat("0", passcodeDigits-len(code)) + code
}

var passcodeEmail = template.Must(template.New("passcode").Parse(`<!DOCTYPE html>
<html lang="en">
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>OTP Verification</h1>
      <p>Dear {{.Name}},</p>
      <p>Your One-Time Password (OTP) for verification is:</p>
      <div style="margin: 20px 0; font-size: 24px; font-weight: bold; text-align: center;">{{.Code}}</div>
      <p>The code expires in {{.ExpiresIn}}.</p>
      <p>If you did not request this, please ignore this email.</p>
    </div>
  </body>
</html>
`))

type passcodeEmailData struct {
	Name      string
	Code      string
	ExpiresIn string
}

func renderPasscodeEmail(name, code string, ttl time.Duration) (string, string, error) {
	if name == "" {
		name = "User"
	}
	data := passcodeEmailData{Name: name, Code: code, ExpiresIn: fmt.Sprintf("%d minutes", int(ttl.Minutes()))}

	var html bytes.Buffer
	if err := passcodeEmail.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("render passcode email: %w", err)
	}
	text := fmt.Sprintf("Your one-time password is %s. It expires in %s.", code, data.ExpiresIn)
	return text, html.String(), nil
}
