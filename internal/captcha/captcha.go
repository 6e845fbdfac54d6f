// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package captcha issues the short verification codes shown on the login pages.

A code is drawn from an alphabet without look-alike glyphs (no I, O, 0 or 1),
rendered into a small noisy PNG and compared case-insensitively on submit.

Usage:

	code, err := captcha.NewCode()
	image, err := captcha.Render(code)
	ok := captcha.Equal(submitted, code)
*/
package captcha

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/cases"
)

const (
	// Alphabet lists the characters a code may contain.
	Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// Length is the number of characters in a code.
	Length = 5
)

/*
NewCode generates a fresh random verification code.

Returns:
  - string: Upper-case code of [Length] characters from [Alphabet]
  - error: Entropy source failures
*/
func NewCode() (string, error) {
	code, err := gonanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("captcha_generate_failed: %w", err)
	}
	return code, nil
}

// Equal reports whether the submitted text matches the issued code, ignoring
// case and surrounding whitespace. An empty code never matches.
func Equal(submitted, issued string) bool {
	if issued == "" {
		return false
	}

	folder := cases.Fold()
	return folder.String(strings.TrimSpace(submitted)) == folder.String(issued)
}
