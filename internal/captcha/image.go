// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package captcha

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/mojocn/base64Captcha"
)

// # Image Geometry

const (
	Width  = 120
	Height = 40

	noiseCount = 12
	lines      = base64Captcha.OptionShowSlimeLine | base64Captcha.OptionShowSineLine
)

var background = color.RGBA{R: 0xf4, G: 0xf6, B: 0xf8, A: 0xff}

// driver only draws; the code itself comes from [NewCode] and lives in the session.
var driver = base64Captcha.NewDriverString(Height, Width, noiseCount, lines, Length, Alphabet, &background, nil, nil)

/*
Render draws code as a PNG image.

Returns:
  - []byte: PNG encoded image of [Width] x [Height] pixels
  - error: Characters outside [Alphabet] or drawing failures
*/
func Render(code string) ([]byte, error) {
	for _, char := range code {
		if !strings.ContainsRune(Alphabet, char) {
			return nil, fmt.Errorf("captcha_render_failed: unsupported character %q", char)
		}
	}

	item, err := driver.DrawCaptcha(code)
	if err != nil {
		return nil, fmt.Errorf("captcha_render_failed: %w", err)
	}

	var buffer bytes.Buffer
	if _, err := item.WriteTo(&buffer); err != nil {
		return nil, fmt.Errorf("captcha_encode_failed: %w", err)
	}
	return buffer.Bytes(), nil
}
