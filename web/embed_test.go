// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rmc/internal/platform/render"
)

/*
TestTemplates_Parse guarantees every bundled page parses with the layout.
*/
func TestTemplates_Parse(t *testing.T) {
	_, err := render.New(Templates, false)
	require.NoError(t, err)
}

func TestStatic_Assets(t *testing.T) {
	for _, name := range []string{"css/rmc.css", "js/captcha.js", "js/review.js", "js/charts.js"} {
		_, err := fs.Stat(Static, name)
		assert.NoError(t, err, name)
	}
}
