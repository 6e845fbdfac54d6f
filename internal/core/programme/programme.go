// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package programme exposes the degree programmes students enrol in.
package programme

// Programme levels.
const (
	LevelUndergraduate int16 = 1
	LevelPostgraduate  int16 = 2
)

// Programme is a degree programme. Names are unique and students reference them by name.
type Programme struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int16  `json:"level"`
}
