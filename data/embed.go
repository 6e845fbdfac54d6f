// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package data bundles the SQL migrations into the binary.
package data

import "embed"

// Migrations holds the numbered golang-migrate files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
