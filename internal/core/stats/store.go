// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import "context"

// Repository defines the aggregate queries behind the charts.
type Repository interface {
	// GenderCounts maps gender codes to student counts; absent codes count zero.
	GenderCounts(context context.Context) (map[int16]int, error)

	// Enrolment lists every programme in ID order, including empty ones.
	Enrolment(context context.Context) ([]Enrolment, error)
}
