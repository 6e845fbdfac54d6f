// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package programme

import "context"

// Repository defines the data access contract.
type Repository interface {
	List(context context.Context) ([]*Programme, error)
	FindByName(context context.Context, name string) (*Programme, error)
}
