// Copyright (c) 2026 RMC. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package programme

import (
	"context"

	"github.com/taibuivan/rmc/internal/platform/dberr"
	"github.com/taibuivan/rmc/pkg/slice"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (service *Service) List(context context.Context) ([]*Programme, error) {
	return service.repo.List(context)
}

// Names lists programme names in catalogue order.
func (service *Service) Names(context context.Context) ([]string, error) {
	programmes, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	return slice.Map(programmes, func(programme *Programme) string { return programme.Name }), nil
}

// Exists reports whether a programme with this exact name exists.
func (service *Service) Exists(context context.Context, name string) (bool, error) {
	_, err := service.repo.FindByName(context, name)
	if dberr.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}
