package service

import (
	"time"

	"github.com/sejalm1919/E-Commerce/internal/repository"
)

type ProductHandler struct {
	lookup  ProductLookup
	timeout time.Duration
}

func NewProductHandler(lookup ProductLookup, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		lookup:  lookup,
		timeout: timeout,
	}
}

type StoreHandler struct {
	repo    repository.OrderRepository
	timeout time.Duration
}

func NewStoreHandler(repo repository.OrderRepository, timeout time.Duration) *StoreHandler {
	return &StoreHandler{
		repo:    repo,
		timeout: timeout,
	}
}
