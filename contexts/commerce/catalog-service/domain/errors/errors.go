package errors

import "errors"

var (
	ErrProductNotFound      = errors.New("shop product not found")
	ErrInvalidProductInput  = errors.New("invalid shop product input")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrInvalidCategoryInput = errors.New("invalid category input")
	ErrContactGroupNotFound = errors.New("contact group not found")
	ErrInvalidGroupInput    = errors.New("invalid contact group input")
	ErrShopNotFound         = errors.New("shop not found")
)
