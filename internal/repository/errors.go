package repository

import "errors"

var (
	ErrDataSourceNotFound = errors.New("data source not found")
)
