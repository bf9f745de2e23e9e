package model

import "errors"

var ErrVersionImmutable = errors.New("page versions cannot be modified")
