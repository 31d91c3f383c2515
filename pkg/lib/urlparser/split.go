package urlparser

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrWrongFormat      = errors.New("wrong url format")
	ErrInvalidProductId = errors.New("invalid productId, must be positive int")
)

type PathParams struct {
	ProductId int
}

// ParseItemPath parses /cart/items/{productId}.
func ParseItemPath(path string) (PathParams, error) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")

	params := PathParams{}

	if len(parts) != 3 || parts[0] != "cart" || parts[1] != "items" {
		return params, ErrWrongFormat
	}

	productId, err := ParseProductId(parts[2])
	if err != nil {
		return params, err
	}
	params.ProductId = productId
	return params, nil
}

func ParseProductId(raw string) (int, error) {
	productId, err := strconv.Atoi(raw)
	if err != nil || productId <= 0 {
		return 0, ErrInvalidProductId
	}
	return productId, nil
}
